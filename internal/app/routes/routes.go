package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/steampunk99/school-locator/internal/app/controllers"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	schoolController *controllers.SchoolController,
	applicationController *controllers.ApplicationController,
	dashboardController *controllers.DashboardController,
	directoryController *controllers.DirectoryController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	adminRoles := []string{string(models.RoleAdmin), string(models.RoleSuperAdmin)}

	// --- Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)

		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.JWTAuth())
		{
			authProtected.GET("/me", authController.Me)
		}
	}

	// --- School directory routes ---
	schools := api.Group("/schools")
	{
		// Public search and browsing
		schools.GET("/search", schoolController.Search)
		schools.GET("/similar", schoolController.Similar)
		schools.GET("/:id", schoolController.GetByID)
		schools.GET("/:id/fees", directoryController.ListFees)
		schools.GET("/:id/programs", directoryController.ListPrograms)

		// Authenticated routes
		authenticated := schools.Group("")
		authenticated.Use(authMiddleware.JWTAuth())
		{
			// Student application workflow
			authenticated.POST("/application/submit", applicationController.Submit)
			authenticated.POST("/application/pay", applicationController.Pay)
			authenticated.GET("/applications/my", applicationController.MyApplications)

			// Admin routes
			admin := authenticated.Group("")
			admin.Use(authMiddleware.RoleRequired(adminRoles...))
			{
				admin.GET("", schoolController.GetAll)
				admin.POST("/add", schoolController.Add)
				admin.PUT("/:id", schoolController.Update)
				admin.DELETE("/:id", schoolController.Delete)
				admin.POST("/:id/gallery", schoolController.AddGalleryImages)
				admin.DELETE("/:id/gallery/:imageId", schoolController.RemoveGalleryImage)

				admin.GET("/:id/applications", applicationController.SchoolApplications)
				admin.PUT("/applications/:id/status", applicationController.UpdateStatus)

				admin.POST("/students/enroll", directoryController.EnrollStudent)
				admin.GET("/:id/students", directoryController.ListEnrollments)
				admin.PUT("/students/:id/status", directoryController.UpdateStudentStatus)

				admin.POST("/staff", directoryController.AddStaff)
				admin.GET("/:id/staff", directoryController.ListStaff)
				admin.DELETE("/staff/:id", directoryController.RemoveStaff)

				admin.POST("/fees", directoryController.AddFee)
				admin.DELETE("/fees/:id", directoryController.RemoveFee)

				admin.POST("/programs", directoryController.AddProgram)
				admin.DELETE("/programs/:id", directoryController.RemoveProgram)

				// Dashboard aggregations
				admin.GET("/dashboard-stats", dashboardController.Stats)
				admin.GET("/dashboard/users", dashboardController.UserStats)
				admin.GET("/dashboard/schools", dashboardController.SchoolStats)
				admin.GET("/dashboard/applications", dashboardController.ApplicationStats)
			}
		}
	}
}
