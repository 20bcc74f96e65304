package dto

// EnrollStudentRequest enrolls a student into a school
type EnrollStudentRequest struct {
	StudentID     int64  `json:"studentId" binding:"required"`
	SchoolID      int64  `json:"schoolId" binding:"required"`
	StudentStatus string `json:"studentStatus" binding:"omitempty,oneof=Active Graduated Withdrawn"`
}

// UpdateStudentStatusRequest changes an enrollment's status
type UpdateStudentStatusRequest struct {
	StudentStatus string `json:"studentStatus" binding:"required,oneof=Active Graduated Withdrawn"`
}

// AddStaffRequest attaches a user to a school as staff
type AddStaffRequest struct {
	UserID   int64  `json:"user" binding:"required"`
	SchoolID int64  `json:"school" binding:"required"`
	Position string `json:"position" binding:"required"`
}

// AddFeeRequest defines a school fee item
type AddFeeRequest struct {
	SchoolID    int64   `json:"school" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	DueDate     string  `json:"dueDate"`
	Description string  `json:"description"`
}

// AddProgramRequest defines an academic program
type AddProgramRequest struct {
	SchoolID    int64   `json:"school" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Fees        float64 `json:"fees"`
}
