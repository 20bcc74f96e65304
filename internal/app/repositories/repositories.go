package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	SchoolRepository      *SchoolRepository
	ApplicationRepository *ApplicationRepository
	EnrollmentRepository  *EnrollmentRepository
	StaffRepository       *StaffRepository
	FeeRepository         *FeeRepository
	ProgramRepository     *ProgramRepository
	DashboardRepository   *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		SchoolRepository:      NewSchoolRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
		StaffRepository:       NewStaffRepository(db),
		FeeRepository:         NewFeeRepository(db),
		ProgramRepository:     NewProgramRepository(db),
		DashboardRepository:   NewDashboardRepository(db),
	}
}
