package models

import "time"

// Enrollment links an enrolled student to a school
type Enrollment struct {
	ID             int64         `json:"id" db:"id"`
	StudentID      int64         `json:"studentId" db:"student_id"`
	SchoolID       int64         `json:"schoolId" db:"school_id"`
	EnrollmentDate time.Time     `json:"enrollmentDate" db:"enrollment_date"`
	StudentStatus  StudentStatus `json:"studentStatus" db:"student_status"`

	// Joined student fields, populated on listing queries
	Student *User `json:"student,omitempty"`
}
