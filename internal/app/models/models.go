package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleAdmin      RoleType = "admin"
	RoleSuperAdmin RoleType = "superadmin"
)

// SchoolType is the attendance model offered by a school
type SchoolType string

const (
	SchoolTypeDay      SchoolType = "Day"
	SchoolTypeBoarding SchoolType = "Boarding"
	SchoolTypeMixed    SchoolType = "Mixed"
)

// SchoolCategory is the ownership category of a school
type SchoolCategory string

const (
	CategoryGovernment    SchoolCategory = "Government"
	CategoryPrivate       SchoolCategory = "Private"
	CategoryReligious     SchoolCategory = "Religious"
	CategoryInternational SchoolCategory = "International"
)

// SubscriptionTier is a school's listing tier
type SubscriptionTier string

const (
	TierBasic    SubscriptionTier = "Basic"
	TierStandard SubscriptionTier = "Standard"
	TierPremium  SubscriptionTier = "Premium"
)

// ApplicationStatus is the review state of an admission application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// PaymentStatus is the state of an application's admission-fee payment
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentCompleted  PaymentStatus = "Completed"
)

// PaymentMethod is a supported mobile-money provider
type PaymentMethod string

const (
	PaymentMTNUganda    PaymentMethod = "MTN-Uganda"
	PaymentAirtelUganda PaymentMethod = "Airtel-Uganda"
)

// StudentStatus is the state of an enrollment
type StudentStatus string

const (
	StudentActive    StudentStatus = "Active"
	StudentGraduated StudentStatus = "Graduated"
	StudentWithdrawn StudentStatus = "Withdrawn"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// ValidStudentStatus reports whether s is a known enrollment status.
func ValidStudentStatus(s StudentStatus) bool {
	switch s {
	case StudentActive, StudentGraduated, StudentWithdrawn:
		return true
	}
	return false
}
