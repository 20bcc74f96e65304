package models

import "time"

// School defines the school model based on the 'schools' table.
// Structured sub-documents that never appear in a WHERE clause (facilities,
// subjects, term dates) are stored as JSONB; everything searchable is a
// plain column.
type School struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	Location   Location       `json:"location"`
	Type       SchoolType     `json:"type" db:"type"`
	Category   SchoolCategory `json:"category" db:"category"`
	Fees       SchoolFees     `json:"fees"`
	Curriculum []string       `json:"curriculum" db:"curriculum"`

	Subjects    Subjects     `json:"subjects"`
	Performance Performance  `json:"performance"`
	Facilities  []Facility   `json:"facilities,omitempty"`
	Contact     Contact      `json:"contact"`
	Media       Media        `json:"media"`
	Admissions  Admissions   `json:"admissions"`
	Stats       SchoolStats  `json:"stats"`
	ExtraCurricular []Activity `json:"extraCurricular,omitempty"`

	Metadata Metadata `json:"metadata"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Location is where a school sits
type Location struct {
	District  string   `json:"district"`
	Region    string   `json:"region"` // Northern, Eastern, Western, Central
	Address   string   `json:"address"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
}

// SchoolFees groups the money a school charges
type SchoolFees struct {
	AdmissionFee    float64    `json:"admissionFee"`
	TuitionDay      *float64   `json:"tuitionDay,omitempty"`
	TuitionBoarding *float64   `json:"tuitionBoarding,omitempty"`
	OtherFees       []OtherFee `json:"otherFees,omitempty"`
}

// OtherFee is an extra charge such as a development or library fee
type OtherFee struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Term   string  `json:"term,omitempty"`
}

// Subjects lists what a school teaches per level
type Subjects struct {
	OLevel    []string `json:"oLevel,omitempty"`
	ALevel    []string `json:"aLevel,omitempty"`
	Cambridge []string `json:"cambridge,omitempty"`
}

// ExamResults holds national-exam outcomes for one level
type ExamResults struct {
	LastResults string `json:"lastResults,omitempty"`
	Div1Count   int    `json:"div1Count"`
	Div2Count   int    `json:"div2Count"`
}

// Performance holds UCE (O-Level) and UACE (A-Level) results
type Performance struct {
	UCE  ExamResults `json:"uce"`
	UACE ExamResults `json:"uace"`
}

// Facility is something a school has, like a laboratory or sports field
type Facility struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Contact holds a school's contact channels
type Contact struct {
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone"`
	AlternativePhone string `json:"alternativePhone,omitempty"`
	Website          string `json:"website,omitempty"`
}

// GalleryImage is one image in a school's gallery, backed by the
// school_gallery_images table so single images can be removed by id.
type GalleryImage struct {
	ID      int64  `json:"id" db:"id"`
	URL     string `json:"url" db:"url"`
	Caption string `json:"caption,omitempty" db:"caption"`
	IsMain  bool   `json:"isMain" db:"is_main"`
}

// Media holds a school's logo and gallery
type Media struct {
	Logo    string         `json:"logo,omitempty"`
	Gallery []GalleryImage `json:"gallery,omitempty"`
}

// Requirement is an admission requirement
type Requirement struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// TermDates bounds one school term
type TermDates struct {
	Term      string    `json:"term"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// AvailableSpots counts open admission slots per attendance model
type AvailableSpots struct {
	DayStudents      int `json:"dayStudents"`
	BoardingStudents int `json:"boardingStudents"`
}

// Admissions holds a school's intake configuration
type Admissions struct {
	ApplicationDeadline time.Time      `json:"applicationDeadline"`
	AvailableSpots      AvailableSpots `json:"availableSpots"`
	Requirements        []Requirement  `json:"requirements,omitempty"`
	TermDates           []TermDates    `json:"termDates,omitempty"`
}

// SchoolStats are headline numbers about a school
type SchoolStats struct {
	StudentCount     int `json:"studentCount,omitempty"`
	TeacherCount     int `json:"teacherCount,omitempty"`
	ClassSize        int `json:"classSize,omitempty"`
	BoardingCapacity int `json:"boardingCapacity,omitempty"`
}

// Activity is an extra-curricular offering
type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Metadata holds listing state. Only schools with IsActive appear in search.
type Metadata struct {
	IsVerified       bool             `json:"isVerified"`
	IsActive         bool             `json:"isActive"`
	SubscriptionTier SubscriptionTier `json:"subscriptionTier"`
}
