package models

// Staff links a user to a school in a working position
type Staff struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"userId" db:"user_id"`
	SchoolID int64  `json:"schoolId" db:"school_id"`
	Position string `json:"position" db:"position"`

	// Joined user fields, populated on listing queries
	User *User `json:"user,omitempty"`
}
