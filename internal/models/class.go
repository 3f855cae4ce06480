package models

import "time"

type Class struct {
	ID         string `gorm:"primaryKey" json:"id"`
	OwnerEmail string `gorm:"column:owner_email;index;not null" json:"-"`

	CourseCode  string `gorm:"column:course_code;not null" json:"courseCode"`
	CourseTitle string `gorm:"column:course_title" json:"courseTitle"`
	Instructor  string `json:"instructor"`
	Schedule    string `json:"schedule"`

	// Color is a pastel token or hex string, purely cosmetic.
	Color string `json:"color"`
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}
