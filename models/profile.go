package models

import "time"

// ProfileID pins the user_profile primary key; the table holds at most one row.
const ProfileID uint = 1

// Condition labels the UI offers. Stored as-is; the store does not validate.
const (
	ConditionDiabetes        = "diabetes"
	ConditionHypertension    = "hypertension"
	ConditionHyperlipidemia  = "hyperlipidemia"
	ConditionGeneralWellness = "general wellness"
)

// UserProfile is the singleton profile record: age in years and a short
// medical condition label. Saves overwrite both fields in place.
type UserProfile struct {
	ID        uint   `gorm:"primaryKey"`
	Age       int    `gorm:"not null"`
	Condition string `gorm:"size:50;not null"`
	UpdatedAt time.Time
}

func (UserProfile) TableName() string {
	return "user_profile"
}
