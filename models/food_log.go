package models

import "time"

// FoodLog is one analyzed meal. Rows are immutable once created; the
// application never updates or deletes them.
type FoodLog struct {
	ID        uint   `gorm:"primaryKey"`
	ImageData string `gorm:"type:text"` // inline data-URI payload, no blob store
	FoodName  string `gorm:"size:255"`
	Analysis  string `gorm:"type:text"`
	IsSafe    bool
	CreatedAt time.Time
}

func (FoodLog) TableName() string {
	return "food_logs"
}
