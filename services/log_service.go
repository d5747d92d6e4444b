package services

import (
	"fmt"

	"mealguard/models"

	"gorm.io/gorm"
)

// MaxRecentLogs caps every list query; the UI never pages past it.
const MaxRecentLogs = 50

// LogService owns the append-only food log. Entries are immutable: there are
// no update or delete operations.
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// ListRecent returns up to limit entries, newest first. Limits outside
// (0, MaxRecentLogs] are clamped to MaxRecentLogs.
func (s *LogService) ListRecent(limit int) ([]models.FoodLog, error) {
	if limit <= 0 || limit > MaxRecentLogs {
		limit = MaxRecentLogs
	}

	var logs []models.FoodLog
	err := s.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// Append creates one immutable entry with a store-assigned id and timestamp.
func (s *LogService) Append(imageData, foodName, analysis string, isSafe bool) (*models.FoodLog, error) {
	entry := models.FoodLog{
		ImageData: imageData,
		FoodName:  foodName,
		Analysis:  analysis,
		IsSafe:    isSafe,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("append log: %w", err)
	}
	return &entry, nil
}
