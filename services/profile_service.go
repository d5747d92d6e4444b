package services

import (
	"errors"
	"fmt"

	"mealguard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService owns the singleton user profile.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns the profile and whether one has ever been saved.
func (s *ProfileService) Get() (*models.UserProfile, bool, error) {
	var profile models.UserProfile
	err := s.db.First(&profile, models.ProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load profile: %w", err)
	}
	return &profile, true, nil
}

// Save upserts the singleton row, overwriting both fields. No validation
// beyond shape; the UI restricts age and condition choices.
func (s *ProfileService) Save(age int, condition string) error {
	profile := models.UserProfile{
		ID:        models.ProfileID,
		Age:       age,
		Condition: condition,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&profile).Error
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
