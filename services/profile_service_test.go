package services

import (
	"testing"

	"mealguard/models"
)

func TestProfileService_GetBeforeSave(t *testing.T) {
	svc := NewProfileService(openTestDB(t))

	profile, ok, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || profile != nil {
		t.Fatalf("expected absent profile, got ok=%v profile=%+v", ok, profile)
	}
}

func TestProfileService_SaveOverwritesSingleton(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)

	if err := svc.Save(70, models.ConditionDiabetes); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.Save(80, models.ConditionHypertension); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int64
	if err := db.Model(&models.UserProfile{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile row, got %d", count)
	}

	profile, ok, err := svc.Get()
	if err != nil || !ok {
		t.Fatalf("get after save: ok=%v err=%v", ok, err)
	}
	if profile.Age != 80 || profile.Condition != models.ConditionHypertension {
		t.Fatalf("expected latest values, got age=%d condition=%q", profile.Age, profile.Condition)
	}
}

func TestProfileService_SaveIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)

	for i := 0; i < 3; i++ {
		if err := svc.Save(70, models.ConditionGeneralWellness); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&models.UserProfile{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row after repeated saves, got %d", count)
	}
}
