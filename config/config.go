package config

import (
	"log"
	"os"

	"mealguard/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// LoadEnv reads .env if present. Every key has a default except the provider
// credential, whose absence only breaks advisory calls, not startup.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

// Open opens (or creates) the sqlite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.FoodLog{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// InitDB opens the database at DB_PATH (default mealguard.db) and stores the
// handle in DB. Storage unavailability is fatal.
func InitDB() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "mealguard.db"
	}

	db, err := Open(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	DB = db
}
