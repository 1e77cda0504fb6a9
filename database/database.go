package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/models"
)

// Connect opens the database selected by DB_DRIVER, configures the
// connection pool and runs migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey, which the services match on.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Course{},
		&models.Lesson{},
		&models.Progress{},
	)
}

// Seed inserts the demo catalog on first run. A non-empty course table
// means the database has already been seeded.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data...")

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demo := models.User{Username: "demo", PasswordHash: string(hash)}
	if err := db.Create(&demo).Error; err != nil {
		return err
	}

	python := models.Course{
		Title:       "Python Basics",
		Description: "Intro to Python and fundamentals.",
		Lessons: []models.Lesson{
			{Title: "Variables & Types", Content: "Learn about variables."},
			{Title: "Control Flow", Content: "If/else and loops."},
		},
	}
	flask := models.Course{
		Title:       "Web Dev with Flask",
		Description: "Mini project with Flask.",
		Lessons: []models.Lesson{
			{Title: "Flask Basics", Content: "Routing, templates, run app."},
			{Title: "Forms & DB", Content: "Saving data with SQLAlchemy."},
		},
	}

	return db.Create([]*models.Course{&python, &flask}).Error
}
