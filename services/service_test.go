package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection serializes sqlite access so concurrent test
	// goroutines queue at the pool instead of hitting lock errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "testsecret",
		SessionTTLHours: 72,
	}
}

func seedCourse(t *testing.T, db *gorm.DB, title string, lessonTitles ...string) models.Course {
	t.Helper()

	course := models.Course{Title: title}
	for _, lt := range lessonTitles {
		course.Lessons = append(course.Lessons, models.Lesson{Title: lt})
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	hash, err := HashPassword("password")
	require.NoError(t, err)
	user := models.User{Username: username, PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}
