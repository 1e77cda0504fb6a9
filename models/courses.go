package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Lessons     []Lesson
}

type Lesson struct {
	gorm.Model
	CourseID uint   `gorm:"not null;index"`
	Title    string `gorm:"not null"`
	Content  string
}

// Progress records that a user has completed a lesson. The composite
// unique index makes the (user, lesson) pair insert-once: concurrent
// completions race at the store, and the loser is a no-op.
type Progress struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID uint `gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
}
