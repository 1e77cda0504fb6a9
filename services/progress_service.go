package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/models"
)

// ProgressService records lesson completions and computes per-course
// completion percentages.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// MarkComplete records that the user finished the lesson and returns
// the recomputed completion percent for the lesson's course. The
// insert is ON CONFLICT DO NOTHING against the (user_id, lesson_id)
// unique index, so repeated and concurrent calls leave exactly one
// row and return the same percentage.
func (ps *ProgressService) MarkComplete(userID, lessonID uint) (int, error) {
	var lesson models.Lesson
	if err := ps.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrLessonNotFound
		}
		return 0, err
	}

	progress := models.Progress{UserID: userID, LessonID: lessonID}
	err := ps.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&progress).Error
	if err != nil {
		return 0, err
	}

	return ps.CompletionPercent(userID, lesson.CourseID)
}

// CompletionPercent is the truncated integer percentage of the
// course's lessons the user has completed. A course with no lessons
// is 0 percent complete.
func (ps *ProgressService) CompletionPercent(userID, courseID uint) (int, error) {
	var course models.Course
	if err := ps.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}

	var total int64
	if err := ps.DB.Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	if err := ps.DB.Model(&models.Progress{}).
		Joins("JOIN lessons ON lessons.id = progresses.lesson_id").
		Where("progresses.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Count(&completed).Error; err != nil {
		return 0, err
	}

	return int(100 * completed / total), nil
}

// CompletedLessonIDs returns every lesson id the user has completed,
// across all courses.
func (ps *ProgressService) CompletedLessonIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := ps.DB.Model(&models.Progress{}).
		Where("user_id = ?", userID).
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}

	completed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}
