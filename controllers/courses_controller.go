package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"
)

type CoursesController struct {
	DB       *gorm.DB
	Progress *services.ProgressService
}

func NewCoursesController(db *gorm.DB, progress *services.ProgressService) *CoursesController {
	return &CoursesController{DB: db, Progress: progress}
}

// ListCourses returns the course catalog. Authenticated requests get
// a completion percentage per course; anonymous ones just the catalog.
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	userID, authed := middleware.UserID(c)

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		entry := fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
		}
		if authed {
			pct, err := cc.Progress.CompletionPercent(userID, course.ID)
			if err != nil {
				return utils.InternalServerError(c, "Could not compute progress")
			}
			entry["progress_pct"] = pct
		}
		result = append(result, entry)
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetCourseDetails returns a course with its lessons. Authenticated
// requests get a completed flag per lesson.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	userID, authed := middleware.UserID(c)
	completed := map[uint]bool{}
	if authed {
		completed, err = cc.Progress.CompletedLessonIDs(userID)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	lessons := make([]fiber.Map, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		entry := fiber.Map{
			"id":      lesson.ID,
			"title":   lesson.Title,
			"content": lesson.Content,
		}
		if authed {
			entry["completed"] = completed[lesson.ID]
		}
		lessons = append(lessons, entry)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"lessons":     lessons,
	})
}

// Dashboard lists every course with the user's completion percentage.
func (cc *CoursesController) Dashboard(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var courses []models.Course
	if err := cc.DB.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		pct, err := cc.Progress.CompletionPercent(userID, course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not compute progress")
		}
		result = append(result, fiber.Map{
			"id":           course.ID,
			"title":        course.Title,
			"description":  course.Description,
			"progress_pct": pct,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
