package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services"
	"lms/utils"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// Complete godoc
// @Summary Mark a lesson complete
// @Description Records the completion and returns the updated course percentage
// @Tags progress
// @Accept json
// @Produce json
// @Param input body map[string]int true "Lesson reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /complete [post]
func (pc *ProgressController) Complete(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var input struct {
		LessonID uint `json:"lesson_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LessonID == 0 {
		return utils.BadRequest(c, "lesson_id is required")
	}

	pct, err := pc.Progress.MarkComplete(userID, input.LessonID)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not save progress")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"progress_pct": pct,
	})
}
