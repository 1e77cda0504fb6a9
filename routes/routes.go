package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/config"
	"lms/controllers"
	"lms/middleware"
	"lms/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authService := services.NewAuthService(db, cfg)
	progressService := services.NewProgressService(db)

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	authController := controllers.NewAuthController(authService)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)

	coursesController := controllers.NewCoursesController(db, progressService)
	app.Get("/api/courses", optionalAuth, coursesController.ListCourses)
	app.Get("/api/courses/:id", optionalAuth, coursesController.GetCourseDetails)
	app.Get("/api/dashboard", requireAuth, coursesController.Dashboard)

	progressController := controllers.NewProgressController(progressService)
	app.Post("/api/complete", requireAuth, progressController.Complete)
}
