package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"lms/config"
	"lms/database"
	"lms/routes"
	"lms/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	logger := utils.InitLogger()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(utils.LoggingMiddleware(logger))

	routes.SetupRoutes(app, db, cfg)

	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
