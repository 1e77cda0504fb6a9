package utils

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[lms] ", log.LstdFlags|log.LUTC)
}

// LoggingMiddleware logs one line per request with a colored status.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		logger.Printf("%s %s%s%s %s %s%d%s %v",
			c.IP(),
			methodColor(c.Method()), c.Method(), "\033[0m",
			c.Path(),
			statusColor(status), status, "\033[0m",
			time.Since(start),
		)

		return err
	}
}

func statusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m"
	case status >= 400:
		return "\033[33m"
	case status >= 300:
		return "\033[36m"
	default:
		return "\033[32m"
	}
}

func methodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m"
	case "POST":
		return "\033[33m"
	case "PUT":
		return "\033[36m"
	case "DELETE":
		return "\033[31m"
	default:
		return "\033[37m"
	}
}
