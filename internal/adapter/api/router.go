package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRouter(app *fiber.App, handler *Handler) {
	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
		})
	})

	// Endpoints
	app.Get("/", handler.Home)
	app.Post("/predict", handler.PredictEmotion)
	app.Post("/predict-mri", handler.PredictMri)
	app.Post("/generate-image", handler.GenerateImage)
	app.Post("/generate-coping", handler.GenerateCoping)
	app.Post("/chat", handler.Chat)
	app.Post("/chat/session", handler.NewSession)
}
