package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/handlers"
	"github.com/tutoria-app/backend/middleware"
)

func MaterialRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	materials := api.Group("/materials", middleware.Protected())
	materials.Post("/upload-url", handlers.RequestMaterialUpload)
	materials.Get("/upload-signature", handlers.GenerateUploadSignature)
	materials.Get("/:id/download-url", handlers.GetMaterialDownloadURL)
}
