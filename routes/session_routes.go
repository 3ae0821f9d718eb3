package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/handlers"
	"github.com/tutoria-app/backend/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("", handlers.ListSessions)
	sessions.Post("/request", handlers.RequestSession)
	sessions.Post("/:id/confirm", middleware.RequireRoles("tutor"), handlers.ConfirmSession)
	sessions.Post("/:id/mark-done", handlers.MarkSessionDone)
	sessions.Get("/:id", handlers.GetSession)
}
