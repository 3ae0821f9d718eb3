package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/handlers"
	"github.com/tutoria-app/backend/middleware"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected())
	users.Get("/me", handlers.GetMe)
	users.Get("/notifications", handlers.GetMyNotifications)
	users.Post("/bootstrap", handlers.BootstrapUser)
	users.Post("/upgrade-to-tutor", handlers.UpgradeToTutor)
	users.Post("/set-manager", middleware.RequireRoles("manager"), handlers.SetManager)
}
