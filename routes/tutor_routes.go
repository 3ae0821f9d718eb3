package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/handlers"
	"github.com/tutoria-app/backend/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutors := api.Group("/tutors", middleware.Protected(), middleware.RequireRoles("manager"))
	tutors.Get("", handlers.ListTutors)
	tutors.Post("/:uid/assign-code", handlers.AssignCodeToTutor)
}
