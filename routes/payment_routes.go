package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/handlers"
	"github.com/tutoria-app/backend/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("", handlers.ListPayments)
	payments.Post("/request", middleware.RequireRoles("tutor"), handlers.RequestPayout)
	payments.Post("/checkout", handlers.CreateCheckout)
	payments.Post("/:paymentId/approve", middleware.RequireRoles("manager"), handlers.ApprovePayout)
	payments.Post("/:paymentId/mark-paid", middleware.RequireRoles("manager"), handlers.MarkPayoutPaid)
	payments.Get("/:paymentId/status", handlers.GetCheckoutStatus)

	earnings := api.Group("/earnings", middleware.Protected(), middleware.RequireRoles("tutor"))
	earnings.Get("/me", handlers.GetMyEarnings)
}
