package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/tutoria-app/backend/configs"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/middleware"
	"github.com/tutoria-app/backend/payments"
	"github.com/tutoria-app/backend/services"
)

func paymentService() *services.PaymentService {
	feePct, _ := strconv.ParseFloat(config.Config("PLATFORM_FEE_PCT"), 64)
	earnings := services.NewEarningsService(database.DB, feePct)
	return services.NewPaymentService(database.DB, sessionService(), earnings, payments.MockAdapter{})
}

type RequestPayoutRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

func RequestPayout(c *fiber.Ctx) error {
	var req RequestPayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, _ := uuid.Parse(req.SessionID)

	payment, err := paymentService().RequestPayout(middleware.CurrentUID(c), sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func ApprovePayout(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payment ID"})
	}

	payment, err := paymentService().ApprovePayout(middleware.CurrentUID(c), paymentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(payment)
}

func MarkPayoutPaid(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payment ID"})
	}

	payment, err := paymentService().MarkPaid(middleware.CurrentUID(c), paymentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(payment)
}

type CheckoutRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

func CreateCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, _ := uuid.Parse(req.SessionID)

	checkout, err := paymentService().CreateCheckout(middleware.CurrentUID(c), sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}

// GetCheckoutStatus polls the provider by its payment reference and
// settles the payment on the first "paid" observation.
func GetCheckoutStatus(c *fiber.Ctx) error {
	status, err := paymentService().GetCheckoutStatus(c.Params("paymentId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status)
}

func ListPayments(c *fiber.Ctx) error {
	list, err := paymentService().ListForUser(middleware.CurrentUID(c), middleware.CurrentRoles(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(list)
}

func GetMyEarnings(c *fiber.Ctx) error {
	feePct, _ := strconv.ParseFloat(config.Config("PLATFORM_FEE_PCT"), 64)
	earnings := services.NewEarningsService(database.DB, feePct)

	list, err := earnings.ListForTutor(middleware.CurrentUID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(list)
}
