package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/middleware"
	"github.com/tutoria-app/backend/notifications"
	"github.com/tutoria-app/backend/services"
)

func sessionService() *services.SessionService {
	codes := services.NewTutorCodeService(database.DB)
	notifier := notifications.NewStoreNotifier(database.DB)
	return services.NewSessionService(database.DB, codes, notifier)
}

type RequestSessionRequest struct {
	TutorCode   string `json:"tutorCode" validate:"required,len=4,numeric"`
	Topic       string `json:"topic" validate:"required,min=3"`
	Description string `json:"description"`
	DurationMin int    `json:"durationMin" validate:"required,gt=0"`
	PreferredAt string `json:"preferredAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	Price       *int64 `json:"price" validate:"omitempty,gt=0"`
	HourlyRate  *int64 `json:"hourlyRate" validate:"omitempty,gt=0"`
}

func RequestSession(c *fiber.Ctx) error {
	var req RequestSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	in := services.RequestSessionInput{
		TutorCode:   req.TutorCode,
		Topic:       req.Topic,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Currency:    req.Currency,
		Price:       req.Price,
		HourlyRate:  req.HourlyRate,
	}
	if req.PreferredAt != "" {
		preferredAt, _ := time.Parse(time.RFC3339, req.PreferredAt)
		in.PreferredAt = &preferredAt
	}

	session, err := sessionService().RequestSession(middleware.CurrentUID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

type ConfirmSessionRequest struct {
	ScheduledAt string `json:"scheduledAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func ConfirmSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid session ID"})
	}

	var req ConfirmSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	session, err := sessionService().ConfirmByTutor(middleware.CurrentUID(c), sessionID, scheduledAt)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(session)
}

func MarkSessionDone(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid session ID"})
	}

	session, err := sessionService().MarkDoneByStudent(middleware.CurrentUID(c), sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(session)
}

func GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid session ID"})
	}

	session, err := sessionService().GetByID(sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	}
	return c.JSON(session)
}

func ListSessions(c *fiber.Ctx) error {
	sessions, err := sessionService().ListForUser(middleware.CurrentUID(c), middleware.CurrentRoles(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(sessions)
}
