package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/middleware"
	"github.com/tutoria-app/backend/services"
)

func tutorCodeService() *services.TutorCodeService {
	return services.NewTutorCodeService(database.DB)
}

func ListTutors(c *fiber.Ctx) error {
	profiles, err := tutorCodeService().ListTutors()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profiles)
}

type AssignCodeRequest struct {
	Note string `json:"note"`
}

// AssignCodeToTutor issues a fresh code and claims it for the target
// tutor in one manager action.
func AssignCodeToTutor(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid tutor ID"})
	}

	var req AssignCodeRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	svc := tutorCodeService()
	created, err := svc.CreateCode(middleware.CurrentUID(c), req.Note)
	if err != nil {
		return serviceError(c, err)
	}
	if _, err := svc.ClaimCode(tutorID, created.Code); err != nil {
		return serviceError(c, err)
	}
	if err := svc.EnsureTutorProfile(tutorID, map[string]interface{}{"tutor_code": created.Code}); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"code": created.Code, "uid": tutorID})
}
