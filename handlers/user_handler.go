package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/middleware"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/services"
)

var tutorCodePattern = regexp.MustCompile(`^\d{4}$`)

func userService() *services.UserService {
	codes := services.NewTutorCodeService(database.DB)
	return services.NewUserService(database.DB, codes)
}

func GetMe(c *fiber.Ctx) error {
	user, err := userService().GetByID(middleware.CurrentUID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// BootstrapUser grants the default student role on first contact.
func BootstrapUser(c *fiber.Ctx) error {
	uid := middleware.CurrentUID(c)
	roles, err := userService().EnsureStudent(uid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"uid": uid, "roles": roles})
}

type UpgradeToTutorRequest struct {
	Code string `json:"code" validate:"required"`
}

func UpgradeToTutor(c *fiber.Ctx) error {
	var req UpgradeToTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !tutorCodePattern.MatchString(req.Code) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Code must be exactly 4 digits"})
	}

	uid := middleware.CurrentUID(c)
	tutorCode, roles, err := userService().UpgradeToTutor(uid, req.Code)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"uid": uid, "tutorCode": tutorCode, "roles": roles})
}

type SetManagerRequest struct {
	UID         string `json:"uid" validate:"required,uuid"`
	MakeManager *bool  `json:"makeManager" validate:"required"`
}

func SetManager(c *fiber.Ctx) error {
	var req SetManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	uid, _ := uuid.Parse(req.UID)
	roles, err := userService().SetManager(uid, *req.MakeManager)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"uid": uid, "roles": roles})
}

func GetMyNotifications(c *fiber.Ctx) error {
	uid := middleware.CurrentUID(c)

	var notes []models.Notification
	if err := database.DB.
		Where("user_id = ?", uid).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load notifications"})
	}
	return c.JSON(notes)
}
