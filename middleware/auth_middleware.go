package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/tutoria-app/backend/configs"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/models"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(config.Config("JWT_SECRET")),
		ErrorHandler:   jwtError,
		SuccessHandler: loadIdentity,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"message": "Invalid or missing token"})
}

// loadIdentity resolves {uid, roles} for the request. Roles embedded in
// the token win; without them we fall back to the role store, and a
// store failure degrades to an empty role set rather than rejecting the
// request. Identity itself stays fail-closed: a bad token never gets
// this far.
func loadIdentity(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	rawUID, _ := claims["user_id"].(string)
	uid, err := uuid.Parse(rawUID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token subject"})
	}

	roles, ok := rolesFromClaims(claims)
	if !ok {
		roles = rolesFromStore(uid)
	}

	c.Locals("uid", uid)
	c.Locals("roles", roles)
	return c.Next()
}

func rolesFromClaims(claims jwt.MapClaims) (models.RoleSet, bool) {
	raw, ok := claims["roles"].(map[string]interface{})
	if !ok {
		return models.RoleSet{}, false
	}
	flag := func(name string) bool {
		v, _ := raw[name].(bool)
		return v
	}
	return models.RoleSet{
		Student: flag("student"),
		Tutor:   flag("tutor"),
		Manager: flag("manager"),
	}, true
}

func rolesFromStore(uid uuid.UUID) models.RoleSet {
	var user models.User
	if err := database.DB.First(&user, "id = ?", uid).Error; err != nil {
		log.Printf("⚠️ Role lookup failed for %s: %v", uid, err)
		return models.RoleSet{}
	}
	return user.Roles()
}

// RequireRoles permits the request when the caller holds ANY of the
// named roles.
func RequireRoles(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("roles").(models.RoleSet)
		if !roles.HasAny(names...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		}
		return c.Next()
	}
}

// CurrentUID returns the authenticated caller's id set by Protected.
func CurrentUID(c *fiber.Ctx) uuid.UUID {
	uid, _ := c.Locals("uid").(uuid.UUID)
	return uid
}

func CurrentRoles(c *fiber.Ctx) models.RoleSet {
	roles, _ := c.Locals("roles").(models.RoleSet)
	return roles
}
