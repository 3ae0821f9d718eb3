package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/tutoria-app/backend/configs"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/middleware"
	"github.com/tutoria-app/backend/services"
)

func materialService() *services.MaterialService {
	return services.NewMaterialService(database.DB)
}

type UploadURLRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Filename  string `json:"filename" validate:"required,min=1"`
}

func RequestMaterialUpload(c *fiber.Ctx) error {
	var req UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, _ := uuid.Parse(req.SessionID)

	material, uploadURL, err := materialService().RequestUpload(middleware.CurrentUID(c), sessionID, req.Filename)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"materialId": material.ID,
		"uploadUrl":  uploadURL,
	})
}

func GetMaterialDownloadURL(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid material ID"})
	}

	downloadURL, err := materialService().GetDownloadURL(materialID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"downloadUrl": downloadURL})
}

// GenerateUploadSignature creates a signed parameter set so the
// frontend can upload session materials straight to the object store.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to initialize Cloudinary"})
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to parse Cloudinary URL"})
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: "session_materials",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    "session_materials",
	})
}
