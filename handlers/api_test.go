package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutoria-app/backend/database"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/routes"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PLATFORM_FEE_PCT", "0.1")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TutorCode{},
		&models.TutorProfile{},
		&models.Session{},
		&models.Payment{},
		&models.Earning{},
		&models.Notification{},
		&models.Material{},
	))
	database.DB = db

	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.SessionRoutes(app)
	routes.PaymentRoutes(app)
	routes.TutorRoutes(app)
	routes.MaterialRoutes(app)
	return app
}

func seedUser(t *testing.T, roles models.RoleSet) *models.User {
	t.Helper()
	user := models.User{
		FullName:  "Test User",
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password:  "irrelevant",
		IsStudent: roles.Student,
		IsTutor:   roles.Tutor,
		IsManager: roles.Manager,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"roles":   user.Roles().Claims(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
}

func TestRequestSessionRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/request", "", fiber.Map{
		"tutorCode": "1234", "topic": "Algebra", "durationMin": 60,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestSessionUnknownCodeReturns404(t *testing.T) {
	app := newTestApp(t)
	student := seedUser(t, models.RoleSet{Student: true})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/request", tokenFor(t, student), fiber.Map{
		"tutorCode": "0000", "topic": "Algebra", "durationMin": 60,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestSessionRejectsNonPositiveDuration(t *testing.T) {
	app := newTestApp(t)
	student := seedUser(t, models.RoleSet{Student: true})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/request", tokenFor(t, student), fiber.Map{
		"tutorCode": "1234", "topic": "Algebra", "durationMin": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpgradeToTutorRejectsBadCodeFormat(t *testing.T) {
	app := newTestApp(t)
	student := seedUser(t, models.RoleSet{Student: true})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/upgrade-to-tutor", tokenFor(t, student), fiber.Map{
		"code": "12ab",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStudentCannotApprovePayout(t *testing.T) {
	app := newTestApp(t)
	student := seedUser(t, models.RoleSet{Student: true})

	resp, _ := doJSON(t, app, http.MethodPost,
		"/api/v1/payments/"+uuid.NewString()+"/approve", tokenFor(t, student), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count, "role gate must pre-empt any state mutation")
}

func TestSettlementHappyPath(t *testing.T) {
	app := newTestApp(t)

	manager := seedUser(t, models.RoleSet{Manager: true})
	tutor := seedUser(t, models.RoleSet{Student: true, Tutor: true})
	tutor2 := seedUser(t, models.RoleSet{Tutor: true})
	student := seedUser(t, models.RoleSet{Student: true})

	// Manager assigns a code, claimed for the tutor.
	resp, body := doJSON(t, app, http.MethodPost,
		"/api/v1/tutors/"+tutor.ID.String()+"/assign-code", tokenFor(t, manager),
		fiber.Map{"note": "math tutor"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code := body["code"].(string)
	require.Len(t, code, 4)

	// Student requests a session against that code.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/sessions/request", tokenFor(t, student), fiber.Map{
		"tutorCode":   code,
		"topic":       "Linear algebra",
		"durationMin": 60,
		"price":       150,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := body["id"].(string)
	assert.Equal(t, "requested", body["status"])

	// A different tutor must not confirm it.
	resp, _ = doJSON(t, app, http.MethodPost,
		"/api/v1/sessions/"+sessionID+"/confirm", tokenFor(t, tutor2),
		fiber.Map{"scheduledAt": "2024-01-20T14:00:00Z"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The resolved tutor confirms.
	resp, body = doJSON(t, app, http.MethodPost,
		"/api/v1/sessions/"+sessionID+"/confirm", tokenFor(t, tutor),
		fiber.Map{"scheduledAt": "2024-01-20T14:00:00Z"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", body["status"])

	// Student marks it done.
	resp, body = doJSON(t, app, http.MethodPost,
		"/api/v1/sessions/"+sessionID+"/mark-done", tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "done", body["status"])

	// Tutor requests the payout; amount derives from the fixed price.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/payments/request", tokenFor(t, tutor),
		fiber.Map{"sessionId": sessionID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	paymentID := body["id"].(string)
	assert.Equal(t, "requested", body["status"])
	assert.Equal(t, float64(150), body["amount"])

	// Manager approves, then marks paid.
	resp, body = doJSON(t, app, http.MethodPost,
		"/api/v1/payments/"+paymentID+"/approve", tokenFor(t, manager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])

	resp, body = doJSON(t, app, http.MethodPost,
		"/api/v1/payments/"+paymentID+"/mark-paid", tokenFor(t, manager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paid", body["status"])

	// Exactly one earning exists, net of the 10% fee.
	var earnings []models.Earning
	require.NoError(t, database.DB.Where("payment_id = ?", paymentID).Find(&earnings).Error)
	require.Len(t, earnings, 1)
	assert.Equal(t, int64(150), earnings[0].GrossAmount)
	assert.Equal(t, int64(135), earnings[0].NetAmount)

	// The tutor sees it under earnings.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/earnings/me", tokenFor(t, tutor), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Re-approving or re-paying a settled payout fails.
	resp, _ = doJSON(t, app, http.MethodPost,
		"/api/v1/payments/"+paymentID+"/approve", tokenFor(t, manager), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost,
		"/api/v1/payments/"+paymentID+"/mark-paid", tokenFor(t, manager), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSessionsScopedByRole(t *testing.T) {
	app := newTestApp(t)

	manager := seedUser(t, models.RoleSet{Manager: true})
	tutor := seedUser(t, models.RoleSet{Tutor: true})
	student := seedUser(t, models.RoleSet{Student: true})
	outsider := seedUser(t, models.RoleSet{Student: true})

	resp, body := doJSON(t, app, http.MethodPost,
		"/api/v1/tutors/"+tutor.ID.String()+"/assign-code", tokenFor(t, manager), fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code := body["code"].(string)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/request", tokenFor(t, student), fiber.Map{
		"tutorCode": code, "topic": "Geometry", "durationMin": 45,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listLen := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []map[string]interface{}
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &list))
		return len(list)
	}

	assert.Equal(t, 1, listLen(tokenFor(t, manager)))
	assert.Equal(t, 1, listLen(tokenFor(t, tutor)))
	assert.Equal(t, 1, listLen(tokenFor(t, student)))
	assert.Equal(t, 0, listLen(tokenFor(t, outsider)))
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"full_name": "Ana Maria",
		"email":     "ana@example.com",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	roles := body["roles"].(map[string]interface{})
	assert.Equal(t, true, roles["student"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@example.com", body["email"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMaterialUploadAndDownload(t *testing.T) {
	app := newTestApp(t)
	student := seedUser(t, models.RoleSet{Student: true})

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/materials/upload-url", tokenFor(t, student), fiber.Map{
		"sessionId": uuid.NewString(),
		"filename":  "notes.pdf",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	materialID := body["materialId"].(string)
	assert.Contains(t, body["uploadUrl"], materialID)

	resp, body = doJSON(t, app, http.MethodGet,
		"/api/v1/materials/"+materialID+"/download-url", tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["downloadUrl"], materialID)

	resp, _ = doJSON(t, app, http.MethodGet,
		"/api/v1/materials/"+uuid.NewString()+"/download-url", tokenFor(t, student), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
