package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"keeper/config"
	"keeper/logger"
	"keeper/middleware"
	"keeper/models"
	"keeper/services"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	user  *models.User
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("KEEPER_CONFIG_DIR", t.TempDir())
	cfg := config.GetConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.CalendarSeries{},
		&models.Calendar{},
		&models.CalendarContact{},
		&models.AuditLog{},
	))

	log := logger.NewWithWriter(bytes.NewBuffer(nil), false)
	h := &Handler{
		Cfg:       cfg,
		Users:     services.NewUserService(db),
		Contacts:  services.NewContactService(db),
		Calendars: services.NewCalendarService(db, services.RealClock{}, log),
		Audit:     services.NewAuditService(db),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	protected := app.Group("/api", middleware.AuthRequired())
	protected.Get("/users/me", h.GetCurrentUser)
	protected.Post("/contacts", h.CreateContact)
	protected.Post("/contacts/:contactId/calendars", h.CreateCalendar)
	protected.Get("/contacts/:contactId/calendars", h.ListContactCalendars)
	protected.Post("/calendars/:calendarId/completion", h.ToggleCalendarCompletion)
	protected.Patch("/calendars/:calendarId/importance", h.ToggleCalendarImportance)
	protected.Delete("/contacts/:contactId/calendars/:calendarId", h.DeleteCalendar)

	user := models.User{UID: "uid-1", Provider: models.ProviderGoogle, Name: "Tester"}
	require.NoError(t, db.Create(&user).Error)

	tokens, err := middleware.IssueTokens(cfg, &user)
	require.NoError(t, err)

	return &testEnv{app: app, db: db, user: &user, token: tokens.AccessToken}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	res, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateAndToggleCalendar(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodPost, "/api/contacts", models.ContactInput{
		Name:     "Alice",
		Category: models.CategoryWork,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	contact := decode[models.ContactResponse](t, res)

	res = env.request(t, http.MethodPost, "/api/contacts/"+contact.ID.String()+"/calendars", map[string]any{
		"name":     "Coffee",
		"start_dt": "2024-03-10T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	calendar := decode[models.CalendarResponse](t, res)
	assert.Nil(t, calendar.SeriesID)
	assert.False(t, calendar.IsComplete)

	res = env.request(t, http.MethodPost, "/api/calendars/"+calendar.ID.String()+"/completion", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	toggled := decode[models.CalendarResponse](t, res)
	assert.True(t, toggled.IsComplete)
	assert.NotNil(t, toggled.CompletedAt)
}

func TestCreateRecurringCalendarOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodPost, "/api/contacts", models.ContactInput{Name: "Bob"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	contact := decode[models.ContactResponse](t, res)

	res = env.request(t, http.MethodPost, "/api/contacts/"+contact.ID.String()+"/calendars", map[string]any{
		"name":      "Rent",
		"start_dt":  "2024-01-31T00:00:00Z",
		"is_repeat": true,
		"recurrence": map[string]any{
			"start_dt":  "2024-01-31T00:00:00Z",
			"end_dt":    "2024-04-30T00:00:00Z",
			"interval":  1,
			"frequency": "month",
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	first := decode[models.CalendarResponse](t, res)
	require.NotNil(t, first.SeriesID)

	res = env.request(t, http.MethodGet, "/api/contacts/"+contact.ID.String()+"/calendars", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	entries := decode[[]models.CalendarResponse](t, res)
	assert.Len(t, entries, 4)
}

func TestRecurringWithoutDefinitionIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodPost, "/api/contacts", models.ContactInput{Name: "Bob"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	contact := decode[models.ContactResponse](t, res)

	res = env.request(t, http.MethodPost, "/api/contacts/"+contact.ID.String()+"/calendars", map[string]any{
		"name":      "Rent",
		"start_dt":  "2024-01-31T00:00:00Z",
		"is_repeat": true,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestToggleUnknownCalendarIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodPost, "/api/calendars/6b1884bc-3c2e-4b0a-9d75-2f1f7a1f21aa/completion", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteCalendarIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodPost, "/api/contacts", models.ContactInput{Name: "Bob"})
	contact := decode[models.ContactResponse](t, res)

	res = env.request(t, http.MethodPost, "/api/contacts/"+contact.ID.String()+"/calendars", map[string]any{
		"name":     "One-off",
		"start_dt": "2024-03-10T10:00:00Z",
	})
	calendar := decode[models.CalendarResponse](t, res)

	path := "/api/contacts/" + contact.ID.String() + "/calendars/" + calendar.ID.String()
	res = env.request(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res = env.request(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}
