package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/database"
	"github.com/sweatcrew/backend/internal/middleware"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/logger"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating models: %v", err)
	}

	identityService := services.NewIdentityService(db)
	groupService := services.NewGroupService(db, identityService)
	membershipService := services.NewMembershipService(db, identityService, groupService)
	recommendService := services.NewRecommendService(db)
	rankingService := services.NewRankingService(db)
	recordService := services.NewRecordService(db, identityService)

	groupsHandler := NewGroupsHandler(groupService)
	participantsHandler := NewParticipantsHandler(membershipService)
	likesHandler := NewLikesHandler(recommendService)
	recordsHandler := NewRecordsHandler(recordService)
	rankHandler := NewRankHandler(rankingService)
	tagsHandler := NewTagsHandler(db)
	uploadsHandler := NewUploadsHandler(nil)

	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	groupRoutes := api.Group("/groups")
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/:groupId", groupsHandler.Get)
	groupRoutes.Patch("/:groupId", groupsHandler.Update)
	groupRoutes.Delete("/:groupId", groupsHandler.Delete)

	groupRoutes.Post("/:groupId/participants", participantsHandler.Join)
	groupRoutes.Delete("/:groupId/participants", participantsHandler.Leave)

	groupRoutes.Post("/:groupId/likes", likesHandler.Like)
	groupRoutes.Delete("/:groupId/likes", likesHandler.Unlike)

	groupRoutes.Get("/:groupId/records", recordsHandler.List)
	groupRoutes.Post("/:groupId/records", recordsHandler.Create)
	groupRoutes.Get("/:groupId/records/:recordId", recordsHandler.Get)

	groupRoutes.Get("/:groupId/rank", rankHandler.Get)

	tagRoutes := api.Group("/tags")
	tagRoutes.Get("/", tagsHandler.List)
	tagRoutes.Get("/:tagId", tagsHandler.Get)

	api.Post("/images", uploadsHandler.Upload)

	return &testEnv{app: app, db: db}
}

// createTestGroup drives the real creation endpoint so the owner user, owner
// participant row, and tag rows all exist the way production writes them.
func createTestGroup(t *testing.T, env *testEnv, name, ownerNickname, ownerPassword string, tags []string) uuid.UUID {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups", map[string]any{
		"name":          name,
		"goalRep":       100,
		"tags":          tags,
		"ownerNickname": ownerNickname,
		"ownerPassword": ownerPassword,
	}, nil)
	assertStatus(t, resp, http.StatusCreated)

	body := decodeJSONMap(t, resp)
	data, _ := body["data"].(map[string]any)
	id, err := uuid.Parse(data["id"].(string))
	if err != nil {
		t.Fatalf("group creation returned unparseable id: %v", err)
	}
	return id
}

func createTestUser(t *testing.T, db *gorm.DB, nickname, password string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{Nickname: nickname, PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}
	return user
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success=true, got %+v", body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %+v", body["data"])
	}
	return data
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
