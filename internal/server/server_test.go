package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Entry{}, &models.Comment{}))

	static := t.TempDir()
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.TTL = time.Hour
	cfg.Blog.PageSize = 20
	cfg.Files.StaticDir = static
	cfg.Files.ImagesDir = filepath.Join(static, "images")

	return &testApp{engine: New(cfg, zap.NewNop(), db), db: db, cfg: cfg}
}

func (a *testApp) createUser(t *testing.T, email, name, password string, admin bool) *models.User {
	t.Helper()

	svc := auth.NewService(a.db, a.cfg)
	user, err := svc.CreateUser(context.Background(), email, name, password, admin)
	require.NoError(t, err)
	return user
}

func (a *testApp) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	w := a.do(t, http.MethodPost, "/v1/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)

	cookie := app.login(t, "jane@example.com", "s3cret")
	assert.NotEmpty(t, cookie.Value)

	w := app.do(t, http.MethodPost, "/v1/login", `{"email":"jane@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/v1/login", `{"email":"nobody@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateEntry_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/entries", `{"title":"t","body":"b"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntryFlow(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	cookie := app.login(t, "jane@example.com", "s3cret")

	// Create
	w := app.do(t, http.MethodPost, "/v1/entries",
		`{"title":"First Post!","body":"hello","tags":"flask, web"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry models.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "first-post", entry.Slug)
	assert.Equal(t, models.EntryStatusPublic, entry.Status)
	assert.Len(t, entry.Tags, 2)

	// Anonymous detail and listing
	w = app.do(t, http.MethodGet, "/v1/entries/first-post", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, int64(1), listing.Total)

	// Edit retitles and reslugs
	w = app.do(t, http.MethodPut, "/v1/entries/first-post",
		`{"title":"First Post! v2","body":"hello","tags":"flask"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "first-post-v2", entry.Slug)

	w = app.do(t, http.MethodGet, "/v1/entries/first-post", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete is soft: gone from every view, row intact
	w = app.do(t, http.MethodDelete, "/v1/entries/first-post-v2", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/entries/first-post-v2", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListEntries_DraftVisibility(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	cookie := app.login(t, "jane@example.com", "s3cret")

	w := app.do(t, http.MethodPost, "/v1/entries",
		`{"title":"My Draft","body":"wip","status":"DRAFT"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var listing struct {
		Total int64 `json:"total"`
	}

	w = app.do(t, http.MethodGet, "/v1/entries", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Zero(t, listing.Total, "drafts must not list for anonymous viewers")

	w = app.do(t, http.MethodGet, "/v1/entries", "", cookie)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, int64(1), listing.Total, "authors see their own drafts")
}

func TestCreateComment(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	cookie := app.login(t, "jane@example.com", "s3cret")

	w := app.do(t, http.MethodPost, "/v1/entries", `{"title":"Discussed","body":"b"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	// Empty body: structured 400, nothing persisted.
	w = app.do(t, http.MethodPost, "/v1/entries/discussed/comments", `{"name":"bob","body":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "body")

	var count int64
	require.NoError(t, app.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)

	w = app.do(t, http.MethodPost, "/v1/entries/discussed/comments", `{"name":"bob","body":"nice"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/v1/entries/discussed/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice")
}

func TestTagRoutes(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	cookie := app.login(t, "jane@example.com", "s3cret")

	w := app.do(t, http.MethodPost, "/v1/entries", `{"title":"Tagged","body":"b","tags":"go, web"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/v1/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go")
	assert.Contains(t, w.Body.String(), "web")

	w = app.do(t, http.MethodGet, "/v1/tags/go", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tagged")

	w = app.do(t, http.MethodGet, "/v1/tags/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_AccessControl(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	app.createUser(t, "root@example.com", "Root", "s3cret", true)

	w := app.do(t, http.MethodGet, "/admin/entries", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := app.login(t, "jane@example.com", "s3cret")
	w = app.do(t, http.MethodGet, "/admin/entries", "", user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := app.login(t, "root@example.com", "s3cret")
	w = app.do(t, http.MethodGet, "/admin/entries", "", admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadImage(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "jane@example.com", "Jane", "s3cret", false)
	cookie := app.login(t, "jane@example.com", "s3cret")

	body := &strings.Builder{}
	body.WriteString("--boundary\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"../../evil.png\"\r\n")
	body.WriteString("Content-Type: image/png\r\n\r\n")
	body.WriteString("not really a png")
	body.WriteString("\r\n--boundary--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/v1/images", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	// Path traversal is stripped down to the base name.
	assert.Contains(t, w.Body.String(), `"evil.png"`)
}
