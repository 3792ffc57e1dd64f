package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Entry{}, &models.Comment{}))

	r := gin.New()
	NewEngine(db, 20, Resources()...).Mount(r.Group("/admin"))
	return r, db
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUnknownResource(t *testing.T) {
	r, _ := testEngine(t)

	w := do(t, r, http.MethodGet, "/admin/widgets", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagWrite_RegeneratesSlug(t *testing.T) {
	r, db := testEngine(t)

	w := do(t, r, http.MethodPost, "/admin/tags", `{"name":"Web Dev"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var tag models.Tag
	require.NoError(t, db.First(&tag, "name = ?", "Web Dev").Error)
	assert.Equal(t, "web-dev", tag.Slug)

	w = do(t, r, http.MethodPut, "/admin/tags/"+tag.ID.String(), `{"name":"Web Development"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&tag, "id = ?", tag.ID).Error)
	assert.Equal(t, "web-development", tag.Slug)
}

func TestEntryWrite_And_SoftDelete(t *testing.T) {
	r, db := testEngine(t)

	author := &models.User{Email: "jane@example.com", Name: "Jane", Slug: "jane", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(author).Error)

	payload := fmt.Sprintf(`{"title":"Admin Made","body":"b","author_id":%q}`, author.ID)
	w := do(t, r, http.MethodPost, "/admin/entries", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry models.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "admin-made", entry.Slug)
	assert.Equal(t, models.EntryStatusPublic, entry.Status)

	w = do(t, r, http.MethodDelete, "/admin/entries/"+entry.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	// Soft delete: the row stays, only the status changes.
	require.NoError(t, db.First(&entry, "id = ?", entry.ID).Error)
	assert.Equal(t, models.EntryStatusDeleted, entry.Status)
}

func TestEntryWrite_Validation(t *testing.T) {
	r, _ := testEngine(t)

	w := do(t, r, http.MethodPost, "/admin/entries", `{"title":"","body":"b"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title")
}

func TestUserWrite_HashesPassword(t *testing.T) {
	r, db := testEngine(t)

	w := do(t, r, http.MethodPost, "/admin/users", `{"email":"jane@example.com","name":"Jane Doe","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "s3cret")

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@example.com").Error)
	assert.Equal(t, "jane-doe", user.Slug)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	w = do(t, r, http.MethodPost, "/admin/users", `{"email":"nope","name":"x","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
