// testutil_test.go - Shared harness for handler tests

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"go-tree-catalog/config"
	"go-tree-catalog/database"
	"go-tree-catalog/models"
	"go-tree-catalog/security"
	"go-tree-catalog/session"
	"go-tree-catalog/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	sessions *session.Manager
}

// newTestEnv spins up the full router against a fresh SQLite database in a
// temp dir, the way main wires it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		DBPath:         filepath.Join(dir, "test.db"),
		UploadDir:      filepath.Join(dir, "uploads"),
		SessionTTL:     24 * time.Hour,
		MaxAvatarBytes: 5 * 1024 * 1024,
		StorageTimeout: 5 * time.Second,
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)

	sessions := session.NewManager(cfg.SessionTTL)
	t.Cleanup(sessions.Stop)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(cfg, store.NewUserStore(db), store.NewTreeStore(db), sessions, log)

	return &testEnv{
		router:   SetupRouter(h, log),
		db:       db,
		cfg:      cfg,
		sessions: sessions,
	}
}

// doJSON performs a JSON request against the test router. A nil body sends
// no payload; a nil cookie sends an anonymous request.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a JSON response body.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// sessionCookie extracts the session cookie set by a login or registration
// response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerUser registers an account through the API and returns its session
// cookie.
func (e *testEnv) registerUser(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

// createAdmin inserts an admin account directly and logs it in through the
// API.
func (e *testEnv) createAdmin(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	admin := models.User{Username: username, Email: email, Password: hash, Role: models.RoleAdmin}
	require.NoError(t, e.db.Create(&admin).Error)

	w := e.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

// createTree submits a tree and returns its id.
func (e *testEnv) createTree(t *testing.T, cookie *http.Cookie, name string) uint {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/trees", treeBody(name), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id, ok := decode(t, w)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func treeBody(name string) gin.H {
	return gin.H{
		"name":           name,
		"scientificName": "Quercus robur",
		"description":    "A large deciduous tree.",
		"habitat":        "Temperate forests",
		"image":          "data:image/png;base64,iVBORw0KGgo=",
		"facts":          gin.H{"height": "30m"},
	}
}

// multipartFile builds a multipart body with a single file part carrying an
// explicit Content-Type, since CreateFormFile hardcodes octet-stream.
func multipartFile(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
