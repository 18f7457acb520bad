// file: controllers/helpers_test.go
//go:build unit
// +build unit

package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"wanderlust/models"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
)

// setupTestRouter creates a new Gin engine with session middleware and fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))

	router.POST("/test-login", func(c *gin.Context) {
		var u models.User
		_ = c.ShouldBindJSON(&u)
		_ = session.Store{}.Establish(c, u)
	})
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"home.html":         `<html><body>{{.Hero.Title}}{{range .Featured}}[{{.Name}}]{{end}}</body></html>`,
		"about.html":        `<html><body>{{range .Stats}}{{.Label}};{{end}}</body></html>`,
		"contact.html":      `<html><body>{{range .Cards}}{{.Title}};{{end}}</body></html>`,
		"destinations.html": `<html><body>{{.Error}}{{range .Destinations}}[{{.Name}}]{{end}}</body></html>`,
		"destination.html":  `<html><body>{{.Destination.Name}}</body></html>`,
		"login.html":        `<html><body>{{.Error}}</body></html>`,
		"profile.html":      `<html><body>{{with .User}}{{.Username}}{{end}}{{.Error}}</body></html>`,
		"admin.html":        `<html><body>tab={{.Active}} destinations={{.Counts.DestinationsCount}}{{range .Filtered}}[{{.Name}}]{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// client replays the cookies each response sets, like a browser would.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, router *gin.Engine) *client {
	return &client{t: t, router: router, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, "", "")
}

func (cl *client) postJSON(path, body string) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, gin.MIMEJSON, body)
}

// loginAs establishes a signed session for username with role.
func (cl *client) loginAs(username string, role models.Role) {
	w := cl.postJSON("/test-login", `{"username":"`+username+`","role":"`+string(role)+`"}`)
	require.Equal(cl.t, http.StatusOK, w.Code)
}

func (cl *client) cookie(name string) string {
	if c, ok := cl.cookies[name]; ok {
		return c.Value
	}
	return ""
}

// seededRepos returns an in-memory backend holding an admin (admin/s3cret) and the destinations.
func seededRepos(t *testing.T, destinations ...models.Destination) *repository.InMemoryManager {
	t.Helper()
	ctx := context.Background()
	m := repository.NewInMemoryManager()
	require.NoError(t, services.SeedAdmin(ctx, m.Users(), "admin", "s3cret"))
	for _, d := range destinations {
		require.NoError(t, m.Destinations().Create(ctx, d))
	}
	return m
}
