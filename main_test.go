// main_test.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/config"
	"wanderlust/content"
	"wanderlust/logger"
	"wanderlust/metrics"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
	"wanderlust/websocket"
)

// setupTestTemplates creates a temporary templates directory with one file per page.
func setupTestTemplates(t *testing.T) string {
	dir := t.TempDir()
	for _, name := range []string{"home", "about", "contact", "destinations", "destination", "login", "profile", "admin"} {
		content := []byte("<html><body>" + name + "</body></html>")
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), content, 0644))
	}
	return dir
}

func newTestApp(t *testing.T) (*gin.Engine, *app) {
	gin.SetMode(gin.TestMode)
	cfg, err := config.Load("")
	require.NoError(t, err)

	repos := repository.NewInMemoryManager()
	require.NoError(t, services.SeedAdmin(context.Background(), repos.Users(), "admin", "s3cret"))

	a := &app{
		cfg:       cfg,
		repos:     repos,
		content:   content.Default(),
		publisher: metrics.Noop{},
		hub:       websocket.NewHub(),
		admins:    services.NewAdminSessions(repos, time.Minute),
		tokens:    session.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		mailer:    services.LogMailer{},
	}
	router := setupRouter(a)
	router.LoadHTMLGlob(filepath.Join(setupTestTemplates(t), "*.html"))
	return router, a
}

func do(router *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHealthEndpoint tests the /health endpoint.
func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestApp(t)

	resp := do(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "OK", resp.Body.String())
}

func TestPublicPagesRender(t *testing.T) {
	router, _ := newTestApp(t)
	for path, page := range map[string]string{"/": "home", "/about": "about", "/contact": "contact", "/login": "login", "/destinations": "destinations"} {
		resp := do(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.Contains(t, resp.Body.String(), page, path)
	}
}

// TestProtectedRouteRedirect checks that pages behind login send anonymous users to /login.
func TestProtectedRouteRedirect(t *testing.T) {
	router, _ := newTestApp(t)

	for _, path := range []string{"/profile", "/admin"} {
		resp := do(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, resp.Code, path)
		assert.Equal(t, "/login", resp.Header().Get("Location"), path)
	}
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/admin/dashboard", "", nil).Code)
}

// Test: a token from the login endpoint opens the admin API
func TestBearerTokenReachesAdminAPI(t *testing.T) {
	router, _ := newTestApp(t)

	resp := do(router, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`,
		map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, resp.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	resp = do(router, http.MethodGet, "/api/admin/dashboard", "", map[string]string{"Authorization": "Bearer " + login.Token})
	assert.Equal(t, http.StatusOK, resp.Code)
}

// loginAdmin logs in as the seeded admin and returns the bearer token and session cookies.
func loginAdmin(t *testing.T, router *gin.Engine) (string, string) {
	t.Helper()
	resp := do(router, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`,
		map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, resp.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))

	var cookies []string
	for _, c := range resp.Result().Cookies() {
		cookies = append(cookies, c.Name+"="+c.Value)
	}
	return login.Token, strings.Join(cookies, "; ")
}

// Test: deleting the account closes both the session and the token
func TestDeletedAdminLosesAccess(t *testing.T) {
	router, a := newTestApp(t)
	token, cookies := loginAdmin(t, router)
	bearer := map[string]string{"Authorization": "Bearer " + token}
	browser := map[string]string{"Cookie": cookies}

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/admin/dashboard", "", bearer).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/admin/dashboard", "", browser).Code)

	ctx := context.Background()
	admin, err := a.repos.Users().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, a.repos.Users().Delete(ctx, admin.ID))

	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/admin/dashboard", "", bearer).Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/admin/dashboard", "", browser).Code)
}

// Test: a token client without cookies keeps one admin store across requests
func TestBearerAdminKeepsItsStore(t *testing.T) {
	router, a := newTestApp(t)
	token, _ := loginAdmin(t, router)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/admin/tabs/dashboard", "", bearer).Code)

	resp := do(router, http.MethodGet, "/api/admin/dashboard", "", bearer)
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Counts services.DashboardCounts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Counts.UsersCount)
	assert.Equal(t, 1, a.admins.Len())
}

func TestContactEndpoint(t *testing.T) {
	router, _ := newTestApp(t)
	header := map[string]string{"Content-Type": "application/json"}

	resp := do(router, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.c"}`, header)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), services.MsgContactRequired)

	resp = do(router, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.c","message":"hi"}`, header)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSeedAdminCommand(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	repos := repository.NewInMemoryManager()
	ctx := context.Background()

	require.NoError(t, seedAdmin(ctx, cfg, repos, []string{"-username", "root", "-password", "pw"}))
	require.NoError(t, seedAdmin(ctx, cfg, repos, []string{"-username", "root", "-password", "pw2"}))

	users, err := repos.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, services.ComparePasswords(users[0].PasswordHash, "pw2"))

	assert.Error(t, seedAdmin(ctx, cfg, repos, []string{"-password", ""}))
}

// Test: a failing command returns exit code 1 after closing the log file
func TestStart_FailureClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)
	defer func() { _, _ = logger.InitLogger("") }()

	assert.Equal(t, 1, start([]string{"seed-admin", "-password", ""}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	path := filepath.Join(dir, entries[0].Name())

	logger.Info.Println("written after exit")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wanderlust:")
	assert.NotContains(t, string(data), "written after exit", "the log file is closed")
}
