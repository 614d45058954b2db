package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"papertrade-backend/internal/middleware"
	"papertrade-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.SessionWithClient(rdb, "test-secret"))

	h := &Handlers{
		Service: &Service{DB: db},
		Rdb:     rdb,
		Config:  middleware.SessionConfig{Secret: "test-secret"},
	}
	app.Get("/login", h.LoginForm)
	app.Post("/login", h.Login)
	app.Get("/register", h.RegisterForm)
	app.Post("/register", h.Register)
	app.Get("/logout", h.Logout)

	return app, db, rdb
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLogin_MissingUsername(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	resp := postForm(t, app, "/login", url.Values{"password": {"pw"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_MissingPassword(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	resp := postForm(t, app, "/login", url.Values{"username": {"alice"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	app, db, _ := setupAuthApp(t)
	svc := &Service{DB: db}
	_, err := svc.Register(context.Background(), "alice", "right")
	require.NoError(t, err)

	resp := postForm(t, app, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_Success_SetsSessionAndRedirects(t *testing.T) {
	app, db, rdb := setupAuthApp(t)
	svc := &Service{DB: db}
	u, err := svc.Register(context.Background(), "alice", "right")
	require.NoError(t, err)

	resp := postForm(t, app, "/login", url.Values{"username": {"alice"}, "password": {"right"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.SessionCookieName+"=")

	// The login is tracked against the user's session set.
	members, err := rdb.SMembers(context.Background(), "user_sessions:"+u.UserID.String()).Result()
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	app, db, _ := setupAuthApp(t)
	resp := postForm(t, app, "/register", url.Values{
		"username":              {"alice"},
		"password":              {"one"},
		"password_confirmation": {"two"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegister_Success_RedirectsToLogin(t *testing.T) {
	app, db, _ := setupAuthApp(t)
	resp := postForm(t, app, "/register", url.Values{
		"username":              {"alice"},
		"password":              {"secret"},
		"password_confirmation": {"secret"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var u models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&u).Error)
	assert.NotEmpty(t, u.Hash)
}

func TestRegister_DuplicateUsername_Conflict(t *testing.T) {
	app, db, _ := setupAuthApp(t)
	svc := &Service{DB: db}
	_, err := svc.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)

	resp := postForm(t, app, "/register", url.Values{
		"username":              {"alice"},
		"password":              {"pw"},
		"password_confirmation": {"pw"},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogout_AnonymousIsIdempotent(t *testing.T) {
	app, _, _ := setupAuthApp(t)
	req := httptest.NewRequest("GET", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
