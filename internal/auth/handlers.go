package auth

import (
	"context"

	"papertrade-backend/internal/middleware"
	"papertrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for the login/register/logout endpoints.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// loginRequest is the validated form input for POST /login.
type loginRequest struct {
	Username string
	Password string
}

func parseLogin(c *fiber.Ctx) (*loginRequest, error) {
	req := &loginRequest{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	if req.Username == "" {
		return nil, ErrUsernameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	return req, nil
}

// LoginForm GET /login
func (h *Handlers) LoginForm(c *fiber.Ctx) error {
	return response.Success(c, "Log in", fiber.Map{
		"fields": []string{"username", "password"},
	})
}

// Login POST /login — forget any existing session, verify credentials, bind
// a fresh session id to the user and redirect home.
func (h *Handlers) Login(c *fiber.Ctx) error {
	h.forgetSession(c)

	req, err := parseLogin(c)
	if err != nil {
		return err
	}

	user, err := h.Service.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.UserID.String(),
		Username: user.Username,
	})
	_ = h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.UserID.String(), sessionID).Err()

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = middleware.SignSessionID(sessionID, h.Config.Secret)
	c.Cookie(&cookie)

	return c.Redirect("/", fiber.StatusSeeOther)
}

// RegisterForm GET /register
func (h *Handlers) RegisterForm(c *fiber.Ctx) error {
	return response.Success(c, "Register", fiber.Map{
		"fields": []string{"username", "password", "password_confirmation"},
	})
}

// Register POST /register — validate, create the account, redirect to login.
func (h *Handlers) Register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	confirmation := c.FormValue("password_confirmation")

	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}

	if _, err := h.Service.Register(c.Context(), username, password); err != nil {
		return err
	}

	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Logout GET /logout — clear session state unconditionally and redirect home.
// A no-op for requests that were already anonymous.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.forgetSession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return c.Redirect("/", fiber.StatusFound)
}

// forgetSession drops the current session from Redis and Locals.
func (h *Handlers) forgetSession(c *fiber.Ctx) {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()
	if sessionUser != nil && sessionID != "" {
		if m, ok := sessionUser.(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)
}
