package api

import (
	"errors"
	"log/slog"

	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/auth"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *auth.AuthService
	recorder    *audit.Recorder
}

func NewAuthHandler(authService *auth.AuthService, recorder *audit.Recorder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		recorder:    recorder,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) PostLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		// Failed logins are logged but deliberately kept out of the audit
		// trail; only successful logins and logouts are audited.
		slog.Warn("Login attempt failed", "email", req.Email, "ip", c.IP())
		return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, auth.ErrUserInactive):
		return fiber.NewError(fiber.StatusForbidden, "User account is inactive")
	case err != nil:
		return err
	}

	user := result.User
	userID := user.ID
	if err := h.recorder.Record(c.UserContext(), audit.Entry{
		UserID:       &userID,
		Action:       model.AuditActionLogin,
		ResourceType: "user",
		ResourceID:   &userID,
		IPAddress:    c.IP(),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	}); err != nil {
		return err
	}

	slog.Info("User logged in", "email", user.Email, "userId", user.ID)
	return c.JSON(NewDataResponse(LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "bearer",
		User: UserInfoResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) PostRefresh(c *fiber.Ctx) error {
	// Accept the token from the body or the query string.
	var req refreshRequest
	_ = c.BodyParser(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = c.Query("refresh_token")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "refreshToken is required")
	}

	accessToken, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
		}
		return err
	}
	return c.JSON(NewDataResponse(RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}))
}

func (h *AuthHandler) PostLogout(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	userID := user.ID
	if err := h.recorder.Record(c.UserContext(), audit.Entry{
		UserID:       &userID,
		Action:       model.AuditActionLogout,
		ResourceType: "user",
		ResourceID:   &userID,
		IPAddress:    c.IP(),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	}); err != nil {
		return err
	}
	slog.Info("User logged out", "email", user.Email, "userId", user.ID)
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Logged out successfully"}))
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	return c.JSON(NewDataResponse(user))
}
