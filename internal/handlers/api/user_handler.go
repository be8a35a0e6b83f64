package api

import (
	"errors"
	"fmt"

	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/internal/users"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *users.UserService
	recorder    *audit.Recorder
}

func NewUserHandler(userService *users.UserService, recorder *audit.Recorder) *UserHandler {
	return &UserHandler{
		userService: userService,
		recorder:    recorder,
	}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	list, err := h.userService.ListUsers(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(list))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if errors.Is(err, users.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(user))
}

type createUserRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	FullName string         `json:"fullName"`
	Role     model.UserRole `json:"role"`
	SiteID   *uint          `json:"siteId"`
}

func (h *UserHandler) PostUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}
	user, err := h.userService.CreateUser(c.UserContext(), users.CreateUserOptions{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		SiteID:   req.SiteID,
	})
	if errors.Is(err, users.ErrEmailRegistered) {
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user data")
	}
	if err := recordAudit(c, h.recorder, model.AuditActionCreate, "user", &user.ID, fmt.Sprintf("Created user: %s", user.Email)); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewDataResponse(user))
}

func (h *UserHandler) PutUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	var patch users.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	user, err := h.userService.UpdateUser(c.UserContext(), userID, patch)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrEmailRegistered):
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	case err != nil:
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionUpdate, "user", &user.ID, fmt.Sprintf("Updated user: %s", user.Email)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(user))
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}
	actor := middlewares.CurrentUser(c)
	err = h.userService.DeleteUser(c.UserContext(), userID, actor.ID)
	switch {
	case errors.Is(err, users.ErrSelfDeletion):
		return fiber.NewError(fiber.StatusForbidden, "Cannot delete own account")
	case errors.Is(err, users.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case err != nil:
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionDelete, "user", &userID, fmt.Sprintf("Deleted user %d", userID)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "User deleted successfully"}))
}
