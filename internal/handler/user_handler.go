package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "userapi/internal/errors"
	"userapi/internal/repository"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(repo repository.UserRepository, log zerolog.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

// CreateUserRequest is the body of POST /user. Any id sent by the client is ignored.
type CreateUserRequest struct {
	Name  *string `json:"name" validate:"required" example:"Ada"`
	Email *string `json:"email" validate:"required" example:"ada@example.com"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err))
	}

	user, err := h.repo.Create(c.Request().Context(), *req.Name, *req.Email)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Deleting an id that does not exist also returns 204.
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, h.log, apperrors.ErrInvalidUserID)
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
