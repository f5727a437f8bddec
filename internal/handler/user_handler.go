package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"coursehub/internal/errors"
	"coursehub/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID    string `json:"id" validate:"required,uuid"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"oneof=student manager"`
}

// MeResponse wraps the authenticated user.
type MeResponse struct {
	User UserDTO `json:"user"`
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		// A valid token whose subject no longer exists.
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return unauthorized()
		}
		return fail(err)
	}

	return respond(c, http.StatusOK, MeResponse{User: UserDTO{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}})
}
