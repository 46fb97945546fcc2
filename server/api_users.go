package logiproserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	usersapp "github.com/sslogistics/logipro/internal/domains/users/application"
	usersdomain "github.com/sslogistics/logipro/internal/domains/users/domain"
	usersports "github.com/sslogistics/logipro/internal/domains/users/ports"
	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// UsersAPI wires HTTP transport with the back-office account use cases.
type UsersAPI struct {
	service usersports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service usersports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// User is the HTTP representation of an account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateUserRequest registers an account.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// SetUserActiveRequest toggles an account.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// Post /v1/users
// Register an account
func (api *UsersAPI) CreateUser(c *gin.Context) {
	var payload CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), payload.Username, payload.Email, payload.FullName, payload.Phone, payload.Role)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromUser(saved))
}

// Get /v1/users
// List accounts
func (api *UsersAPI) ListUsers(c *gin.Context) {
	result, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	users := make([]User, 0, len(result))
	for _, p := range result {
		users = append(users, fromUser(p))
	}
	c.JSON(http.StatusOK, users)
}

// Get /v1/users/:userId
// Load an account
func (api *UsersAPI) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUser(user))
}

// Patch /v1/users/:userId/active
// Activate or deactivate an account
func (api *UsersAPI) SetUserActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	var payload SetUserActiveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.SetUserActive(c.Request.Context(), id, payload.Active)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromUser(updated))
}

// Delete /v1/users/:userId
// Remove an account
func (api *UsersAPI) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fromUser(p *projection.Projection[*usersdomain.User]) User {
	if p == nil || p.Entity == nil {
		return User{}
	}
	return User{
		ID:        p.Entity.ID,
		Username:  p.Entity.Username,
		Email:     p.Entity.Email,
		FullName:  p.Entity.FullName,
		Phone:     p.Entity.Phone,
		Role:      string(p.Entity.Role),
		Active:    p.Entity.Active,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

func respondUserServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, usersports.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, usersapp.ErrInvalidInput) {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
