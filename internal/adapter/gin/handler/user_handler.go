package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/internal/usecase/user"
	pkgerrors "users-api/pkg/errors"
	"users-api/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc        user.Usecase
	validator *user.Validator
	log       *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, v *user.Validator, log *zap.Logger) *UserHandler {
	if v == nil {
		v = user.NewValidator()
	}
	return &UserHandler{
		uc:        uc,
		validator: v,
		log:       log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = toResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	in, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{UserInput: in})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(u))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	in, ok := h.bindAndValidate(c)
	if !ok {
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{ID: id, UserInput: in})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a stored user and is answered as not found.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		logger.WithContext(c.Request.Context(), h.log).Debug("unparseable user id", zap.String("id", idStr))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "user not found",
		})
		return 0, false
	}
	return id, true
}

// bindAndValidate decodes the JSON body and runs it through the validator.
// On failure the 400 response has already been written.
func (h *UserHandler) bindAndValidate(c *gin.Context) (user.UserInput, bool) {
	var payload user.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be a JSON object",
		})
		return user.UserInput{}, false
	}

	in, err := h.validator.Validate(payload)
	if err != nil {
		h.handleError(c, err)
		return user.UserInput{}, false
	}
	return in, true
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	log := logger.WithContext(c.Request.Context(), h.log)

	status := http.StatusInternalServerError
	var statuser pkgerrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status = statuser.HTTPStatus()
	}

	switch status {
	case http.StatusBadRequest:
		log.Debug("request rejected", zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "validation_error", Message: err.Error()})
	case http.StatusNotFound:
		c.JSON(status, ErrorResponse{Error: "not_found", Message: "user not found"})
	case http.StatusConflict:
		c.JSON(status, ErrorResponse{Error: "conflict", Message: err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
