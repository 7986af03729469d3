package handler

import (
	"net/http"

	"farm-gateway/internal/usecase/user"
	apperrors "farm-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for identity operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=100"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Lookup handles GET /user?email=
func (h *UserHandler) Lookup(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindBadRequest),
			Message: "email query parameter is required",
		})
		return
	}

	resp, err := h.uc.Lookup(c.Request.Context(), user.LookupRequest{Email: email})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if resp == nil {
		// A miss is a valid outcome; callers use it to decide whether to create
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   string(apperrors.KindNotFound),
			Message: "no user with that email",
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Email: resp.Email, Name: resp.Name})
}

// Create handles POST /user
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindBadRequest),
			Message: "body must be JSON with a valid email and a name",
		})
		return
	}

	resp, err := h.uc.Create(c.Request.Context(), user.CreateRequest{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Email: resp.Email, Name: resp.Name})
}
