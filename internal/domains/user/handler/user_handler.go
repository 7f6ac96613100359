package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/user/model"
	"library-api/internal/domains/user/service"
	"library-api/internal/shared/query"
	"library-api/internal/shared/response"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register - POST /auth/register/
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Malformed request body.")
		return
	}
	if err := req.Validate(); err != nil {
		response.FromValidation(c, err)
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			response.ValidationFailed(c, query.FieldErrors{"email": {"A user with this email already exists."}})
			return
		}
		response.ServerError(c, err)
		return
	}

	response.Created(c, "User registered successfully", auth)
}

// Login - POST /auth/login/
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Malformed request body.")
		return
	}
	if err := req.Validate(); err != nil {
		response.FromValidation(c, err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password.")
			return
		}
		response.ServerError(c, err)
		return
	}

	response.OK(c, auth)
}
