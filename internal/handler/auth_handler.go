package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	socialService service.SocialAuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, socialService service.SocialAuthService) *AuthHandler {
	return &AuthHandler{authService: authService, socialService: socialService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, "Account created successfully", result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, "Logged in successfully", result)
}

// SocialLogin handles POST /api/auth/social.
func (h *AuthHandler) SocialLogin(c *gin.Context) {
	var input service.SocialLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.IDToken == "" {
		RespondError(c, http.StatusBadRequest, "Validation failed", "id_token is required")
		return
	}

	result, err := h.socialService.SocialLogin(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.IsNewUser {
		RespondCreated(c, "Account created successfully", result)
		return
	}
	RespondOK(c, "Logged in successfully", result)
}
