package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
	"github.com/tablewise/tablewise-api/pkg/oauth"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	oauthService *oauth.GoogleOAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauthService *oauth.GoogleOAuthService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
	}
}

// Login handles staff login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", result)
}

// Me returns the authenticated staff member's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved", user)
}

// GoogleLogin redirects to Google's consent screen
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	url, err := h.authService.GetGoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the Google sign-in flow
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		if errURL := h.oauthService.FrontendErrorURL(); errURL != "" {
			c.Redirect(http.StatusTemporaryRedirect, errURL)
			return
		}
		response.BadRequest(c, "Missing authorization code")
		return
	}

	result, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		if errURL := h.oauthService.FrontendErrorURL(); errURL != "" {
			c.Redirect(http.StatusTemporaryRedirect, errURL)
			return
		}
		response.Error(c, err)
		return
	}

	if successURL := h.oauthService.FrontendSuccessURL(); successURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, successURL+"?access_token="+result.Tokens.AccessToken)
		return
	}
	response.OK(c, "Login successful", result)
}
