package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/app/services"
	"github.com/campusworks/studenttrack/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Obtain an access token
// @Description Issues a bearer token for the API
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	token, err := c.authService.Login()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}
