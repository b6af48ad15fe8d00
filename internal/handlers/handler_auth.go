package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(authService portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: authService}
}

// login godoc
// @Summary      Log in with email and password
// @Description  Verifies credentials and returns a signed bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.LoginResponse
// @Failure      400 {object} map[string]string "Invalid credentials or request format"
// @Failure      403 {object} map[string]string "Account deactivated"
// @Router       /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerAuthRoutes wires the public authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}
