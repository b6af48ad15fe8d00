package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/middleware"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: userService}
}

// createUser godoc
// @Summary      Register a new user (staff)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body dto.CreateUserRequest true "User details"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} map[string]string "Invalid request format"
// @Failure      409 {object} map[string]string "Email already registered"
// @Security     BearerAuth
// @Router       /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary      Get a user by ID
// @Description  Users may fetch themselves; staff may fetch anyone
// @Tags         users
// @Produce      json
// @Param        userID path string true "User ID"
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} map[string]string "User not found"
// @Security     BearerAuth
// @Router       /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	callerID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	targetID := c.Param("userID")
	if targetID != callerID {
		principal, _ := middleware.GetPrincipalFromContext(c)
		if !principal.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only staff may view another user"})
			return
		}
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// registerUserRoutes wires the user endpoints.
func registerUserRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", staff, h.createUser)
		users.GET("/:userID", h.getUser)
	}
}
