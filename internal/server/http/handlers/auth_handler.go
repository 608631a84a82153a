package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
	"github.com/phan14/du-an-ss2/internal/server/http/middleware"
)

// AuthHandler processes sign-in and account management.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{User: toUserResponse(*user), Token: token})
}

// Logout handles POST /api/user/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/user/me.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(CurrentUser(c)))
}

// Users handles GET /api/users.
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// SaveUser handles POST /api/users.
func (h *AuthHandler) SaveUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.facade.SaveUser(c.Request.Context(), CurrentUser(c), model.User{
		Username: req.Username,
		Name:     req.Name,
		Role:     model.UserRole(req.Role),
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// DeleteUser handles DELETE /api/users/:username.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.facade.DeleteUser(c.Request.Context(), CurrentUser(c), c.Param("username")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
