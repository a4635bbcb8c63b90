package handlers

import (
	"net/http"

	"gighaat/services/user"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes account registration, login, and profile endpoints.
type AuthHandler struct {
	Users user.UserService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// RegisterHandler creates a client or freelancer account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	result, err := h.Users.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user": result.User, "token": result.Token})
}

// LoginHandler checks credentials and issues a session token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	result, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": result.User, "token": result.Token})
}

// ProfileHandler returns the authenticated user's own record.
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	u, err := h.Users.GetProfile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": u})
}

// UpdateProfileHandler changes the authenticated user's display fields.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var input user.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	u, err := h.Users.UpdateProfile(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": u})
}

// SearchFreelancersHandler finds freelancer accounts by phone number.
func (h *AuthHandler) SearchFreelancersHandler(c *gin.Context) {
	users, err := h.Users.SearchByPhone(c.Query("phoneNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"freelancers": users})
}
