package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/auth"
	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type AuthHandler struct {
	tokens       *auth.TokenService
	users        *repository.UserRepository
	secureCookie bool
}

func NewAuthHandler(tokens *auth.TokenService, users *repository.UserRepository, secureCookie bool) *AuthHandler {
	return &AuthHandler{tokens: tokens, users: users, secureCookie: secureCookie}
}

type userResponse struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    string          `json:"role"`
	Phone   string          `json:"phone,omitempty"`
	Address *models.Address `json:"address,omitempty"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Phone:   user.Phone,
		Address: user.Address,
	}
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	if h.secureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie("accessToken", accessToken, int(h.tokens.AccessTokenTTL().Seconds()), "/", "", h.secureCookie, true)
	c.SetCookie("refreshToken", refreshToken, int(h.tokens.RefreshTokenTTL().Seconds()), "/", "", h.secureCookie, true)
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string          `json:"name" binding:"required"`
		Email    string          `json:"email" binding:"required,email"`
		Password string          `json:"password" binding:"required"`
		Phone    string          `json:"phone"`
		Address  *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}

	if _, err := h.users.FindByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleCustomer,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	accessToken, _, err := h.tokens.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	refreshToken, _, err := h.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	h.setAuthCookies(c, accessToken, refreshToken)

	c.JSON(http.StatusCreated, gin.H{
		"user":        toUserResponse(user),
		"accessToken": accessToken,
		"message":     "User created successfully",
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	accessToken, _, err := h.tokens.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	refreshToken, _, err := h.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	h.setAuthCookies(c, accessToken, refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"user":        toUserResponse(user),
		"accessToken": accessToken,
		"message":     "Login successful",
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.secureCookie, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// POST /api/auth/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No refresh token provided"})
		return
	}

	userID, err := h.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	accessToken, _, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if h.secureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie("accessToken", accessToken, int(h.tokens.AccessTokenTTL().Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"message": "token refreshed", "accessToken": accessToken})
}

// GET /api/auth/profile (protected)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// PUT /api/auth/profile (protected)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		Phone   *string         `json:"phone"`
		Address *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, req.Phone, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	response := toUserResponse(updated)
	c.JSON(http.StatusOK, gin.H{
		"_id":     response.ID,
		"name":    response.Name,
		"email":   response.Email,
		"role":    response.Role,
		"phone":   response.Phone,
		"address": response.Address,
		"message": "Profile updated successfully",
	})
}
