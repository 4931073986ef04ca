package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/middleware"
	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// AuthController handles registration, login and session lookups.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register handles local account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, "User with this email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Internal(ctx, "failed to hash password", err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Internal(ctx, "failed to create user", err)
		return
	}

	a.respondWithSession(ctx, user)
}

// Login verifies credentials and issues a session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, err)
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	a.respondWithSession(ctx, user)
}

// Logout blacklists the current token until expiration and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := middleware.TokenFromRequest(ctx)
	if token == "" {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	expiresAt := time.Now().Add(utils.TokenDuration)
	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated user.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

func (a *AuthController) respondWithSession(ctx *gin.Context, user models.User) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, utils.TokenDuration)
	if err != nil {
		utils.Internal(ctx, "failed to generate token", err)
		return
	}

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middleware.AuthCookieName, token, int(utils.TokenDuration.Seconds()), "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userJSON(user),
		"token":   token,
	})
}
