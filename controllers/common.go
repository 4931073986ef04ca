package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/middleware"
	"github.com/askloop/askloop/models"
)

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func isAdmin(ctx *gin.Context) bool {
	value, exists := ctx.Get(middleware.ContextUserRoleKey)
	if !exists {
		return false
	}
	role, _ := value.(string)
	return role == models.RoleAdmin
}

func parsePagination(pageStr, limitStr string) (int, int) {
	page := 1
	limit := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

// voteScore recomputes UP minus DOWN over the target's current vote rows.
// Scores are never stored; every read derives them fresh.
func voteScore(db *gorm.DB, targetType, targetID string) int {
	var up, down int64
	db.Model(&models.Vote{}).
		Where("target_type = ? AND target_id = ? AND vote_type = ?", targetType, targetID, models.VoteUp).
		Count(&up)
	db.Model(&models.Vote{}).
		Where("target_type = ? AND target_id = ? AND vote_type = ?", targetType, targetID, models.VoteDown).
		Count(&down)
	return int(up - down)
}

func authorJSON(u models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"avatarUrl": u.AvatarURL,
	}
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"avatarUrl": u.AvatarURL,
		"createdAt": u.CreatedAt,
	}
}
