package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// NotificationController serves a user's notification feed.
type NotificationController struct {
	db *gorm.DB
}

// NewNotificationController creates a new NotificationController instance.
func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// ListNotifications returns the caller's notifications newest first, with the
// unread count computed over the whole feed regardless of paging.
func (n *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	unreadOnly := ctx.Query("unreadOnly") == "true"

	query := n.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Preload("RelatedQuestion").
		Order("created_at DESC").Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.Internal(ctx, "failed to list notifications", err)
		return
	}

	var unreadCount int64
	if err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		utils.Internal(ctx, "failed to count notifications", err)
		return
	}

	items := make([]gin.H, 0, len(notifications))
	for _, notification := range notifications {
		item := gin.H{
			"id":        notification.ID,
			"type":      notification.Type,
			"title":     notification.Title,
			"message":   notification.Message,
			"isRead":    notification.IsRead,
			"createdAt": notification.CreatedAt,
		}
		if notification.RelatedQuestion != nil {
			item["relatedQuestion"] = gin.H{
				"id":    notification.RelatedQuestion.ID,
				"title": notification.RelatedQuestion.Title,
			}
		}
		items = append(items, item)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unreadCount":   unreadCount,
	})
}

// MarkRead marks either the whole feed or an explicit list of notifications
// as read. Only the caller's own rows are touched.
func (n *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		MarkAllAsRead   bool     `json:"markAllAsRead"`
		NotificationIDs []string `json:"notificationIds"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, err)
		return
	}
	if !req.MarkAllAsRead && len(req.NotificationIDs) == 0 {
		utils.Error(ctx, http.StatusBadRequest, "Nothing to mark as read")
		return
	}

	query := n.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if !req.MarkAllAsRead {
		query = query.Where("id IN ?", req.NotificationIDs)
	}
	if err := query.Update("is_read", true).Error; err != nil {
		utils.Internal(ctx, "failed to mark notifications read", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
