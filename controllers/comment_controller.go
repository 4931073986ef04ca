package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// CommentController manages comments attached to answers.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// CreateComment allows authenticated users to comment on an answer. The answer
// author is notified unless they commented themselves.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required,min=10"`
		AnswerID string `json:"answerId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var answer models.Answer
	if err := c.db.First(&answer, "id = ?", req.AnswerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Answer not found")
			return
		}
		utils.Internal(ctx, "failed to load answer", err)
		return
	}

	comment := models.Comment{
		AnswerID: answer.ID,
		AuthorID: userID,
		Content:  utils.Sanitize(req.Content),
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Internal(ctx, "failed to create comment", err)
		return
	}

	if err := c.db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		utils.Internal(ctx, "failed to load comment", err)
		return
	}

	if answer.AuthorID != userID {
		var question models.Question
		_ = c.db.First(&question, "id = ?", answer.QuestionID).Error
		emitNotification(c.db, models.Notification{
			UserID:            answer.AuthorID,
			Type:              models.NotificationComment,
			Title:             "New comment on your answer",
			Message:           fmt.Sprintf("%s commented on your answer to %q", comment.Author.Name, question.Title),
			RelatedQuestionID: &answer.QuestionID,
			RelatedUserID:     &userID,
		})
	}

	utils.InvalidateByPrefix("cache:question:detail:" + answer.QuestionID)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": gin.H{
			"id":        comment.ID,
			"content":   comment.Content,
			"author":    authorJSON(comment.Author),
			"createdAt": comment.CreatedAt,
			"updatedAt": comment.UpdatedAt,
		},
	})
}
