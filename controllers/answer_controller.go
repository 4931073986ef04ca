package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// AnswerController manages answers and the accept/unaccept transitions.
type AnswerController struct {
	db *gorm.DB
}

// NewAnswerController creates a new AnswerController instance.
func NewAnswerController(db *gorm.DB) *AnswerController {
	return &AnswerController{db: db}
}

// CreateAnswer allows authenticated users to answer a question. The question
// author is notified unless they answered themselves.
func (a *AnswerController) CreateAnswer(ctx *gin.Context) {
	var req struct {
		Content    string `json:"content" binding:"required,min=20"`
		QuestionID string `json:"questionId" binding:"required"`
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

	var question models.Question
	if err := a.db.First(&question, "id = ?", req.QuestionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Question not found")
			return
		}
		utils.Internal(ctx, "failed to load question", err)
		return
	}

	answer := models.Answer{
		QuestionID: question.ID,
		AuthorID:   userID,
		Content:    utils.Sanitize(req.Content),
	}
	if err := a.db.Create(&answer).Error; err != nil {
		utils.Internal(ctx, "failed to create answer", err)
		return
	}

	if err := a.db.Preload("Author").First(&answer, "id = ?", answer.ID).Error; err != nil {
		utils.Internal(ctx, "failed to load answer", err)
		return
	}

	if question.AuthorID != userID {
		emitNotification(a.db, models.Notification{
			UserID:            question.AuthorID,
			Type:              models.NotificationAnswer,
			Title:             "New answer to your question",
			Message:           fmt.Sprintf("%s answered your question %q", answer.Author.Name, question.Title),
			RelatedQuestionID: &question.ID,
			RelatedUserID:     &userID,
		})
	}

	utils.InvalidateByPrefix("cache:questions:list:")
	utils.InvalidateByPrefix("cache:question:detail:" + question.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"answer": gin.H{
			"id":         answer.ID,
			"content":    answer.Content,
			"author":     authorJSON(answer.Author),
			"isAccepted": answer.IsAccepted,
			"createdAt":  answer.CreatedAt,
			"voteScore":  0,
			"votes":      []gin.H{},
		},
	})
}

// SetAccepted toggles the accepted flag on an answer. Only the parent
// question's author may do this. Accepting clears the flag on every sibling
// answer first, inside the same transaction, so at most one answer per
// question is ever accepted.
func (a *AnswerController) SetAccepted(ctx *gin.Context) {
	var req struct {
		IsAccepted *bool `json:"isAccepted" binding:"required"`
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

	answerID := ctx.Param("id")
	var answer models.Answer
	if err := a.db.Preload("Author").First(&answer, "id = ?", answerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Answer not found")
			return
		}
		utils.Internal(ctx, "failed to load answer", err)
		return
	}

	var question models.Question
	if err := a.db.First(&question, "id = ?", answer.QuestionID).Error; err != nil {
		utils.Internal(ctx, "failed to load question", err)
		return
	}

	if question.AuthorID != userID {
		utils.Error(ctx, http.StatusForbidden, "Only the question author can accept answers")
		return
	}

	isAccepted := *req.IsAccepted
	wasAccepted := answer.IsAccepted

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if isAccepted {
			// Unconditional bulk clear keeps the at-most-one invariant even if
			// a stray second accepted row ever existed
			if err := tx.Model(&models.Answer{}).
				Where("question_id = ? AND id <> ?", answer.QuestionID, answer.ID).
				Update("is_accepted", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&answer).Update("is_accepted", isAccepted).Error
	})
	if err != nil {
		utils.Internal(ctx, "failed to update answer", err)
		return
	}

	if isAccepted && !wasAccepted && answer.AuthorID != userID {
		var actor models.User
		_ = a.db.First(&actor, "id = ?", userID).Error
		emitNotification(a.db, models.Notification{
			UserID:            answer.AuthorID,
			Type:              models.NotificationAccepted,
			Title:             "Your answer was accepted!",
			Message:           fmt.Sprintf("Your answer to %q was accepted by %s", question.Title, actor.Name),
			RelatedQuestionID: &question.ID,
			RelatedUserID:     &userID,
		})
	}

	utils.InvalidateByPrefix("cache:questions:list:")
	utils.InvalidateByPrefix("cache:question:detail:" + question.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"answer": gin.H{
			"id":         answer.ID,
			"content":    answer.Content,
			"author":     authorJSON(answer.Author),
			"isAccepted": isAccepted,
			"createdAt":  answer.CreatedAt,
			"updatedAt":  answer.UpdatedAt,
			"voteScore":  voteScore(a.db, models.TargetAnswer, answer.ID),
			"votes":      voteList(a.db, models.TargetAnswer, answer.ID),
		},
	})
}
