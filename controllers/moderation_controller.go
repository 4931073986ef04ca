package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// ModerationController exposes the admin-only removal operations. Removals
// cascade so no orphaned answers, comments, votes or notifications survive.
type ModerationController struct {
	db *gorm.DB
}

// NewModerationController creates a new ModerationController instance.
func NewModerationController(db *gorm.DB) *ModerationController {
	return &ModerationController{db: db}
}

// DeleteQuestion removes a question with its whole tree.
func (m *ModerationController) DeleteQuestion(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, "Admin access required")
		return
	}

	questionID := ctx.Param("id")
	var question models.Question
	if err := m.db.First(&question, "id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Question not found")
			return
		}
		utils.Internal(ctx, "failed to load question", err)
		return
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		return deleteQuestionTree(tx, questionID)
	})
	if err != nil {
		utils.Internal(ctx, "failed to delete question", err)
		return
	}

	utils.InvalidateByPrefix("cache:questions:list:")
	utils.InvalidateByPrefix("cache:question:detail:" + questionID)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUser removes a user account together with all content they authored.
// Admins cannot remove their own account.
func (m *ModerationController) DeleteUser(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, "Admin access required")
		return
	}

	callerID, _ := getUserID(ctx)
	targetID := ctx.Param("id")
	if targetID == callerID {
		utils.Error(ctx, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	var user models.User
	if err := m.db.First(&user, "id = ?", targetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "User not found")
			return
		}
		utils.Internal(ctx, "failed to load user", err)
		return
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&models.Question{}).
			Where("author_id = ?", targetID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		for _, questionID := range questionIDs {
			if err := deleteQuestionTree(tx, questionID); err != nil {
				return err
			}
		}

		// Answers and comments the user left on other people's questions
		var answerIDs []string
		if err := tx.Model(&models.Answer{}).
			Where("author_id = ?", targetID).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("answer_id IN ?", answerIDs).
				Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_type = ? AND target_id IN ?",
				models.TargetAnswer, answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", answerIDs).
				Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", targetID).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.Internal(ctx, "failed to delete user", err)
		return
	}

	utils.InvalidateByPrefix("cache:questions:list:")
	utils.InvalidateByPrefix("cache:question:detail:")

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// deleteQuestionTree removes a question and everything hanging off it inside
// the caller's transaction.
func deleteQuestionTree(tx *gorm.DB, questionID string) error {
	var answerIDs []string
	if err := tx.Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Pluck("id", &answerIDs).Error; err != nil {
		return err
	}
	if len(answerIDs) > 0 {
		if err := tx.Where("answer_id IN ?", answerIDs).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id IN ?",
			models.TargetAnswer, answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("target_type = ? AND target_id = ?",
		models.TargetQuestion, questionID).Delete(&models.Vote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("related_question_id = ?", questionID).
		Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id = ?", questionID).
		Delete(&models.QuestionView{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id = ?", questionID).
		Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", questionID).Delete(&models.Question{}).Error
}
