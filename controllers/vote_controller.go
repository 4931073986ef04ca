package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// VoteController records votes on questions and answers. One row exists per
// (user, target): a repeat vote in the same direction removes it, a vote in
// the opposite direction flips it in place.
type VoteController struct {
	db *gorm.DB
}

// NewVoteController creates a new VoteController instance.
func NewVoteController(db *gorm.DB) *VoteController {
	return &VoteController{db: db}
}

// CastVote applies a vote and returns the recomputed score together with the
// caller's resulting vote direction (null after a toggle-off).
func (v *VoteController) CastVote(ctx *gin.Context) {
	var req struct {
		TargetType string `json:"targetType" binding:"required,oneof=QUESTION ANSWER"`
		TargetID   string `json:"targetId" binding:"required"`
		VoteType   string `json:"voteType" binding:"required,oneof=UP DOWN"`
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

	// The target must exist and must not belong to the voter
	var authorID, questionID string
	switch req.TargetType {
	case models.TargetQuestion:
		var question models.Question
		if err := v.db.First(&question, "id = ?", req.TargetID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Error(ctx, http.StatusNotFound, "Question not found")
				return
			}
			utils.Internal(ctx, "failed to load question", err)
			return
		}
		authorID = question.AuthorID
		questionID = question.ID
		if authorID == userID {
			utils.Error(ctx, http.StatusBadRequest, "You cannot vote on your own question")
			return
		}
	case models.TargetAnswer:
		var answer models.Answer
		if err := v.db.First(&answer, "id = ?", req.TargetID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Error(ctx, http.StatusNotFound, "Answer not found")
				return
			}
			utils.Internal(ctx, "failed to load answer", err)
			return
		}
		authorID = answer.AuthorID
		questionID = answer.QuestionID
		if authorID == userID {
			utils.Error(ctx, http.StatusBadRequest, "You cannot vote on your own answer")
			return
		}
	}

	// Insert, flip or remove in one transaction so concurrent casts cannot
	// leave two rows for the same (user, target)
	var userVote *string
	err := v.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, req.TargetType, req.TargetID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			vote := models.Vote{
				UserID:     userID,
				TargetType: req.TargetType,
				TargetID:   req.TargetID,
				VoteType:   req.VoteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			userVote = &vote.VoteType
			return nil
		case err != nil:
			return err
		case existing.VoteType == req.VoteType:
			// Same direction again: toggle off
			userVote = nil
			return tx.Delete(&existing).Error
		default:
			// Opposite direction: flip in place
			if err := tx.Model(&existing).Update("vote_type", req.VoteType).Error; err != nil {
				return err
			}
			userVote = &req.VoteType
			return nil
		}
	})
	if err != nil {
		utils.Internal(ctx, "failed to record vote", err)
		return
	}

	utils.InvalidateByPrefix("cache:questions:list:")
	utils.InvalidateByPrefix("cache:question:detail:" + questionID)

	var userVoteJSON interface{}
	if userVote != nil {
		userVoteJSON = *userVote
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"voteScore": voteScore(v.db, req.TargetType, req.TargetID),
		"userVote":  userVoteJSON,
	})
}
