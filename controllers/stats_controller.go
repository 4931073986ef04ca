package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// StatsController reports site-wide totals and today's question views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// Overview returns user, question and answer totals plus the number of
// question detail views recorded today.
func (s *StatsController) Overview(ctx *gin.Context) {
	var users, questions, answers int64
	if err := s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		utils.Internal(ctx, "failed to count users", err)
		return
	}
	if err := s.db.Model(&models.Question{}).Count(&questions).Error; err != nil {
		utils.Internal(ctx, "failed to count questions", err)
		return
	}
	if err := s.db.Model(&models.Answer{}).Count(&answers).Error; err != nil {
		utils.Internal(ctx, "failed to count answers", err)
		return
	}

	now := time.Now().In(time.Local)
	localMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var viewsToday int64
	if err := s.db.Model(&models.QuestionView{}).
		Select("COALESCE(SUM(count), 0)").
		Where("date = ?", localMidnight).
		Scan(&viewsToday).Error; err != nil {
		utils.Internal(ctx, "failed to sum question views", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users":      users,
		"questions":  questions,
		"answers":    answers,
		"viewsToday": viewsToday,
	})
}
