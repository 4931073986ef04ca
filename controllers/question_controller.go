package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/models"
	"github.com/askloop/askloop/utils"
)

// QuestionController manages question creation and the read paths the client
// browses: filtered lists and the full detail view.
type QuestionController struct {
	db *gorm.DB
}

// NewQuestionController creates a new QuestionController instance.
func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{db: db}
}

// CreateQuestion allows authenticated users to post a new question.
func (q *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required,min=10"`
		Description string   `json:"description" binding:"required,min=20"`
		Tags        []string `json:"tags" binding:"required,min=1,max=5"`
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

	tags := normalizeTags(req.Tags)
	if len(tags) == 0 {
		utils.Error(ctx, http.StatusBadRequest, "At least one tag is required")
		return
	}

	question := models.Question{
		Title:       utils.Sanitize(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		AuthorID:    userID,
	}
	question.SetTags(tags)

	if err := q.db.Create(&question).Error; err != nil {
		utils.Internal(ctx, "failed to create question", err)
		return
	}

	// Keep the explicit tag catalog in sync with names used on questions
	for _, name := range tags {
		_ = q.db.Where(models.Tag{Name: name}).FirstOrCreate(&models.Tag{Name: name}).Error
	}

	if err := q.db.Preload("Author").First(&question, "id = ?", question.ID).Error; err != nil {
		utils.Internal(ctx, "failed to load question", err)
		return
	}

	utils.InvalidateByPrefix("cache:questions:list:")

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"question": gin.H{
			"id":          question.ID,
			"title":       question.Title,
			"description": question.Description,
			"tags":        question.Tags(),
			"author":      authorJSON(question.Author),
			"createdAt":   question.CreatedAt,
			"answerCount": 0,
			"voteScore":   0,
		},
	})
}

// ListQuestions returns paginated questions with vote scores and accepted flags.
func (q *QuestionController) ListQuestions(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	search := strings.TrimSpace(ctx.Query("search"))
	tagsParam := strings.TrimSpace(ctx.Query("tags"))
	sort := strings.TrimSpace(ctx.Query("sort"))
	switch sort {
	case "newest", "oldest", "popular":
	default:
		sort = "newest"
	}

	// Cache filtered lists only when there is no free-text search term,
	// to avoid cache key explosion
	cacheKey := fmt.Sprintf("cache:questions:list:tags=%s:sort=%s:page=%d:limit=%d", tagsParam, sort, page, limit)
	if search == "" {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if search != "" {
			tx = tx.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
		}
		if tagsParam != "" {
			var conds []string
			var args []interface{}
			for _, tag := range strings.Split(tagsParam, ",") {
				tag = strings.TrimSpace(tag)
				if tag == "" {
					continue
				}
				conds = append(conds, "tag_names LIKE ?")
				args = append(args, `%"`+tag+`"%`)
			}
			if len(conds) > 0 {
				tx = tx.Where(strings.Join(conds, " OR "), args...)
			}
		}
		return tx
	}

	var total int64
	if err := filter(q.db.Model(&models.Question{})).Count(&total).Error; err != nil {
		utils.Internal(ctx, "failed to count questions", err)
		return
	}

	query := filter(q.db.Preload("Author"))
	switch sort {
	case "oldest":
		query = query.Order("created_at ASC")
	case "popular":
		query = query.Order("(SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var questions []models.Question
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&questions).Error; err != nil {
		utils.Internal(ctx, "failed to list questions", err)
		return
	}

	items := make([]gin.H, 0, len(questions))
	for _, question := range questions {
		var answerCount int64
		q.db.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&answerCount)
		var acceptedCount int64
		q.db.Model(&models.Answer{}).Where("question_id = ? AND is_accepted = ?", question.ID, true).Count(&acceptedCount)

		items = append(items, gin.H{
			"id":                question.ID,
			"title":             question.Title,
			"description":       question.Description,
			"tags":              question.Tags(),
			"author":            authorJSON(question.Author),
			"createdAt":         question.CreatedAt,
			"updatedAt":         question.UpdatedAt,
			"answerCount":       answerCount,
			"voteScore":         voteScore(q.db, models.TargetQuestion, question.ID),
			"hasAcceptedAnswer": acceptedCount > 0,
		})
	}

	payload := gin.H{
		"questions": items,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	}
	if search == "" {
		utils.CacheSetJSON(cacheKey, payload, time.Hour)
	}
	ctx.JSON(http.StatusOK, payload)
}

// GetQuestion returns a single question with its answers, ordered accepted
// answer first and then oldest first.
func (q *QuestionController) GetQuestion(ctx *gin.Context) {
	questionID := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:question:detail:" + questionID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var question models.Question
	if err := q.db.Preload("Author").First(&question, "id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, "Question not found")
			return
		}
		utils.Internal(ctx, "failed to load question", err)
		return
	}

	var answers []models.Answer
	if err := q.db.Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Comments.Author").
		Where("question_id = ?", question.ID).
		Order("is_accepted DESC").Order("created_at ASC").
		Find(&answers).Error; err != nil {
		utils.Internal(ctx, "failed to load answers", err)
		return
	}

	formattedAnswers := make([]gin.H, 0, len(answers))
	for _, answer := range answers {
		comments := make([]gin.H, 0, len(answer.Comments))
		for _, comment := range answer.Comments {
			comments = append(comments, gin.H{
				"id":        comment.ID,
				"content":   comment.Content,
				"author":    authorJSON(comment.Author),
				"createdAt": comment.CreatedAt,
			})
		}
		formattedAnswers = append(formattedAnswers, gin.H{
			"id":         answer.ID,
			"content":    answer.Content,
			"author":     authorJSON(answer.Author),
			"isAccepted": answer.IsAccepted,
			"createdAt":  answer.CreatedAt,
			"updatedAt":  answer.UpdatedAt,
			"voteScore":  voteScore(q.db, models.TargetAnswer, answer.ID),
			"votes":      voteList(q.db, models.TargetAnswer, answer.ID),
			"comments":   comments,
		})
	}

	payload := gin.H{
		"question": gin.H{
			"id":          question.ID,
			"title":       question.Title,
			"description": question.Description,
			"tags":        question.Tags(),
			"author":      authorJSON(question.Author),
			"createdAt":   question.CreatedAt,
			"updatedAt":   question.UpdatedAt,
			"voteScore":   voteScore(q.db, models.TargetQuestion, question.ID),
			"votes":       voteList(q.db, models.TargetQuestion, question.ID),
			"answers":     formattedAnswers,
			"answerCount": len(formattedAnswers),
		},
	}
	utils.CacheSetJSON("cache:question:detail:"+questionID, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// voteList returns the per-user vote directions for a target, letting the
// client highlight the acting user's own vote.
func voteList(db *gorm.DB, targetType, targetID string) []gin.H {
	var votes []models.Vote
	db.Where("target_type = ? AND target_id = ?", targetType, targetID).Find(&votes)
	list := make([]gin.H, 0, len(votes))
	for _, v := range votes {
		list = append(list, gin.H{"voteType": v.VoteType, "userId": v.UserID})
	}
	return list
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return utils.UniqueStrings(tags)
}
