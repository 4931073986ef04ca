package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askloop/askloop/config"
	"github.com/askloop/askloop/controllers"
	"github.com/askloop/askloop/middleware"
	"github.com/askloop/askloop/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	questionController := controllers.NewQuestionController(db)
	answerController := controllers.NewAnswerController(db)
	commentController := controllers.NewCommentController(db)
	voteController := controllers.NewVoteController(db)
	notificationController := controllers.NewNotificationController(db)
	moderationController := controllers.NewModerationController(db)
	tagController := controllers.NewTagController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/questions", questionController.ListQuestions)
	api.GET("/questions/:id", middleware.QuestionViewRecorder(db), questionController.GetQuestion)
	api.GET("/tags", tagController.ListTags)
	api.GET("/stats", statsController.Overview)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/questions", questionController.CreateQuestion)
	protected.POST("/answers", answerController.CreateAnswer)
	protected.PATCH("/answers/:id", answerController.SetAccepted)
	protected.POST("/comments", commentController.CreateComment)
	protected.POST("/votes", voteController.CastVote)
	protected.GET("/notifications", notificationController.ListNotifications)
	protected.PATCH("/notifications", notificationController.MarkRead)

	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	moderation.DELETE("/questions/:id", moderationController.DeleteQuestion)
	moderation.DELETE("/users/:id", moderationController.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, "Route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
