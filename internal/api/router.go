// Package api exposes the learning services over HTTP.
package api

import (
	"log/slog"

	"github.com/example/aihub/internal/content"
	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/internal/excel"
	"github.com/example/aihub/internal/metrics"
	"github.com/example/aihub/internal/progress"
	"github.com/example/aihub/internal/quizgen"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Deps holds everything the handlers need.
type Deps struct {
	DB          *sqlx.DB
	Progress    *progress.Service
	Quiz        *quizgen.Service
	Content     *content.Service
	Quizzes     *database.QuizRepository
	Prompts     *database.ArticleRepository
	BaseContent *database.ArticleRepository
	Terms       *database.TermRepository
	Importer    *excel.Importer
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	CORSOrigins []string
	Version     string
}

// NewRouter builds a gin engine with the middleware chain and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(d.Logger), CORS(d.CORSOrigins))
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
	}
	SetupRoutes(router, d)
	return router
}

// SetupRoutes registers the HTTP routes on router.
func SetupRoutes(router *gin.Engine, d Deps) {
	router.GET("/", Banner(d.Version))
	router.GET("/health", Health(d.DB))
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := router.Group("/api")
	api.POST("/sessions", NewSession())

	prog := api.Group("/progress")
	{
		prog.GET("/:session", GetProgress(d.Progress))
		prog.POST("/:session/:date/:index", RecordLessonItem(d.Progress))
		prog.POST("/term/:session", RecordTerm(d.Progress))
		prog.POST("/term-progress/:session", RecordTerm(d.Progress))
		prog.POST("/quiz-score/:session", SubmitQuizScore(d.Progress))
		prog.GET("/stats/:session", GetStats(d.Progress))
		prog.GET("/achievements/:session", GetAchievements(d.Progress))
		prog.GET("/period-stats/:session", GetPeriodStats(d.Progress))
	}

	info := api.Group("/ai-info")
	{
		info.GET("/:date", GetAIInfo(d.Content))
		info.POST("", AddAIInfo(d.Content))
		info.DELETE("/:date", DeleteAIInfo(d.Content))
		info.GET("/dates/all", ListAIInfoDates(d.Content))
		info.POST("/import", ImportAIInfo(d.Importer))
		info.GET("/terms-quiz/:session", SessionTermsQuiz(d.Quiz))
		info.GET("/terms-quiz-by-date/:date", DateTermsQuiz(d.Quiz))
		info.GET("/learned-terms/:session", LearnedTerms(d.Quiz))
	}

	quiz := api.Group("/quiz")
	{
		quiz.GET("/terms/:key", GenerateTermsQuiz(d.Quiz))
		quiz.GET("/topics", ListQuizTopics(d.Quizzes))
		quiz.GET("/:topic", ListQuizzesByTopic(d.Quizzes))
		quiz.POST("", CreateQuiz(d.Quizzes))
		quiz.PUT("/:id", UpdateQuiz(d.Quizzes))
		quiz.DELETE("/:id", DeleteQuiz(d.Quizzes))
	}

	articleRoutes(api.Group("/prompt"), d.Prompts)
	articleRoutes(api.Group("/base-content"), d.BaseContent)

	term := api.Group("/term")
	{
		term.GET("/random", RandomTerm(d.Terms))
		term.GET("/all", AllTerms(d.Terms))
	}
}

func articleRoutes(g *gin.RouterGroup, repo *database.ArticleRepository) {
	g.GET("", ListArticles(repo))
	g.GET("/category/:category", ListArticlesByCategory(repo))
	g.POST("", CreateArticle(repo))
	g.PUT("/:id", UpdateArticle(repo))
	g.DELETE("/:id", DeleteArticle(repo))
}
