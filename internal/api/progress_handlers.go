package api

import (
	"net/http"
	"strconv"

	"github.com/example/aihub/internal/progress"
	"github.com/gin-gonic/gin"
)

type termProgressRequest struct {
	Term      string `json:"term" binding:"required"`
	Date      string `json:"date" binding:"required"`
	InfoIndex int    `json:"info_index"`
}

type quizScoreRequest struct {
	Score               int  `json:"score"`
	TotalQuestions      *int `json:"total_questions"`
	TotalQuestionsCamel *int `json:"totalQuestions"`
}

// GetProgress returns the learned items of a session by date with its
// cached statistics.
func GetProgress(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := svc.Overview(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

// RecordLessonItem marks one lesson item of a date as learned.
func RecordLessonItem(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			badRequest(c, "index must be a number")
			return
		}
		stats, err := svc.LearnItem(c.Request.Context(), c.Param("session"), c.Param("date"), index)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Progress updated successfully", "stats": stats})
	}
}

// RecordTerm marks a term of a lesson item as learned.
func RecordTerm(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req termProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		stats, err := svc.LearnTerm(c.Request.Context(), c.Param("session"), req.Date, req.InfoIndex, req.Term)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Term progress updated successfully", "stats": stats})
	}
}

// SubmitQuizScore records a finished quiz. The question count defaults to 1.
func SubmitQuizScore(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quizScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		total := 1
		switch {
		case req.TotalQuestions != nil:
			total = *req.TotalQuestions
		case req.TotalQuestionsCamel != nil:
			total = *req.TotalQuestionsCamel
		}
		res, err := svc.SubmitQuizScore(c.Request.Context(), c.Param("session"), req.Score, total)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":          "Quiz score updated successfully",
			"quiz_score":       res.QuizScore,
			"new_achievements": res.NewAchievements,
		})
	}
}

// GetStats returns the live statistics of a session.
func GetStats(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetAchievements evaluates and returns the badges of a session.
func GetAchievements(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Achievements(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GetPeriodStats returns per-day activity over ?start=&end= (or
// start_date/end_date).
func GetPeriodStats(svc *progress.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := firstQuery(c, "start", "start_date")
		end := firstQuery(c, "end", "end_date")
		if start == "" || end == "" {
			badRequest(c, "start and end dates are required")
			return
		}
		report, err := svc.PeriodStats(c.Request.Context(), c.Param("session"), start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
