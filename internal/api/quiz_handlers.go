package api

import (
	"net/http"
	"strconv"

	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/internal/progress"
	"github.com/example/aihub/internal/quizgen"
	"github.com/example/aihub/pkg/models"
	"github.com/gin-gonic/gin"
)

// GenerateTermsQuiz builds a term quiz. A key shaped like a date selects the
// terms of that day's lessons, anything else is treated as a session id.
func GenerateTermsQuiz(svc *quizgen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		var (
			set quizgen.QuizSet
			err error
		)
		if progress.ValidDate(key) {
			set, err = svc.DateQuiz(c.Request.Context(), key)
		} else {
			set, err = svc.SessionQuiz(c.Request.Context(), key)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, set)
	}
}

// SessionTermsQuiz builds a quiz from the terms a session has learned.
func SessionTermsQuiz(svc *quizgen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		set, err := svc.SessionQuiz(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, set)
	}
}

// DateTermsQuiz builds a quiz from the terms of one day's lessons.
func DateTermsQuiz(svc *quizgen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		set, err := svc.DateQuiz(c.Request.Context(), c.Param("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, set)
	}
}

// LearnedTerms lists the terms a session has learned grouped by date.
func LearnedTerms(svc *quizgen.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.LearnedTerms(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func ListQuizTopics(repo *database.QuizRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		topics, err := repo.Topics(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if topics == nil {
			topics = []string{}
		}
		c.JSON(http.StatusOK, topics)
	}
}

func ListQuizzesByTopic(repo *database.QuizRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		quizzes, err := repo.ListByTopic(c.Request.Context(), c.Param("topic"))
		if err != nil {
			respondError(c, err)
			return
		}
		if quizzes == nil {
			quizzes = []models.Quiz{}
		}
		c.JSON(http.StatusOK, quizzes)
	}
}

func CreateQuiz(repo *database.QuizRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var quiz models.Quiz
		if err := c.ShouldBindJSON(&quiz); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := repo.Create(c.Request.Context(), &quiz); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, quiz)
	}
}

func UpdateQuiz(repo *database.QuizRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var quiz models.Quiz
		if err := c.ShouldBindJSON(&quiz); err != nil {
			badRequest(c, err.Error())
			return
		}
		quiz.ID = id
		if err := repo.Update(c.Request.Context(), &quiz); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, quiz)
	}
}

func DeleteQuiz(repo *database.QuizRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
	}
}

// paramID parses the :id path parameter, answering 400 when it is not a
// positive integer.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
