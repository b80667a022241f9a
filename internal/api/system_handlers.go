package api

import (
	"context"
	"net/http"
	"time"

	"github.com/example/aihub/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func Banner(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "AI Mastery Hub API", "version": version})
	}
}

// Health reports whether the database answers a ping.
func Health(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			loggerFrom(c).Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// NewSession issues a fresh session id. Sessions have no server side state
// until progress is first recorded.
func NewSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"session_id": uuid.NewString()})
	}
}

func RandomTerm(repo *database.TermRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		term, err := repo.Random(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, term)
	}
}

func AllTerms(repo *database.TermRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		terms, err := repo.All(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, terms)
	}
}
