package api

import (
	"errors"
	"net/http"

	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/internal/excel"
	"github.com/example/aihub/internal/progress"
	"github.com/gin-gonic/gin"
)

// respondError maps err onto a status code. Server errors are logged and
// their details withheld from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, progress.ErrInvalidInput), errors.Is(err, excel.ErrUnreadable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		loggerFrom(c).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
