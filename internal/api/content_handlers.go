package api

import (
	"net/http"

	"github.com/example/aihub/internal/content"
	"github.com/example/aihub/internal/excel"
	"github.com/gin-gonic/gin"
)

type addInfoRequest struct {
	Date  string         `json:"date" binding:"required"`
	Infos []content.Item `json:"infos" binding:"required"`
}

func GetAIInfo(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ItemsByDate(c.Request.Context(), c.Param("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// AddAIInfo stores lesson items in the free slots of a date.
func AddAIInfo(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		items, err := svc.Add(c.Request.Context(), req.Date, req.Infos)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": req.Date, "infos": items})
	}
}

func DeleteAIInfo(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if err := svc.DeleteDate(c.Request.Context(), date); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "AI info deleted successfully", "date": date})
	}
}

func ListAIInfoDates(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		dates, err := svc.Dates(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if dates == nil {
			dates = []string{}
		}
		c.JSON(http.StatusOK, dates)
	}
}

// ImportAIInfo loads lesson items from an uploaded spreadsheet in the
// multipart field "file".
func ImportAIInfo(im *excel.Importer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file is required")
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()

		result, err := im.Import(c.Request.Context(), f, fh.Filename)
		if err != nil {
			respondError(c, err)
			return
		}
		loggerFrom(c).Info("lessons imported",
			"file", fh.Filename,
			"imported", result.Imported,
			"skipped", result.Skipped,
		)
		c.JSON(http.StatusOK, result)
	}
}
