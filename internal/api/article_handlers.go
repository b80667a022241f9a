package api

import (
	"net/http"

	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/pkg/models"
	"github.com/gin-gonic/gin"
)

// Prompts and base content share these handlers; repo selects the table.

func ListArticles(repo *database.ArticleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(articles))
	}
}

func ListArticlesByCategory(repo *database.ArticleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := repo.ListByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(articles))
	}
}

func CreateArticle(repo *database.ArticleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a models.Article
		if err := c.ShouldBindJSON(&a); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := repo.Create(c.Request.Context(), &a); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func UpdateArticle(repo *database.ArticleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var a models.Article
		if err := c.ShouldBindJSON(&a); err != nil {
			badRequest(c, err.Error())
			return
		}
		a.ID = id
		if err := repo.Update(c.Request.Context(), &a); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func DeleteArticle(repo *database.ArticleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
	}
}

func nonNil(articles []models.Article) []models.Article {
	if articles == nil {
		return []models.Article{}
	}
	return articles
}
