package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-editor/pkg/models"
	"post-editor/pkg/services"
)

const configMissing = "Config missing"

// articleFilename validates the :filename segment, already unescaped once by the router.
func articleFilename(c *gin.Context) (string, bool) {
	name := c.Param("filename")
	if !services.ValidateFilename(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return "", false
	}
	return name, true
}

func ListArticles(c *gin.Context) {
	store, ok := requireStore(c, configMissing)
	if !ok {
		return
	}

	articles, err := services.ListArticles(c.Request.Context(), store)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	filename, ok := articleFilename(c)
	if !ok {
		return
	}
	store, ok := requireStore(c, configMissing)
	if !ok {
		return
	}

	art, err := services.LoadArticle(c.Request.Context(), store, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, art)
}

func SaveArticle(c *gin.Context) {
	filename, ok := articleFilename(c)
	if !ok {
		return
	}

	var req models.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	store, ok := requireStore(c, configMissing)
	if !ok {
		return
	}

	sha, err := services.SaveArticle(c.Request.Context(), store, filename, req, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sha": sha})
}

func DeleteArticle(c *gin.Context) {
	filename, ok := articleFilename(c)
	if !ok {
		return
	}

	var req models.DeleteArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sha is required"})
		return
	}

	store, ok := requireStore(c, configMissing)
	if !ok {
		return
	}

	if err := services.DeleteArticle(c.Request.Context(), store, filename, req.SHA, currentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func PreviewArticle(c *gin.Context) {
	filename, ok := articleFilename(c)
	if !ok {
		return
	}
	store, ok := requireStore(c, configMissing)
	if !ok {
		return
	}

	art, err := services.LoadArticle(c.Request.Context(), store, filename)
	if err != nil {
		respondError(c, err)
		return
	}

	preview, err := services.RenderPreview(art.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	if section := c.Query("section"); section != "" {
		preview.Nav.Activate(section)
	}

	var nav bytes.Buffer
	if err := preview.Nav.Render(&nav); err != nil {
		respondError(c, err)
		return
	}

	c.HTML(http.StatusOK, "preview.html", gin.H{
		"Title":  art.Title,
		"Author": art.Author,
		"Body":   template.HTML(preview.Body),
		"TOC":    template.HTML(nav.String()),
	})
}
