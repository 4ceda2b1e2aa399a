package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-editor/pkg/services"
)

// Uploads are read in full; larger request bodies are cut off early.
const maxUploadBody = 2 * services.MaxUploadSize

func UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrFileTooLarge.Msg})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if err := services.ValidateImageHeader(header); err != nil {
		respondError(c, err)
		return
	}
	data, err := services.ReadImage(header)
	if err != nil {
		respondError(c, err)
		return
	}

	store, ok := requireStore(c, "GitHub configuration missing")
	if !ok {
		return
	}

	info, err := services.SaveImage(c.Request.Context(), store, header, data, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// Site-relative path for the rendered post
	c.JSON(http.StatusOK, gin.H{"url": info.URL})
}
