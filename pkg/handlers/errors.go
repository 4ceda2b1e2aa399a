package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-editor/pkg/config"
	"post-editor/pkg/services"
)

// openStore opens a remote client for one request.
var openStore = func(ctx context.Context) (services.ContentStore, error) {
	return services.NewGitHubStore(ctx, config.Repo())
}

// requireStore answers 500 with missingMsg when the repository is not configured.
func requireStore(c *gin.Context, missingMsg string) (services.ContentStore, bool) {
	if err := config.Repo().Validate(); err != nil {
		slog.Error("repository configuration invalid", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": missingMsg})
		return nil, false
	}

	store, err := openStore(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return store, true
}

func safeErrorMessage(err error) string {
	if config.IsProduction() {
		return "An internal error occurred"
	}
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}

func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found or is a directory"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "File has changed since it was loaded"})
	default:
		slog.Error("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": safeErrorMessage(err)})
	}
}
