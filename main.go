package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"post-editor/pkg/config"
	"post-editor/pkg/handlers"
)

func main() {
	// Initialize config
	config.Init()
	setupLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := config.SessionSecret
	if secret == "" {
		slog.Warn("SESSION_SECRET not set, sessions will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}

	// Session Setup
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	r, err := handlers.SetupRouter(store)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("starting editor", "port", config.Port, "owner", config.GithubOwner, "repo", config.GithubRepo)
	if err := r.Run(":" + config.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger() {
	var h slog.Handler
	if config.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
