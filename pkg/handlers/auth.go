package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"post-editor/pkg/config"
	"post-editor/pkg/models"
	"post-editor/pkg/services"
)

const (
	sessionLoginKey = "user_login"
	sessionNameKey  = "user_name"
	sessionEmailKey = "user_email"
	oauthStateKey   = "oauth_state"

	identityKey = "identity"
)

func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	login, _ := session.Get(sessionLoginKey).(string)
	if login == "" {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}

	name, _ := session.Get(sessionNameKey).(string)
	email, _ := session.Get(sessionEmailKey).(string)
	c.Set(identityKey, models.Identity{Login: login, Name: name, Email: email})
	c.Next()
}

// currentIdentity returns the editor set by AuthRequired.
func currentIdentity(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}

func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": c.Query("error")})
}

func IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"User": currentIdentity(c)})
}

func GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session save failed")
		return
	}

	url := config.OauthConf.AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	if expected == "" || c.Query("state") != expected {
		_ = session.Save()
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	ctx := c.Request.Context()
	token, err := config.OauthConf.Exchange(ctx, c.Query("code"))
	if err != nil {
		slog.Error("oauth exchange failed", "error", err)
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	id, err := services.FetchIdentity(ctx, config.OauthConf.Client(ctx, token))
	if err != nil {
		if id.Login == "" {
			slog.Error("fetch github user failed", "error", err)
			c.String(http.StatusInternalServerError, "Failed to fetch GitHub user")
			return
		}
		slog.Warn("github email lookup failed", "login", id.Login, "error", err)
	}

	session.Set(sessionLoginKey, id.Login)
	session.Set(sessionNameKey, id.Name)
	session.Set(sessionEmailKey, id.Email)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session save failed")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
