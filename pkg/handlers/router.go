package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"post-editor/web"
)

const sessionName = "mysession"

// SetupRouter wires every page and API route on a new engine.
func SetupRouter(store sessions.Store) (*gin.Engine, error) {
	r := gin.Default()
	// Route on the escaped path so an encoded separator stays inside :filename.
	r.UseRawPath = true
	r.UnescapePathValues = true

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// Session Setup
	r.Use(sessions.Sessions(sessionName, store))

	r.StaticFS("/static", http.FS(web.Static()))

	// --- Auth Routes ---
	r.GET("/login", LoginPage)
	r.GET("/login/github", GithubLogin)
	r.GET("/auth/callback", AuthCallback)
	r.GET("/logout", Logout)

	// --- Main App (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(AuthRequired)
	{
		authorized.GET("/", IndexPage)

		api := authorized.Group("/api")
		{
			api.GET("/articles", ListArticles)
			api.GET("/articles/:filename", GetArticle)
			api.PUT("/articles/:filename", SaveArticle)
			api.DELETE("/articles/:filename", DeleteArticle)
			api.GET("/articles/:filename/preview", PreviewArticle)
			api.POST("/upload", UploadImage)
		}
	}

	return r, nil
}
