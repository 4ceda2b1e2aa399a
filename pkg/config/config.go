package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	Port          = "8080"
	AppEnv        = "development"
	SessionSecret = ""

	// Remote repository settings
	GithubToken  = ""
	GithubOwner  = ""
	GithubRepo   = ""
	GithubBranch = ""
	GithubAPIURL = ""

	// Content layout inside the remote repository
	PostsDir  = "_posts"
	AssetsDir = "assets/images"

	// Commit attribution used when the session identity is incomplete
	FallbackCommitterName  = "Editor App"
	FallbackCommitterEmail = "editor@example.com"
)

var OauthConf *oauth2.Config

// RepoSettings identifies the remote repository every content call targets.
type RepoSettings struct {
	Token   string
	Owner   string
	Name    string
	Branch  string
	BaseURL string
}

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := GetAppURL()
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	Port = getEnv("PORT", "8080")
	AppEnv = getEnv("APP_ENV", "development")
	SessionSecret = os.Getenv("SESSION_SECRET")

	GithubToken = os.Getenv("GITHUB_TOKEN")
	GithubOwner = os.Getenv("GITHUB_OWNER")
	GithubRepo = os.Getenv("GITHUB_REPO")
	GithubBranch = os.Getenv("GITHUB_BRANCH")
	GithubAPIURL = os.Getenv("GITHUB_API_URL")

	PostsDir = strings.Trim(getEnv("POSTS_DIR", "_posts"), "/")
	AssetsDir = strings.Trim(getEnv("ASSETS_DIR", "assets/images"), "/")

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

// GetAppURL returns the public base URL of the editor.
func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}

// IsProduction reports whether error details must be hidden from callers.
func IsProduction() bool {
	return strings.EqualFold(AppEnv, "production")
}

// Repo returns the current remote repository settings.
func Repo() RepoSettings {
	return RepoSettings{
		Token:   GithubToken,
		Owner:   GithubOwner,
		Name:    GithubRepo,
		Branch:  GithubBranch,
		BaseURL: GithubAPIURL,
	}
}

// Validate fails when the owner or repository name is missing.
func (r RepoSettings) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Owner, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
}
