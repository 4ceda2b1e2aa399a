package config

import "testing"

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("GITHUB_OWNER", "octo")
	t.Setenv("GITHUB_REPO", "blog")
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("POSTS_DIR", "/content/posts/")
	t.Setenv("ASSETS_DIR", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_URL", "https://editor.example.com")
	t.Setenv("GITHUB_REDIRECT_URL", "")

	Init()

	if GithubOwner != "octo" || GithubRepo != "blog" || GithubToken != "secret" {
		t.Fatalf("unexpected repo settings: %+v", Repo())
	}
	if PostsDir != "content/posts" {
		t.Errorf("PostsDir = %q, want content/posts", PostsDir)
	}
	if AssetsDir != "assets/images" {
		t.Errorf("AssetsDir = %q, want assets/images", AssetsDir)
	}
	if !IsProduction() {
		t.Error("expected production mode")
	}
	if OauthConf.RedirectURL != "https://editor.example.com/auth/callback" {
		t.Errorf("RedirectURL = %q", OauthConf.RedirectURL)
	}
}

func TestRepoSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		repo    RepoSettings
		wantErr bool
	}{
		{"complete", RepoSettings{Owner: "octo", Name: "blog"}, false},
		{"token optional", RepoSettings{Owner: "octo", Name: "blog", Token: ""}, false},
		{"missing owner", RepoSettings{Name: "blog"}, true},
		{"missing repo", RepoSettings{Owner: "octo"}, true},
		{"empty", RepoSettings{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.repo.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetAppURL(t *testing.T) {
	t.Setenv("APP_URL", "")
	if got := GetAppURL(); got != "http://localhost:8080" {
		t.Errorf("default = %q", got)
	}

	t.Setenv("APP_URL", "https://editor.example.com")
	t.Setenv("GITHUB_REDIRECT_URL", "")
	Init()
	if OauthConf.RedirectURL != GetAppURL()+"/auth/callback" {
		t.Errorf("RedirectURL = %q", OauthConf.RedirectURL)
	}
}
