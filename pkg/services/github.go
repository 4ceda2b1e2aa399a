package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"post-editor/pkg/config"
	"post-editor/pkg/models"
)

// GitHubStore implements ContentStore on top of the GitHub contents API.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

// NewGitHubStore builds a store for the configured repository. The token, when
// set, authenticates every call.
func NewGitHubStore(ctx context.Context, settings config.RepoSettings) (*GitHubStore, error) {
	var httpClient *http.Client
	if settings.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token}))
	}

	client, err := newGitHubClient(httpClient, settings.BaseURL)
	if err != nil {
		return nil, err
	}

	return &GitHubStore{
		client: client,
		owner:  settings.Owner,
		repo:   settings.Name,
		branch: settings.Branch,
	}, nil
}

func newGitHubClient(httpClient *http.Client, baseURL string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if baseURL == "" {
		return client, nil
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
	}
	client.BaseURL = u
	return client, nil
}

func (s *GitHubStore) getOptions() *github.RepositoryContentGetOptions {
	if s.branch == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: s.branch}
}

func (s *GitHubStore) GetFile(ctx context.Context, path string) (*RemoteFile, error) {
	file, dir, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, s.getOptions())
	if err != nil {
		return nil, mapRemoteError("get", path, err)
	}
	if file == nil || dir != nil {
		return nil, fmt.Errorf("get %s: is a directory: %w", path, ErrNotFound)
	}
	// Files above the API size limit come back without inline content.
	if file.Content == nil || file.GetEncoding() == "none" {
		return nil, fmt.Errorf("get %s: no content: %w", path, ErrNotFound)
	}

	decoded, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &RemoteFile{
		Path:    file.GetPath(),
		SHA:     file.GetSHA(),
		Size:    file.GetSize(),
		Content: []byte(decoded),
	}, nil
}

func (s *GitHubStore) ListDir(ctx context.Context, path string) ([]RemoteEntry, error) {
	file, dir, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, s.getOptions())
	if err != nil {
		return nil, mapRemoteError("list", path, err)
	}
	if file != nil {
		return nil, fmt.Errorf("list %s: not a directory: %w", path, ErrNotFound)
	}

	entries := make([]RemoteEntry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, RemoteEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: item.GetType(),
			SHA:  item.GetSHA(),
			Size: item.GetSize(),
		})
	}
	return entries, nil
}

func (s *GitHubStore) PutFile(ctx context.Context, path string, content []byte, opts CommitOptions) (string, error) {
	fileOpts := s.fileOptions(opts)
	fileOpts.Content = content

	var (
		res *github.RepositoryContentResponse
		err error
	)
	if opts.SHA == "" {
		res, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, path, fileOpts)
	} else {
		res, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, fileOpts)
	}
	if err != nil {
		return "", mapRemoteError("put", path, err)
	}
	if res == nil {
		return "", nil
	}
	return res.Content.GetSHA(), nil
}

func (s *GitHubStore) DeleteFile(ctx context.Context, path string, opts CommitOptions) error {
	if _, _, err := s.client.Repositories.DeleteFile(ctx, s.owner, s.repo, path, s.fileOptions(opts)); err != nil {
		return mapRemoteError("delete", path, err)
	}
	return nil
}

func (s *GitHubStore) fileOptions(opts CommitOptions) *github.RepositoryContentFileOptions {
	fileOpts := &github.RepositoryContentFileOptions{
		Message:   github.String(opts.Message),
		Committer: committer(opts.Committer),
	}
	if opts.SHA != "" {
		fileOpts.SHA = github.String(opts.SHA)
	}
	if s.branch != "" {
		fileOpts.Branch = github.String(s.branch)
	}
	return fileOpts
}

func committer(id models.Identity) *github.CommitAuthor {
	name := id.Name
	if name == "" {
		name = config.FallbackCommitterName
	}
	email := id.Email
	if email == "" {
		email = config.FallbackCommitterEmail
	}
	return &github.CommitAuthor{Name: github.String(name), Email: github.String(email)}
}

func mapRemoteError(op, path string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s %s: %w", op, path, ErrNotFound)
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("%s %s: %s: %w", op, path, ghErr.Message, ErrConflict)
		}
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

// FetchIdentity reads the profile of the user behind httpClient. The primary
// verified email is looked up when the profile hides it.
func FetchIdentity(ctx context.Context, httpClient *http.Client) (models.Identity, error) {
	client, err := newGitHubClient(httpClient, config.GithubAPIURL)
	if err != nil {
		return models.Identity{}, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return models.Identity{}, fmt.Errorf("fetch user: %w", err)
	}

	id := models.Identity{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}
	if id.Name == "" {
		id.Name = id.Login
	}

	if id.Email == "" {
		emails, _, err := client.Users.ListEmails(ctx, nil)
		if err != nil {
			return id, fmt.Errorf("fetch emails: %w", err)
		}
		for _, e := range emails {
			if e.GetPrimary() && e.GetVerified() {
				id.Email = e.GetEmail()
				break
			}
		}
	}
	return id, nil
}
