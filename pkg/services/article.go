package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"post-editor/pkg/config"
	"post-editor/pkg/models"
)

// LoadArticle fetches and parses a post. filename must already be validated.
func LoadArticle(ctx context.Context, store ContentStore, filename string) (*models.Article, error) {
	file, err := store.GetFile(ctx, PostPath(filename))
	if err != nil {
		return nil, err
	}

	art, err := ParseArticle(file.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	art.SHA = file.SHA
	return art, nil
}

// ListArticles returns the Markdown files of the posts directory. A missing
// directory is an empty listing.
func ListArticles(ctx context.Context, store ContentStore) ([]models.ArticleSummary, error) {
	entries, err := store.ListDir(ctx, config.PostsDir)
	if errors.Is(err, ErrNotFound) {
		return []models.ArticleSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	articles := make([]models.ArticleSummary, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, MarkdownExt) {
			continue
		}
		articles = append(articles, models.ArticleSummary{Name: e.Name, SHA: e.SHA, Size: e.Size})
	}
	return articles, nil
}

// SaveArticle creates the post when req.SHA is empty and updates it otherwise.
// Front matter keys the editor does not manage survive an update.
func SaveArticle(ctx context.Context, store ContentStore, filename string, req models.SaveArticleRequest, who models.Identity) (string, error) {
	var extra map[string]interface{}
	var format string
	verb := "Create"

	if req.SHA != "" {
		verb = "Update"
		current, err := LoadArticle(ctx, store, filename)
		if err != nil {
			return "", err
		}
		if current.SHA != req.SHA {
			return "", fmt.Errorf("save %s: %w", filename, ErrConflict)
		}
		extra = current.Extra
		format = current.Format
	}

	content, err := BuildArticleContent(req, extra, format)
	if err != nil {
		return "", err
	}

	return store.PutFile(ctx, PostPath(filename), content, CommitOptions{
		Message:   fmt.Sprintf("%s article %s by %s", verb, filename, who.Email),
		SHA:       req.SHA,
		Committer: who,
	})
}

// DeleteArticle removes the post at version sha.
func DeleteArticle(ctx context.Context, store ContentStore, filename, sha string, who models.Identity) error {
	return store.DeleteFile(ctx, PostPath(filename), CommitOptions{
		Message:   fmt.Sprintf("Delete article %s by %s", filename, who.Email),
		SHA:       sha,
		Committer: who,
	})
}
