package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"post-editor/pkg/models"
)

type memStore struct {
	files   map[string]*RemoteFile
	entries []RemoteEntry
	listErr error
	lastPut CommitOptions
	lastDel CommitOptions
	seq     int
}

func newMemStore() *memStore {
	return &memStore{files: map[string]*RemoteFile{}}
}

func (m *memStore) GetFile(_ context.Context, path string) (*RemoteFile, error) {
	f, ok := m.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (m *memStore) ListDir(_ context.Context, _ string) ([]RemoteEntry, error) {
	return m.entries, m.listErr
}

func (m *memStore) PutFile(_ context.Context, path string, content []byte, opts CommitOptions) (string, error) {
	m.lastPut = opts
	m.seq++
	m.files[path] = &RemoteFile{Path: path, SHA: fmt.Sprintf("sha-%d", m.seq), Content: content}
	return m.files[path].SHA, nil
}

func (m *memStore) DeleteFile(_ context.Context, path string, opts CommitOptions) error {
	m.lastDel = opts
	f, ok := m.files[path]
	if !ok {
		return ErrNotFound
	}
	if f.SHA != opts.SHA {
		return ErrConflict
	}
	delete(m.files, path)
	return nil
}

func TestLoadArticle(t *testing.T) {
	store := newMemStore()
	store.files["_posts/post.md"] = &RemoteFile{SHA: "v1", Content: []byte("---\ntitle: Hi\ntags: go\n---\nBody")}

	art, err := LoadArticle(context.Background(), store, "post.md")
	if err != nil {
		t.Fatalf("LoadArticle: %v", err)
	}
	if art.Title != "Hi" || art.Content != "Body" || art.SHA != "v1" {
		t.Errorf("article = %+v", art)
	}
	if len(art.Tags) != 1 || art.Tags[0] != "go" {
		t.Errorf("Tags = %#v", art.Tags)
	}

	if _, err := LoadArticle(context.Background(), store, "missing.md"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListArticles(t *testing.T) {
	store := newMemStore()
	store.entries = []RemoteEntry{
		{Name: "a.md", Type: "file", SHA: "1", Size: 3},
		{Name: "notes.txt", Type: "file", SHA: "2"},
		{Name: "drafts.md", Type: "dir", SHA: "3"},
	}

	list, err := ListArticles(context.Background(), store)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(list) != 1 || list[0].Name != "a.md" || list[0].SHA != "1" {
		t.Fatalf("list = %+v", list)
	}

	store.listErr = ErrNotFound
	list, err = ListArticles(context.Background(), store)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("missing dir: list = %#v, err = %v", list, err)
	}
}

func TestSaveArticle_CreateAndUpdate(t *testing.T) {
	store := newMemStore()
	who := identityFixture()

	sha, err := SaveArticle(context.Background(), store, "post.md", models.SaveArticleRequest{
		Title:   "First",
		Content: "Body",
	}, who)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(store.lastPut.Message, "Create article post.md by ann@example.com") {
		t.Errorf("message = %q", store.lastPut.Message)
	}

	// Simulate a key added outside the editor.
	stored := store.files["_posts/post.md"]
	stored.Content = []byte("---\nlayout: post\ntitle: First\n---\nBody\n")

	_, err = SaveArticle(context.Background(), store, "post.md", models.SaveArticleRequest{
		Title:   "Second",
		Tags:    []string{"go"},
		Content: "New body",
		SHA:     sha,
	}, who)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.lastPut.SHA != sha {
		t.Errorf("update sent sha %q, want %q", store.lastPut.SHA, sha)
	}

	art, err := ParseArticle(store.files["_posts/post.md"].Content)
	if err != nil {
		t.Fatalf("ParseArticle: %v", err)
	}
	if art.Title != "Second" || art.Extra["layout"] != "post" {
		t.Errorf("saved article = %+v", art)
	}
}

func TestSaveArticle_KeepsTOMLFrontMatter(t *testing.T) {
	store := newMemStore()
	store.files["_posts/post.md"] = &RemoteFile{SHA: "v1", Content: []byte("+++\ntitle = \"Old\"\ndraft = true\n+++\nBody\n")}

	_, err := SaveArticle(context.Background(), store, "post.md", models.SaveArticleRequest{
		Title:   "New",
		Content: "Body",
		SHA:     "v1",
	}, identityFixture())
	if err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	saved := store.files["_posts/post.md"].Content
	if !strings.HasPrefix(string(saved), "+++\n") {
		t.Fatalf("format not kept: %q", saved)
	}
	art, err := ParseArticle(saved)
	if err != nil {
		t.Fatalf("ParseArticle: %v", err)
	}
	if art.Title != "New" || art.Extra["draft"] != true || art.Format != "toml" {
		t.Errorf("saved article = %+v", art)
	}
}

func TestSaveArticle_StaleSHA(t *testing.T) {
	store := newMemStore()
	store.files["_posts/post.md"] = &RemoteFile{SHA: "v2", Content: []byte("---\ntitle: x\n---\n")}

	_, err := SaveArticle(context.Background(), store, "post.md", models.SaveArticleRequest{SHA: "v1"}, identityFixture())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestDeleteArticle(t *testing.T) {
	store := newMemStore()
	store.files["_posts/post.md"] = &RemoteFile{SHA: "v1"}

	if err := DeleteArticle(context.Background(), store, "post.md", "v1", identityFixture()); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if store.lastDel.Message != "Delete article post.md by ann@example.com" {
		t.Errorf("message = %q", store.lastDel.Message)
	}
	if _, ok := store.files["_posts/post.md"]; ok {
		t.Error("file still present")
	}
}
