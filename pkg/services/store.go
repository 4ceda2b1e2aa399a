package services

import (
	"context"
	"errors"

	"post-editor/pkg/models"
)

var (
	// ErrNotFound is returned when a path is missing, is a directory or has no
	// retrievable content.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a version token no longer matches the stored file.
	ErrConflict = errors.New("version conflict")
)

// RemoteFile is a stored file and its version token.
type RemoteFile struct {
	Path    string
	SHA     string
	Size    int
	Content []byte
}

// RemoteEntry is one item of a directory listing.
type RemoteEntry struct {
	Name string
	Path string
	Type string // "file" or "dir"
	SHA  string
	Size int
}

// CommitOptions describes a mutating call. SHA is required for deletes and
// updates and must be empty when creating a file.
type CommitOptions struct {
	Message   string
	SHA       string
	Committer models.Identity
}

// ContentStore reaches the remote repository holding posts and assets.
type ContentStore interface {
	GetFile(ctx context.Context, path string) (*RemoteFile, error)
	ListDir(ctx context.Context, path string) ([]RemoteEntry, error)
	PutFile(ctx context.Context, path string, content []byte, opts CommitOptions) (string, error)
	DeleteFile(ctx context.Context, path string, opts CommitOptions) error
}
