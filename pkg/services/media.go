package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"post-editor/pkg/config"
	"post-editor/pkg/models"
)

// MaxUploadSize is the largest accepted image, in bytes.
const MaxUploadSize = 5 * 1024 * 1024

var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// now is swapped in tests.
var now = time.Now

// ValidationError is an input problem reported back to the caller verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var (
	ErrInvalidImageType = &ValidationError{Msg: "Invalid file type. Allowed: JPEG, PNG, GIF, WebP, SVG"}
	ErrFileTooLarge     = &ValidationError{Msg: "File too large. Maximum size: 5MB"}
	ErrContentMismatch  = &ValidationError{Msg: "File content does not match declared type"}
)

// ValidateImageHeader checks the declared media type and size of an upload.
func ValidateImageHeader(header *multipart.FileHeader) error {
	if !isAllowedImageType(header.Header.Get("Content-Type")) {
		return ErrInvalidImageType
	}
	if header.Size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

func isAllowedImageType(contentType string) bool {
	for _, t := range AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// SanitizeName drops every character outside [a-zA-Z0-9.-] from name.
func SanitizeName(name string) string {
	cleaned := unsafeNameChars.ReplaceAllString(name, "")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}

// ImagePath builds the repository path of an upload taken at ts.
func ImagePath(original string, ts time.Time) (string, string) {
	filename := fmt.Sprintf("%d-%s", ts.UnixMilli(), SanitizeName(original))
	return path.Join(config.AssetsDir, filename), filename
}

// ReadImage loads a validated upload and checks its content against the
// declared media type.
func ReadImage(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if !mimetype.Detect(data).Is(header.Header.Get("Content-Type")) {
		return nil, ErrContentMismatch
	}
	return data, nil
}

// SaveImage commits an upload under the assets directory and returns where
// the site will serve it.
func SaveImage(ctx context.Context, store ContentStore, header *multipart.FileHeader, data []byte, who models.Identity) (*models.MediaFile, error) {
	repoPath, filename := ImagePath(header.Filename, now())

	_, err := store.PutFile(ctx, repoPath, data, CommitOptions{
		Message:   fmt.Sprintf("Upload image: %s by %s", filename, who.Email),
		Committer: who,
	})
	if err != nil {
		return nil, err
	}

	return &models.MediaFile{
		Name: filename,
		Path: repoPath,
		Size: int64(len(data)),
		URL:  AssetURL(repoPath),
	}, nil
}
