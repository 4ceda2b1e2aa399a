package services

import (
	"path"
	"regexp"
	"strings"

	"post-editor/pkg/config"
)

const MarkdownExt = ".md"

// Word characters, CJK punctuation, hiragana, katakana, CJK ideographs, hyphen, underscore, dot.
var filenamePattern = regexp.MustCompile(`^[\w\x{3000}-\x{303f}\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{4e00}-\x{9faf}\-_.]+$`)

// ValidateFilename reports whether name can be used as a post filename.
func ValidateFilename(name string) bool {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	if !strings.HasSuffix(name, MarkdownExt) {
		return false
	}
	return filenamePattern.MatchString(name)
}

// PostPath returns the repository path of a validated post filename.
func PostPath(filename string) string {
	return path.Join(config.PostsDir, filename)
}

// AssetURL maps a repository asset path to its site-relative URL.
func AssetURL(repoPath string) string {
	return "/" + strings.TrimPrefix(repoPath, "/")
}
