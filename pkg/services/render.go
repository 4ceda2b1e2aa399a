package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"post-editor/pkg/toc"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Preview is a rendered post body and its table of contents.
type Preview struct {
	Body []byte
	Nav  *toc.Nav
}

// RenderPreview converts a post body to HTML and builds its table of contents.
// Raw HTML in the body is not passed through.
func RenderPreview(body string) (*Preview, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	html, nav, err := toc.Apply(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &Preview{Body: html, Nav: nav}, nil
}
