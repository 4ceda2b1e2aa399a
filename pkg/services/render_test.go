package services

import (
	"strings"
	"testing"
)

func TestRenderPreview(t *testing.T) {
	p, err := RenderPreview("# Title\n\nText\n\n## Usage\n\n## Usage\n\n<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}

	out := string(p.Body)
	if !strings.Contains(out, `<h1 id="Title">Title</h1>`) {
		t.Errorf("missing h1 id: %s", out)
	}
	if !strings.Contains(out, `id="Usage-1"`) {
		t.Errorf("duplicate heading not suffixed: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw html passed through: %s", out)
	}
	if len(p.Nav.Entries) != 3 {
		t.Fatalf("entries = %+v", p.Nav.Entries)
	}
}
