// Package toc builds the table of contents of a rendered post.
//
// Headings h1 to h3 inside the .main-content region are given stable
// identifiers and mirrored, in document order, as a navigation list.
package toc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MainContentClass marks the region whose headings are collected.
const MainContentClass = "main-content"

var headingSelector = cascadia.MustCompile(".main-content h1, .main-content h2, .main-content h3")

// Entry is one navigation item.
type Entry struct {
	ID     string
	Text   string
	Level  int
	Active bool
}

// Nav is the navigation list of one page. At most one entry is active.
type Nav struct {
	Entries []Entry
}

// Generate assigns identifiers to the headings under root that lack one and
// returns the navigation list. root is modified in place.
func Generate(root *html.Node) *Nav {
	nav := &Nav{}
	counter := map[string]int{}

	for _, h := range headingSelector.MatchAll(root) {
		text := textContent(h)
		id := attr(h, "id")
		if id == "" {
			id = uniqueID(counter, deriveID(text))
			setAttr(h, "id", id)
		}
		nav.Entries = append(nav.Entries, Entry{
			ID:    id,
			Text:  strings.TrimSpace(text),
			Level: int(h.Data[1] - '0'),
		})
	}
	return nav
}

// Apply parses a rendered HTML fragment as main content, generates its table
// of contents and returns the fragment with heading identifiers filled in.
func Apply(fragment []byte) ([]byte, *Nav, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: MainContentClass}},
	}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(bytes.NewReader(fragment), context)
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	nav := Generate(container)

	var buf bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, nil, fmt.Errorf("render html: %w", err)
		}
	}
	return buf.Bytes(), nav, nil
}

// Activate marks the entry with id active and clears all others. Unknown ids
// leave the list unchanged.
func (n *Nav) Activate(id string) bool {
	found := -1
	for i := range n.Entries {
		if n.Entries[i].ID == id {
			found = i
			break
		}
	}
	if found < 0 {
		return false
	}
	for i := range n.Entries {
		n.Entries[i].Active = i == found
	}
	return true
}

// Active returns the active entry, if any.
func (n *Nav) Active() (Entry, bool) {
	for _, e := range n.Entries {
		if e.Active {
			return e, true
		}
	}
	return Entry{}, false
}

// Render writes the list as <ul><li class="toc-hN"><a href="#id">text</a></li>...</ul>.
func (n *Nav) Render(w io.Writer) error {
	ul := element(atom.Ul)
	for _, e := range n.Entries {
		li := element(atom.Li)
		setAttr(li, "class", fmt.Sprintf("toc-h%d", e.Level))

		a := element(atom.A)
		setAttr(a, "href", "#"+e.ID)
		if e.Active {
			setAttr(a, "class", "active")
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})

		li.AppendChild(a)
		ul.AppendChild(li)
	}
	return html.Render(w, ul)
}

// deriveID collapses whitespace runs of the trimmed text into hyphens.
func deriveID(text string) string {
	id := strings.Join(strings.Fields(text), "-")
	if id == "" {
		return "section"
	}
	return id
}

// uniqueID keeps the first use of base and suffixes later ones with -1, -2, ...
func uniqueID(counter map[string]int, base string) string {
	n, seen := counter[base]
	if !seen {
		counter[base] = 0
		return base
	}
	n++
	counter[base] = n
	return fmt.Sprintf("%s-%d", base, n)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
