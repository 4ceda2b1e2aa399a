package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"post-editor/pkg/models"
)

// Front matter keys owned by the editor form.
var managedKeys = []string{"title", "author", "tags"}

// ParseArticle splits a stored post into its metadata and body.
func ParseArticle(content []byte) (*models.Article, error) {
	fm, body, err := ParseFrontMatter(content)
	if err != nil {
		return nil, err
	}

	art := &models.Article{
		Title:   stringValue(fm["title"]),
		Author:  stringValue(fm["author"]),
		Tags:    normalizeTags(fm["tags"]),
		Content: body,
		Format:  DetectFormat(content),
		Extra:   map[string]interface{}{},
	}
	for k, v := range fm {
		if isManagedKey(k) {
			continue
		}
		art.Extra[k] = v
	}
	return art, nil
}

// ParseFrontMatter returns the metadata map and the body. Content without a
// front matter block yields an empty map and the whole input as body.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, error) {
	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}

	str := string(body)
	str = strings.TrimPrefix(str, "\r\n")
	str = strings.TrimPrefix(str, "\n")
	return sanitizeFrontMatter(fm), str, nil
}

// DetectFormat reports the front matter format of a stored post. Anything
// other than a TOML block is written back as YAML.
func DetectFormat(content []byte) string {
	if bytes.HasPrefix(bytes.TrimLeft(content, "\ufeff"), []byte("+++")) {
		return "toml"
	}
	return "yaml"
}

// BuildArticleContent renders a post as front matter in format followed by the
// body. Keys in extra are kept unless the editor manages them.
func BuildArticleContent(req models.SaveArticleRequest, extra map[string]interface{}, format string) ([]byte, error) {
	fm := make(map[string]interface{}, len(extra)+len(managedKeys))
	for k, v := range extra {
		fm[k] = v
	}
	fm["title"] = req.Title
	fm["author"] = req.Author
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	fm["tags"] = tags

	if format == "" {
		format = "yaml"
	}
	return ConstructFileContent(fm, req.Content, format)
}

func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString(normalizeLineEndings(body))
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func isManagedKey(key string) bool {
	for _, k := range managedKeys {
		if k == key {
			return true
		}
	}
	return false
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// normalizeTags always returns a list; a scalar becomes a single entry.
func normalizeTags(v interface{}) []string {
	switch list := v.(type) {
	case nil:
		return []string{}
	case []interface{}:
		tags := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			tags = append(tags, stringValue(item))
		}
		return tags
	case []string:
		return append([]string{}, list...)
	case string:
		if strings.TrimSpace(list) == "" {
			return []string{}
		}
		return []string{list}
	default:
		return []string{stringValue(list)}
	}
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
