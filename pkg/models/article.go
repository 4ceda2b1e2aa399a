package models

// Article represents a post stored in the remote repository.
type Article struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
	SHA     string   `json:"sha"`

	// Extra holds front matter keys the editor does not manage.
	Extra map[string]interface{} `json:"-"`

	// Format is the front matter syntax of the stored file, "yaml" or "toml".
	Format string `json:"-"`
}

// ArticleSummary is one entry of the posts directory listing.
type ArticleSummary struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}

// SaveArticleRequest is the body of a save call. An empty SHA creates the file.
type SaveArticleRequest struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
	SHA     string   `json:"sha"`
}

// DeleteArticleRequest carries the version token of the file being removed.
type DeleteArticleRequest struct {
	SHA string `json:"sha" binding:"required"`
}
