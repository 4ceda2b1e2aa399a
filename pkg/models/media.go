package models

// MediaFile describes an uploaded asset.
type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // Path inside the remote repository
	Size int64  `json:"size"`
	URL  string `json:"url"` // Site-relative URL for use in markdown
}
