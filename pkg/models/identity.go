package models

// Identity is the authenticated editor, used for commit attribution.
type Identity struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
