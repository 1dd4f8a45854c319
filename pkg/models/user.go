package models

// User is a reviewer or commenter, keyed by username.
type User struct {
	Username  string `json:"username" yaml:"username"`
	Name      string `json:"name" yaml:"name"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}
