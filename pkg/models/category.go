package models

// Category is a board-game genre. Categories are reference data and are
// only created by seeding.
type Category struct {
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}
