package model

// Category is one subject area of the question bank.
type Category struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Priority bool   `json:"priority"`
}
