package domain

import "time"

// Recipe is a user-owned recipe with set-valued tag and ingredient
// associations. UserID is immutable after creation; update flows drop any
// attempt to change it rather than erroring.
type Recipe struct {
	ID          int64         `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	TimeMinutes int           `json:"time_minutes"`
	Price       Price         `json:"price"`
	Link        string        `json:"link,omitempty"`
	Description string        `json:"description,omitempty"`
	Tags        []*Tag        `json:"tags"`
	Ingredients []*Ingredient `json:"ingredients"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RecipeUpdate lists every field an update may overwrite. Nil pointers mean
// "leave unchanged" under partial updates; full updates populate all of them.
// Ownership is deliberately absent: the owning user never changes.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *int
	Price       *Price
	Link        *string
	Description *string
}
