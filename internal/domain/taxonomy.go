package domain

// Tag is a user-scoped label attached to recipes. Name uniqueness holds per
// owner only; two users may each have a tag named "Vegan".
type Tag struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Ingredient has the same shape and scoping rules as Tag but lives in an
// independent namespace.
type Ingredient struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
