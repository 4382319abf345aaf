package model

// Item is the domain model for a checklist entry.
// ID is opaque and stable for the item's lifetime; Text is never empty
// once the item is inside a store.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
