package models

// Group is a set of members sharing trip expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name (e.g. "Kyoto 2026").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
