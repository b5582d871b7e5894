package models

// Member is a person in a group. Members are archived, never deleted, so
// expenses that reference them remain resolvable.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// GroupID is the group this member belongs to.
	GroupID string

	// Name is the display name within the group.
	Name string

	Status Status

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
