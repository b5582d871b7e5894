package models

// Status is the lifecycle state of a member or expense. Archived records
// are kept for history but excluded from every balance computation; the
// filtering happens once at the storage boundary so the pure functions
// downstream never re-check it.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}
