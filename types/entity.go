// Package types provides common types shared by invoicer packages.
package types

import "time"

// Entity carries creation and modification timestamps.
// Embed it in records that the ledger stores.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity creates a new Entity with current timestamps.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp to now.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// Age returns how long ago the entity was created.
func (e Entity) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// Modified reports whether the entity was changed after creation.
func (e Entity) Modified() bool {
	return e.UpdatedAt.After(e.CreatedAt)
}
