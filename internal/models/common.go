package models

import "time"

// Timestamps holds the created/updated columns shared by mutable tables.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
