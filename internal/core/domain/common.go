package domain

import "time"

// Timestamps holds the standard created/updated times for mutable entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TablePrefix is the fixed prefix shared by every table this service owns.
const TablePrefix = "atu_multicurrency_"
