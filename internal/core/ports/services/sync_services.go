package services

import "context"

// CurrencySyncSvc keeps the default currency and the external commerce
// settings in step. Every operation reports success as a boolean and never
// returns an error; at most one operation runs at a time.
type CurrencySyncSvc interface {
	// Push writes the default currency's code and symbol to the external table.
	Push(ctx context.Context) bool

	// Pull copies the external code and symbol onto the default currency when
	// the symbols already agree.
	Pull(ctx context.Context) bool

	// Reconcile pushes unless both sides already match.
	Reconcile(ctx context.Context) bool
}
