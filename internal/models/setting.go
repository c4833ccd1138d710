package models

// Setting is a row of the key/value settings table.
type Setting struct {
	ID    int64   `db:"id"`
	Key   string  `db:"key"`
	Value *string `db:"value"`
	Timestamps
}
