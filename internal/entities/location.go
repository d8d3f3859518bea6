package entities

import "time"

// Location is one timestamped point in an order's tracking history.
// Entries are append-only in intended use, though the API also exposes
// update and delete.
type Location struct {
	ID         string
	RecordedAt time.Time
	Address    string
	OrderID    string
}
