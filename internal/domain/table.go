package domain

import "time"

// Table represents a physical dining table from the restaurant catalog
type Table struct {
	ID        int64
	Seats     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalSeats returns the sum of seats over the given tables
func TotalSeats(tables []Table) int {
	total := 0
	for _, t := range tables {
		total += t.Seats
	}
	return total
}

// TableIDs returns identifiers of the given tables preserving order
func TableIDs(tables []Table) []int64 {
	ids := make([]int64, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}
	return ids
}
