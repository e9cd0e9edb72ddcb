package domain

import "sort"

// FreeTables returns the catalog tables that are not in the taken set.
// Catalog order is preserved.
func FreeTables(catalog []Table, takenIDs []int64) []Table {
	taken := make(map[int64]struct{}, len(takenIDs))
	for _, id := range takenIDs {
		taken[id] = struct{}{}
	}

	free := make([]Table, 0, len(catalog))
	for _, t := range catalog {
		if _, ok := taken[t.ID]; ok {
			continue
		}
		free = append(free, t)
	}
	return free
}

// PlanTables selects tables for a party from the available ones.
//
// First a single table with exactly partySize seats is looked up in catalog order.
// Otherwise tables are walked by seats descending (ties keep catalog order) and a table
// is taken only when it does not exceed the remaining need. The walk never over-seats a
// step, so it can report false even when the total free capacity would be enough:
// [6, 6] cannot serve 7 guests.
func PlanTables(available []Table, partySize int) ([]Table, bool) {
	if partySize <= 0 {
		return nil, false
	}

	for _, t := range available {
		if t.Seats == partySize {
			return []Table{t}, true
		}
	}

	sorted := make([]Table, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seats > sorted[j].Seats
	})

	remaining := partySize
	plan := make([]Table, 0)
	for _, t := range sorted {
		if remaining <= 0 {
			break
		}
		if t.Seats <= remaining {
			plan = append(plan, t)
			remaining -= t.Seats
		}
	}

	if remaining > 0 {
		return nil, false
	}
	return plan, true
}
