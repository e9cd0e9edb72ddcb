package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalog builds tables with ids 1..n in the given seat order
func catalog(seats ...int) []Table {
	tables := make([]Table, 0, len(seats))
	for i, s := range seats {
		tables = append(tables, Table{ID: int64(i + 1), Seats: s})
	}
	return tables
}

func seatsOf(tables []Table) []int {
	seats := make([]int, 0, len(tables))
	for _, t := range tables {
		seats = append(seats, t.Seats)
	}
	return seats
}

func TestPlanTables(t *testing.T) {
	tests := []struct {
		name      string
		available []Table
		partySize int
		wantIDs   []int64
		wantOK    bool
	}{
		{
			name:      "exact single table wins over combinations",
			available: catalog(2, 4, 6),
			partySize: 4,
			wantIDs:   []int64{2},
			wantOK:    true,
		},
		{
			name:      "exact match takes first table in catalog order",
			available: catalog(4, 2, 4),
			partySize: 4,
			wantIDs:   []int64{1},
			wantOK:    true,
		},
		{
			name:      "greedy descending fill skips tables larger than remaining need",
			available: catalog(8, 6, 4, 4, 4, 2, 2, 2),
			partySize: 10,
			wantIDs:   []int64{1, 6},
			wantOK:    true,
		},
		{
			name:      "greedy ignores catalog order when sorting by seats",
			available: catalog(2, 2, 4, 8, 6),
			partySize: 12,
			wantIDs:   []int64{4, 3},
			wantOK:    true,
		},
		{
			name:      "two sixes cannot serve seven",
			available: catalog(6, 6),
			partySize: 7,
			wantOK:    false,
		},
		{
			name:      "residual smaller than every table is infeasible",
			available: catalog(4, 4, 4),
			partySize: 9,
			wantOK:    false,
		},
		{
			name:      "combination of equal tables keeps catalog order",
			available: catalog(2, 2, 2),
			partySize: 6,
			wantIDs:   []int64{1, 2, 3},
			wantOK:    true,
		},
		{
			name:      "not enough capacity",
			available: catalog(2, 2),
			partySize: 5,
			wantOK:    false,
		},
		{
			name:      "no tables",
			available: nil,
			partySize: 2,
			wantOK:    false,
		},
		{
			name:      "non positive party size",
			available: catalog(2, 4),
			partySize: 0,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, ok := PlanTables(tt.available, tt.partySize)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Empty(t, plan)
				return
			}
			if diff := cmp.Diff(tt.wantIDs, TableIDs(plan)); diff != "" {
				t.Errorf("PlanTables() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanTables_GreedyPicksEightAndTwo(t *testing.T) {
	plan, ok := PlanTables(catalog(8, 6, 4, 4, 4, 2, 2, 2), 10)
	require.True(t, ok)
	assert.Equal(t, []int{8, 2}, seatsOf(plan))
}

func TestPlanTables_DoesNotMutateInput(t *testing.T) {
	available := catalog(2, 8, 4)
	_, ok := PlanTables(available, 10)
	require.True(t, ok)
	assert.Equal(t, []int{2, 8, 4}, seatsOf(available))
}

func TestPlanTables_CapacityCoversParty(t *testing.T) {
	available := catalog(2, 2, 2, 4, 4, 4, 6, 6, 8)
	for party := 1; party <= TotalSeats(available); party++ {
		plan, ok := PlanTables(available, party)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, TotalSeats(plan), party, "party of %d", party)

		seen := make(map[int64]bool)
		for _, table := range plan {
			assert.False(t, seen[table.ID], "table %d planned twice for party of %d", table.ID, party)
			seen[table.ID] = true
		}
	}
}

func TestFreeTables(t *testing.T) {
	all := catalog(2, 4, 6, 8)

	free := FreeTables(all, []int64{2, 4, 4})
	assert.Equal(t, []int64{1, 3}, TableIDs(free))

	assert.Equal(t, TableIDs(all), TableIDs(FreeTables(all, nil)))
	assert.Empty(t, FreeTables(all, []int64{1, 2, 3, 4}))
}
