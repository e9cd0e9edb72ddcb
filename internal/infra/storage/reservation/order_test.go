package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		order   string
		want    []string
		wantErr bool
	}{
		{
			name: "default is date then time ascending",
			want: []string{"reservation_date ASC", "reservation_time ASC", "id ASC"},
		},
		{
			name:   "date descending sorts time descending too",
			sortBy: domain.SortByDate,
			order:  domain.SortOrderDesc,
			want:   []string{"reservation_date DESC", "reservation_time DESC", "id ASC"},
		},
		{
			name:   "party size",
			sortBy: domain.SortByNumberOfPeople,
			order:  domain.SortOrderAsc,
			want:   []string{"number_of_people ASC", "id ASC"},
		},
		{
			name:    "field outside whitelist",
			sortBy:  "owner_id; DROP TABLE reservations",
			wantErr: true,
		},
		{
			name:    "unknown direction",
			sortBy:  domain.SortByStatus,
			order:   "sideways",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderClause(tt.sortBy, tt.order)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortColumnsCoverWhitelist(t *testing.T) {
	for field := range domain.ReservationSortFields {
		_, ok := sortColumns[field]
		assert.True(t, ok, "no column for sort field %q", field)
	}
}
