package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) List(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]domain.Table)
	return t, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	args := m.Called(ctx, t)
	r, _ := args.Get(0).(*domain.Table)
	return r, args.Error(1)
}

func (m *mockRepo) UpdateSeats(ctx context.Context, id int64, seats int) (*domain.Table, error) {
	args := m.Called(ctx, id, seats)
	r, _ := args.Get(0).(*domain.Table)
	return r, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_List(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything).Return([]domain.Table{{ID: 1, Seats: 2}, {ID: 2, Seats: 6}}, nil)

	resp, err := NewService(repo, nopLogger{}).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 2)
	assert.Equal(t, 8, resp.TotalSeats)
}

func TestService_CreateValidatesSeats(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, &domain.Table{Seats: 4}).Return(&domain.Table{ID: 10, Seats: 4}, nil)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &TableRequest{Seats: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)

	for _, seats := range []int{0, -1, domain.MaxTableSeats + 1} {
		_, err := svc.Create(context.Background(), &TableRequest{Seats: seats})
		assert.ErrorIs(t, err, ErrInvalidInput, "seats=%d", seats)
	}
}

func TestService_Update(t *testing.T) {
	repo := &mockRepo{}
	repo.On("UpdateSeats", mock.Anything, int64(1), 8).Return(&domain.Table{ID: 1, Seats: 8}, nil)
	repo.On("UpdateSeats", mock.Anything, int64(2), 8).Return(nil, tableRepo.ErrTableNotFound)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &TableRequest{Seats: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Seats)

	_, err = svc.Update(context.Background(), 2, &TableRequest{Seats: 8})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "deleted", repoErr: nil, wantErr: nil},
		{name: "not found", repoErr: tableRepo.ErrTableNotFound, wantErr: ErrTableNotFound},
		{name: "has reservations", repoErr: tableRepo.ErrTableInUse, wantErr: ErrTableInUse},
		{name: "storage failure", repoErr: errors.New("timeout"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("Delete", mock.Anything, int64(5)).Return(tt.repoErr)

			err := NewService(repo, nopLogger{}).Delete(context.Background(), 5)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
