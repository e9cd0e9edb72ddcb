package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	menuRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/menu"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]domain.MenuItem)
	return items, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*domain.MenuItem)
	return item, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*domain.MenuItem)
	return created, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	args := m.Called(ctx, item)
	updated, _ := args.Get(0).(*domain.MenuItem)
	return updated, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_ListGroupsByCategory(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, domain.MenuFilter{}).Return([]domain.MenuItem{
		{ID: 3, Name: "Café", Category: "boissons", Price: 2.5},
		{ID: 4, Name: "Vin rouge", Category: "boissons", Price: 6},
		{ID: 1, Name: "Crème brûlée", Category: "desserts", Price: 7},
	}, nil)

	resp, err := NewService(repo, nopLogger{}).List(context.Background(), &ListRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"boissons", "desserts"}, resp.Categories)
	assert.Len(t, resp.Menu["boissons"], 2)
	assert.Len(t, resp.Menu["desserts"], 1)
	assert.Equal(t, "all", resp.Filters.Category)
	assert.Equal(t, "all", resp.Filters.MaxPrice)
}

func TestService_ListEchoesFilters(t *testing.T) {
	filter := domain.MenuFilter{Category: ptr.Ptr("plats"), MaxPrice: ptr.Ptr(20.0)}
	repo := &mockRepo{}
	repo.On("List", mock.Anything, filter).Return([]domain.MenuItem{}, nil)

	resp, err := NewService(repo, nopLogger{}).List(context.Background(), &ListRequest{Category: filter.Category, MaxPrice: filter.MaxPrice})
	require.NoError(t, err)

	assert.Equal(t, "plats", resp.Filters.Category)
	assert.Equal(t, 20.0, resp.Filters.MaxPrice)
	assert.Empty(t, resp.Categories)
	assert.NotNil(t, resp.Menu)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(&mockRepo{}, nopLogger{})

	tests := []CreateMenuItemRequest{
		{Name: "", Category: "plats", Price: 10},
		{Name: "Steak", Category: " ", Price: 10},
		{Name: "Steak", Category: "plats", Price: -1},
	}
	for _, req := range tests {
		_, err := svc.Create(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestService_UpdateMergesFields(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.MenuItem{ID: 1, Name: "Steak", Category: "plats", Price: 18}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(item *domain.MenuItem) bool {
		return item.Name == "Steak" && item.Price == 21 && item.Category == "plats"
	})).Return(&domain.MenuItem{ID: 1, Name: "Steak", Category: "plats", Price: 21}, nil)

	resp, err := NewService(repo, nopLogger{}).Update(context.Background(), 1, &UpdateMenuItemRequest{Price: ptr.Ptr(21.0)})
	require.NoError(t, err)
	assert.Equal(t, 21.0, resp.Price)
}

func TestService_NotFound(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, menuRepo.ErrMenuItemNotFound)
	repo.On("Delete", mock.Anything, int64(9)).Return(menuRepo.ErrMenuItemNotFound)
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), 9, &UpdateMenuItemRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	err = svc.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
