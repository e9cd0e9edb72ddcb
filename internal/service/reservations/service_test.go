package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockRepo) UpdateDetails(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	return m.Called(ctx, event).Error(0)
}

// passthroughTx выполняет функцию без транзакции и возвращает её ошибку
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID    int64 = 7
	strangerID int64 = 8
	adminID    int64 = 1
)

var (
	owner    = domain.Caller{UserID: ownerID}
	stranger = domain.Caller{UserID: strangerID}
	admin    = domain.Caller{UserID: adminID, IsAdmin: true}
)

func reservationWith(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:             42,
		OwnerID:        ownerID,
		NumberOfPeople: 4,
		Date:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Time:           "19:00",
		Status:         status,
		Tables:         []domain.Table{{ID: 3, Seats: 4}},
	}
}

type ServiceTestSuite struct {
	suite.Suite
	repo      *mockRepo
	publisher *mockPublisher
	service   *Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.repo = &mockRepo{}
	s.publisher = &mockPublisher{}
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.service = NewService(s.repo, passthroughTx{}, s.publisher, nopLogger{})
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestGetByID() {
	s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil)
	s.repo.On("GetByID", mock.Anything, int64(99)).Return(nil, reservationRepo.ErrReservationNotFound)

	s.Run("owner sees own reservation", func() {
		resp, err := s.service.GetByID(context.Background(), 42, owner)
		s.Require().NoError(err)
		s.Equal(int64(42), resp.ID)
		s.Equal(4, resp.TotalSeats)
		s.Equal("2024-05-01", resp.Date)
	})

	s.Run("admin sees any reservation", func() {
		_, err := s.service.GetByID(context.Background(), 42, admin)
		s.NoError(err)
	})

	s.Run("stranger is forbidden", func() {
		_, err := s.service.GetByID(context.Background(), 42, stranger)
		s.ErrorIs(err, ErrAccessDenied)
	})

	s.Run("missing reservation", func() {
		_, err := s.service.GetByID(context.Background(), 99, owner)
		s.ErrorIs(err, ErrReservationNotFound)
	})
}

func (s *ServiceTestSuite) TestCancel() {
	s.Run("owner cancels pending reservation", func() {
		s.SetupTest()
		cancelled := reservationWith(domain.StatusCancelled)
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil).Once()
		s.repo.On("UpdateStatus", mock.Anything, int64(42), domain.CancellableStatuses, domain.StatusCancelled).Return(nil).Once()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(cancelled, nil).Once()

		resp, err := s.service.Cancel(context.Background(), 42, owner)
		s.Require().NoError(err)
		s.Equal("cancelled", resp.Status)
		s.Len(resp.Tables, 1, "assignments are kept after cancellation")
		s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, mock.MatchedBy(func(e domain.ReservationEvent) bool {
			return e.Type == domain.EventReservationCancelled && e.ActorID == ownerID
		}))
	})

	s.Run("admin cancels confirmed reservation", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusConfirmed), nil).Once()
		s.repo.On("UpdateStatus", mock.Anything, int64(42), domain.CancellableStatuses, domain.StatusCancelled).Return(nil).Once()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusCancelled), nil).Once()

		_, err := s.service.Cancel(context.Background(), 42, admin)
		s.NoError(err)
	})

	s.Run("stranger is forbidden", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil)

		_, err := s.service.Cancel(context.Background(), 42, stranger)
		s.ErrorIs(err, ErrAccessDenied)
		s.repo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("second cancel is rejected", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusCancelled), nil)

		_, err := s.service.Cancel(context.Background(), 42, owner)
		s.ErrorIs(err, ErrInvalidTransition)
		s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything)
	})

	s.Run("missing reservation", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := s.service.Cancel(context.Background(), 42, owner)
		s.ErrorIs(err, ErrReservationNotFound)
	})

	s.Run("concurrent status change", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil)
		s.repo.On("UpdateStatus", mock.Anything, int64(42), mock.Anything, mock.Anything).Return(reservationRepo.ErrStatusConflict)

		_, err := s.service.Cancel(context.Background(), 42, owner)
		s.ErrorIs(err, ErrInvalidTransition)
	})
}

func (s *ServiceTestSuite) TestConfirm() {
	pending := []domain.ReservationStatus{domain.StatusPending}

	s.Run("admin confirms pending reservation", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil).Once()
		s.repo.On("UpdateStatus", mock.Anything, int64(42), pending, domain.StatusConfirmed).Return(nil).Once()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusConfirmed), nil).Once()

		resp, err := s.service.Confirm(context.Background(), 42, admin)
		s.Require().NoError(err)
		s.Equal("confirmed", resp.Status)
	})

	s.Run("owner cannot confirm", func() {
		s.SetupTest()
		_, err := s.service.Confirm(context.Background(), 42, owner)
		s.ErrorIs(err, ErrAccessDenied)
		s.repo.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
	})

	for _, status := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusCancelled} {
		s.Run("no transition from "+string(status), func() {
			s.SetupTest()
			s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(status), nil)

			_, err := s.service.Confirm(context.Background(), 42, admin)
			s.ErrorIs(err, ErrInvalidTransition)
		})
	}

	s.Run("missing reservation", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := s.service.Confirm(context.Background(), 42, admin)
		s.ErrorIs(err, ErrReservationNotFound)
	})
}

func (s *ServiceTestSuite) TestUpdate() {
	req := &models.UpdateReservationRequest{NumberOfPeople: ptr.Ptr(6), Time: ptr.Ptr("20:30")}

	s.Run("pending reservation is edited in place", func() {
		s.SetupTest()
		updated := reservationWith(domain.StatusPending)
		updated.NumberOfPeople = 6
		updated.Time = "20:30"

		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil).Once()
		s.repo.On("UpdateDetails", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
			return r.NumberOfPeople == 6 && r.Time == "20:30" && r.Date.Equal(updated.Date)
		})).Return(nil).Once()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(updated, nil).Once()

		resp, err := s.service.Update(context.Background(), 42, owner, req)
		s.Require().NoError(err)
		s.Equal(6, resp.NumberOfPeople)
		s.Equal([]models.TableResponse{{ID: 3, Seats: 4}}, resp.Tables, "tables are not re-planned")
	})

	for _, status := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusCancelled} {
		s.Run("not editable when "+string(status), func() {
			s.SetupTest()
			s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(status), nil)

			_, err := s.service.Update(context.Background(), 42, owner, req)
			s.ErrorIs(err, ErrNotEditable)
			s.repo.AssertNotCalled(s.T(), "UpdateDetails", mock.Anything, mock.Anything)
		})
	}

	s.Run("stranger is forbidden before status check", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusConfirmed), nil)

		_, err := s.service.Update(context.Background(), 42, stranger, req)
		s.ErrorIs(err, ErrAccessDenied)
	})

	s.Run("invalid fields", func() {
		s.SetupTest()
		s.repo.On("GetByID", mock.Anything, int64(42)).Return(reservationWith(domain.StatusPending), nil)

		_, err := s.service.Update(context.Background(), 42, owner, &models.UpdateReservationRequest{NumberOfPeople: ptr.Ptr(0)})
		s.ErrorIs(err, ErrInvalidInput)
	})

	s.Run("empty request", func() {
		s.SetupTest()
		_, err := s.service.Update(context.Background(), 42, owner, &models.UpdateReservationRequest{})
		s.ErrorIs(err, ErrInvalidInput)
	})
}

func (s *ServiceTestSuite) TestListMine() {
	s.repo.On("List", mock.Anything, domain.ReservationsFilter{OwnerID: ptr.Ptr(ownerID)}).
		Return([]*domain.Reservation{reservationWith(domain.StatusPending)}, nil)

	resp, err := s.service.ListMine(context.Background(), owner, &models.ListMineRequest{})
	s.Require().NoError(err)
	s.Len(resp.Reservations, 1)

	_, err = s.service.ListMine(context.Background(), owner, &models.ListMineRequest{Status: ptr.Ptr("done")})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ServiceTestSuite) TestListAll() {
	s.Run("non-admin is forbidden", func() {
		s.SetupTest()
		_, err := s.service.ListAll(context.Background(), owner, &models.ListAllRequest{})
		s.ErrorIs(err, ErrAccessDenied)
	})

	s.Run("filters and sorting are passed through", func() {
		s.SetupTest()
		s.repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationsFilter) bool {
			return f.OwnerID == nil && f.Date != nil && f.Date.Day() == 1 &&
				f.Status != nil && *f.Status == domain.StatusConfirmed &&
				f.SortBy == domain.SortByNumberOfPeople && f.SortOrder == domain.SortOrderDesc
		})).Return([]*domain.Reservation{}, nil)

		resp, err := s.service.ListAll(context.Background(), admin, &models.ListAllRequest{
			Date:      ptr.Ptr("2024-05-01"),
			Status:    ptr.Ptr("confirmed"),
			SortBy:    "number_of_people",
			SortOrder: "DESC",
		})
		s.Require().NoError(err)
		s.NotNil(resp.Reservations)
	})

	s.Run("unknown sort field", func() {
		s.SetupTest()
		_, err := s.service.ListAll(context.Background(), admin, &models.ListAllRequest{SortBy: "owner_id"})
		s.ErrorIs(err, ErrInvalidInput)
	})

	s.Run("storage failure", func() {
		s.SetupTest()
		s.repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		_, err := s.service.ListAll(context.Background(), admin, &models.ListAllRequest{})
		s.ErrorIs(err, ErrInternal)
	})
}
