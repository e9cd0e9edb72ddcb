package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"numberOfPeople": 10, "date": "2024-05-01", "time": "19:00", "note": "окно"}`

func newRequest(body string, caller *domain.Caller) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if caller != nil {
		req = req.WithContext(middleware.WithCaller(req.Context(), *caller))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.OwnerID == 7 && req.NumberOfPeople == 10 && req.Time == types.MustTimeString("19:00") &&
			req.Date.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) && *req.Note == "окно"
	})).Return(&createReservation.Response{Reservation: &domain.Reservation{
		ID:             1,
		OwnerID:        7,
		NumberOfPeople: 10,
		Date:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Time:           types.MustTimeString("19:00"),
		Status:         domain.StatusPending,
		Tables:         []domain.Table{{ID: 9, Seats: 8}, {ID: 1, Seats: 2}},
	}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest(validBody, &domain.Caller{UserID: 7}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, 10.0, body["totalSeats"])
	assert.Len(t, body["tables"], 2)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	caller := &domain.Caller{UserID: 7}

	tests := []struct {
		name       string
		body       string
		caller     *domain.Caller
		ucErr      error
		wantStatus int
	}{
		{name: "anonymous", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", body: `{`, caller: caller, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"numberOfPeople": 2, "date": "01.05.2024", "time": "19:00"}`, caller: caller, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"numberOfPeople": 2, "date": "2024-05-01", "time": "7pm"}`, caller: caller, wantStatus: http.StatusBadRequest},
		{name: "validation", body: validBody, caller: caller, ucErr: fmt.Errorf("%w: numberOfPeople", createReservation.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "no capacity", body: validBody, caller: caller, ucErr: createReservation.ErrNoCapacity, wantStatus: http.StatusConflict},
		{name: "slot conflict", body: validBody, caller: caller, ucErr: createReservation.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "internal", body: validBody, caller: caller, ucErr: createReservation.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, nopLogger{}).Handle(rec, newRequest(tt.body, tt.caller))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
