package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListAll(ctx context.Context, caller domain.Caller, req *models.ListAllRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, caller, req)
	resp, _ := args.Get(0).(*models.ReservationListResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestToServiceRequest(t *testing.T) {
	query, _ := url.ParseQuery("date=2024-05-01&status=pending&sort=time&order=desc")

	assert.Equal(t, &models.ListAllRequest{
		Date:      ptr.Ptr("2024-05-01"),
		Status:    ptr.Ptr("pending"),
		SortBy:    "time",
		SortOrder: "desc",
	}, ToServiceRequest(query))

	assert.Equal(t, &models.ListAllRequest{}, ToServiceRequest(url.Values{}))
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "not admin", err: reservations.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "bad sort", err: reservations.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: reservations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := domain.Caller{UserID: 1, IsAdmin: true}
			svc := &mockService{}
			var resp *models.ReservationListResponse
			if tt.err == nil {
				resp = &models.ReservationListResponse{Reservations: []models.ReservationResponse{}}
			}
			svc.On("ListAll", mock.Anything, caller, mock.Anything).Return(resp, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations?sort=time", nil)
			req = req.WithContext(middleware.WithCaller(req.Context(), caller))
			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
