package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/providers/{providerId}/available-slots", NewHandler(uc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := new(mockUseCase)
	date := types.MustDate("2026-11-02")
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{ProviderID: 4, Date: date}).
		Return(&getAvailableSlots.Response{
			ProviderID: 4,
			Date:       date,
			Slots: []domain.Slot{
				{Time: types.MustTimeString("09:00"), Available: true},
				{Time: types.MustTimeString("09:30"), Available: false},
			},
		}, nil)

	rec := serve(uc, "/providers/4/available-slots?date=2026-11-02")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-11-02", body.Date)
	assert.Equal(t, []AvailableSlot{{Time: "09:00", Available: true}, {Time: "09:30", Available: false}}, body.Slots)
	assert.Empty(t, body.Warning)
}

func TestHandler_Handle_WarningIsNotAnError(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(&getAvailableSlots.Response{
			ProviderID: 4,
			Date:       types.MustDate("2026-11-02"),
			Slots:      []domain.Slot{},
			Warning:    getAvailableSlots.ErrScheduleUnavailable,
		}, nil)

	rec := serve(uc, "/providers/4/available-slots?date=2026-11-02")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Slots)
	assert.NotNil(t, body.Slots)
	assert.Equal(t, getAvailableSlots.ErrScheduleUnavailable.Error(), body.Warning)
}

func TestHandler_Handle_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non numeric provider", "/providers/abc/available-slots?date=2026-11-02"},
		{"missing date", "/providers/4/available-slots"},
		{"bad date", "/providers/4/available-slots?date=02.11.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			rec := serve(uc, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
