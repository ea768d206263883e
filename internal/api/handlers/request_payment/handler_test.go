package request_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	requestPayment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/request_payment"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *requestPayment.Request) (*requestPayment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requestPayment.Response), args.Error(1)
}

func post(uc RequestPaymentUseCase, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/payment", func(w http.ResponseWriter, req *http.Request) {
		NewHandler(uc, logger.Nop()).Handle(w, req.WithContext(middleware.WithUserID(req.Context(), 7)))
	}).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *requestPayment.Request) bool {
		return req.ReservationID == 15 && req.PatientID == 7 && req.Description != nil && *req.Description == "Consultation"
	})).Return(&requestPayment.Response{
		ReservationID: 15,
		RedirectURL:   "https://sandbox.payfast.test/eng/process?custom_str1=15",
		Reference:     "ref-1",
		Amount:        51000,
		Currency:      "ZAR",
	}, nil)

	rec := post(uc, "/reservations/15/payment", `{"description":"Consultation"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body PaymentRedirectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "510.00", body.Amount)
	assert.Contains(t, body.RedirectURL, "custom_str1=15")
}

func TestHandler_Handle_EmptyBody(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &requestPayment.Request{ReservationID: 15, PatientID: 7}).
		Return(&requestPayment.Response{ReservationID: 15, RedirectURL: "https://gw.test", Amount: 100}, nil)

	rec := post(uc, "/reservations/15/payment", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", requestPayment.ErrReservationNotFound, http.StatusNotFound},
		{"other patient", requestPayment.ErrForbidden, http.StatusForbidden},
		{"already paid", requestPayment.ErrNotAwaitingPayment, http.StatusConflict},
		{"gateway down", fmt.Errorf("%w: timeout", requestPayment.ErrGateway), http.StatusBadGateway},
		{"internal", fmt.Errorf("%w: db", requestPayment.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(uc, "/reservations/15/payment", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_InvalidID(t *testing.T) {
	uc := new(mockUseCase)

	rec := post(uc, "/reservations/abc/payment", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
