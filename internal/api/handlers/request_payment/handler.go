package request_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	requestPayment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/request_payment"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgValidationFailed     = "некорректные поля запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotAwaitingPayment   = "запись уже оплачена или отменена"
	msgGatewayUnavailable   = "платежный шлюз недоступен, попробуйте позже"
)

type Handler struct {
	useCase RequestPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RequestPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пустое тело допустимо
	var req RequestPaymentRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /reservations/{id}/payment - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		if fields := handlers.Validate(&req); fields != nil {
			handlers.RespondValidationError(w, msgValidationFailed, fields)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &requestPayment.Request{
		ReservationID: reservationID,
		PatientID:     userID,
		Description:   req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestPayment.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/payment - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestPayment.ErrForbidden):
			h.logger.Warn("POST /reservations/{id}/payment - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestPayment.ErrNotAwaitingPayment):
			h.logger.Warn("POST /reservations/{id}/payment - Not awaiting payment: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotAwaitingPayment)

		case errors.Is(err, requestPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, requestPayment.ErrGateway):
			h.logger.Error("POST /reservations/{id}/payment - Gateway failure: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadGateway(w, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /reservations/{id}/payment - Failed to request payment: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/payment - Redirect issued: reservation_id=%d, reference=%s",
		reservationID, result.Reference)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
