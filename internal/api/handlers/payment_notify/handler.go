package payment_notify

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/confirm_payment"
)

const (
	msgMalformedNotification = "некорректное уведомление"
	maxNotificationBytes     = 64 << 10
)

// NotifyResponse ответ шлюзу. Шлюзу важен только статус 200
type NotifyResponse struct {
	ReservationID int64  `json:"reservationId,omitempty"`
	Outcome       string `json:"outcome"`
}

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/notify (application/x-www-form-urlencoded)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNotificationBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /payments/notify - Malformed body: %v", err)
		handlers.RespondBadRequest(w, msgMalformedNotification)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{Fields: r.PostForm})
	if err != nil {
		if errors.Is(err, confirmPayment.ErrInvalidSignature) {
			h.logger.Warn("POST /payments/notify - Signature mismatch: m_payment_id=%s", r.PostForm.Get("m_payment_id"))
			handlers.RespondBadRequest(w, msgMalformedNotification)
			return
		}
		// После успешного разбора шлюз всегда получает 200, иначе он будет повторять уведомление
		h.logger.Error("POST /payments/notify - Unexpected error: %v", err)
		handlers.RespondJSON(w, http.StatusOK, NotifyResponse{Outcome: "error"})
		return
	}

	h.logger.Info("POST /payments/notify - Processed: reservation_id=%d, outcome=%s", result.ReservationID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, NotifyResponse{
		ReservationID: result.ReservationID,
		Outcome:       string(result.Outcome),
	})
}
