package request_payment

import (
	requestPayment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/request_payment"
)

// RequestPaymentRequest тело запроса, целиком необязательно
type RequestPaymentRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// PaymentRedirectResponse HTTP response model
type PaymentRedirectResponse struct {
	ReservationID int64  `json:"reservationId"`
	RedirectURL   string `json:"redirectUrl"`
	Reference     string `json:"reference"`
	Amount        string `json:"amount"` // "510.00"
	Currency      string `json:"currency"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestPayment.Response) *PaymentRedirectResponse {
	return &PaymentRedirectResponse{
		ReservationID: resp.ReservationID,
		RedirectURL:   resp.RedirectURL,
		Reference:     resp.Reference,
		Amount:        resp.Amount.Decimal(),
		Currency:      resp.Currency,
	}
}
