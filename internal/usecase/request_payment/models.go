package request_payment

import "github.com/m04kA/SMC-ClinicBookingService/pkg/types"

// Request модель запроса на ссылку оплаты
type Request struct {
	ReservationID int64   // ID записи
	PatientID     int64   // ID пациента из токена, должен совпадать с владельцем записи
	Description   *string // Описание платежа (опционально)
}

// Response модель ответа со ссылкой на hosted checkout
type Response struct {
	ReservationID int64
	RedirectURL   string
	Reference     string // m_payment_id
	Amount        types.Cents
	Currency      string
}
