package confirm_payment

import (
	"net/url"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// Request разобранная форма уведомления шлюза
type Request struct {
	Fields url.Values
}

// Response результат обработки уведомления
type Response struct {
	ReservationID int64 // 0, если custom_str1 не удалось разобрать
	Outcome       domain.PaymentOutcome
}
