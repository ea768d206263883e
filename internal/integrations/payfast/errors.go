package payfast

import "errors"

var (
	// ErrMissingCredentials возвращается, когда не настроены merchant_id/merchant_key
	ErrMissingCredentials = errors.New("payfast client: merchant credentials are not configured")

	// ErrInvalidRequest возвращается при некорректных данных платежа
	ErrInvalidRequest = errors.New("payfast client: invalid payment request")

	// ErrInternal возвращается при ошибках транспорта
	ErrInternal = errors.New("payfast client: internal error")

	// ErrGatewayRejected возвращается, когда шлюз ответил неуспешным статусом
	ErrGatewayRejected = errors.New("payfast client: gateway rejected payment request")

	// ErrInvalidSignature возвращается, когда подпись уведомления не совпала
	ErrInvalidSignature = errors.New("payfast: invalid signature")
)
