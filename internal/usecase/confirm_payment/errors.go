package confirm_payment

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись уведомления не совпала
	ErrInvalidSignature = errors.New("confirm_payment: invalid notification signature")
)
