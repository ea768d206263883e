package request_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_payment: invalid input data")

	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("request_payment: reservation not found")

	// ErrForbidden возвращается, когда запись принадлежит другому пациенту
	ErrForbidden = errors.New("request_payment: reservation belongs to another patient")

	// ErrNotAwaitingPayment возвращается, когда запись уже оплачена или отменена
	ErrNotAwaitingPayment = errors.New("request_payment: reservation is not awaiting payment")

	// ErrGateway возвращается, когда шлюз не выдал ссылку на оплату
	ErrGateway = errors.New("request_payment: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_payment: internal error")
)
