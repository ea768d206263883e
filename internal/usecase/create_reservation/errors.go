package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrProviderNotFound возвращается, когда врач не найден
	ErrProviderNotFound = errors.New("create_reservation: provider not found")

	// ErrProviderNotApproved возвращается, когда врач еще не одобрен администратором
	ErrProviderNotApproved = errors.New("create_reservation: provider is not approved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
