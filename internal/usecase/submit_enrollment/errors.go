package submit_enrollment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_enrollment: invalid input data")

	// ErrKeyConflict возвращается, когда ключ уже использован другим пользователем
	ErrKeyConflict = errors.New("submit_enrollment: idempotency key belongs to another user")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_enrollment: internal error")
)
