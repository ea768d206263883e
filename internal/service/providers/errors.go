package providers

import "errors"

var (
	// ErrProviderNotFound возвращается, когда врач не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAccessDenied возвращается, когда действие доступно только администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
