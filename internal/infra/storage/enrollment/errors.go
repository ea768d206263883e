package enrollment

import "errors"

var (
	// ErrEnrollmentNotFound возвращается, когда заявка с таким ключом не найдена
	ErrEnrollmentNotFound = errors.New("enrollment.repository: enrollment not found")

	// ErrDuplicateKey возвращается при повторной вставке с тем же ключом идемпотентности
	ErrDuplicateKey = errors.New("enrollment.repository: duplicate idempotency key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("enrollment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("enrollment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("enrollment.repository: failed to scan row")
)
