package submit_enrollment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	submitEnrollment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/submit_enrollment"
)

const (
	headerIdempotencyKey = "Idempotency-Key"

	msgMissingKey         = "заголовок Idempotency-Key обязателен"
	msgInvalidKey         = "Idempotency-Key должен быть UUID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля заявки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgKeyConflict        = "Idempotency-Key уже использован другим пользователем"
)

type Handler struct {
	useCase SubmitEnrollmentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitEnrollmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/enrollments
// Повтор с тем же Idempotency-Key возвращает сохраненную заявку со статусом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /enrollments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	key := r.Header.Get(headerIdempotencyKey)
	if key == "" {
		h.logger.Warn("POST /enrollments - Missing idempotency key: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingKey)
		return
	}

	var req SubmitEnrollmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /enrollments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /enrollments - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(key, userID))
	if err != nil {
		switch {
		case errors.Is(err, submitEnrollment.ErrInvalidInput):
			h.logger.Warn("POST /enrollments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKey)

		case errors.Is(err, submitEnrollment.ErrKeyConflict):
			h.logger.Warn("POST /enrollments - Key conflict: user_id=%d", userID)
			handlers.RespondConflict(w, msgKeyConflict)

		default:
			h.logger.Error("POST /enrollments - Failed to submit enrollment: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /enrollments - Enrollment stored: enrollment_id=%d, created=%t", result.Enrollment.ID, result.Created)
	handlers.RespondJSON(w, status, FromDomainEnrollment(result.Enrollment))
}
