package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgInvalidSlot        = "некорректные дата или время приема"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProviderNotFound   = "врач не найден"
	msgProviderNotActive  = "врач еще не принимает записи"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /reservations - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrProviderNotFound):
			h.logger.Warn("POST /reservations - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createReservation.ErrProviderNotApproved):
			h.logger.Warn("POST /reservations - Provider not approved: provider_id=%d", req.ProviderID)
			handlers.RespondConflict(w, msgProviderNotActive)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: patient_id=%d, provider_id=%d, error=%v",
				patientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, patient_id=%d, provider_id=%d",
		result.Reservation.ID, patientID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(result.Reservation))
}
