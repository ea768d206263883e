package get_patient_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/reservations/models"
)

const (
	msgInvalidPatientID = "некорректный ID пациента"
	msgInvalidStatus    = "некорректный статус записи"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/{patientId}/reservations?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseInt(mux.Vars(r)["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{id}/reservations - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /patients/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetPatientReservations(r.Context(), &models.GetPatientReservationsRequest{
		UserID:    userID,
		PatientID: patientID,
		Status:    statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /patients/{id}/reservations - Access denied: patient_id=%d, user_id=%d", patientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /patients/{id}/reservations - Failed to get reservations: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id}/reservations - Reservations retrieved: patient_id=%d, count=%d",
		patientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
