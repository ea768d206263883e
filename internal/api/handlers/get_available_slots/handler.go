package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID = "некорректный ID врача"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(providerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)
			return
		}
		h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	// Ошибка чтения не фатальна: пустой список и предупреждение
	if result.Warning != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Degraded response: provider_id=%d, date=%s, warning=%v",
			providerID, dateStr, result.Warning)
	} else {
		h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved: provider_id=%d, date=%s, slots_count=%d",
			providerID, dateStr, len(result.Slots))
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
