package get_provider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/providers"
)

const (
	msgInvalidProviderID = "некорректный ID врача"
	msgNotFound          = "врач не найден"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	provider, err := h.service.GetByID(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /providers/{id} - Failed to get provider: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, provider)
}
