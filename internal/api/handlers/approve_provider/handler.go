package approve_provider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/providers"
)

const (
	msgInvalidProviderID = "некорректный ID врача"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "действие доступно только администратору"
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

// Handle PATCH /api/v1/admin/providers/{providerId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/providers/{id}/approve - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/providers/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	provider, err := h.service.Approve(r.Context(), providerID, userID)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/providers/{id}/approve - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("PATCH /admin/providers/{id}/approve - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/providers/{id}/approve - Failed to approve: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/providers/{id}/approve - Provider approved: provider_id=%d, admin_id=%d", providerID, userID)
	handlers.RespondJSON(w, http.StatusOK, provider)
}
