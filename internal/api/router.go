package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/metrics"
)

// Handler обработчик одного маршрута
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Handlers все обработчики API
type Handlers struct {
	GetAvailableSlots      Handler
	GetProvider            Handler
	PaymentNotify          Handler
	CreateReservation      Handler
	RequestPayment         Handler
	GetReservation         Handler
	GetPatientReservations Handler
	SubmitEnrollment       Handler
	ApproveProvider        Handler
}

// Options инфраструктура роутера. Nil поля отключают соответствующий middleware
type Options struct {
	Metrics     *metrics.Metrics
	ServiceName string
	MetricsPath string
	Auth        mux.MiddlewareFunc
	RateLimiter *middleware.RateLimiter
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.ServiceName))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if opts.RateLimiter != nil {
		public.Use(opts.RateLimiter.RateLimit)
	}

	// Доступные слоты врача на дату
	public.HandleFunc("/providers/{providerId}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// Карточка врача
	public.HandleFunc("/providers/{providerId}", h.GetProvider.Handle).Methods(http.MethodGet)

	// Уведомления платежного шлюза. Подлинность проверяется подписью, лимит не применяется
	api.HandleFunc("/payments/notify", h.PaymentNotify.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if opts.Auth != nil {
		protected.Use(opts.Auth)
	}

	// --- Записи ---
	protected.HandleFunc("/reservations", h.CreateReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", h.GetReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/payment", h.RequestPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{patientId}/reservations", h.GetPatientReservations.Handle).Methods(http.MethodGet)

	// --- Врачи ---
	protected.HandleFunc("/enrollments", h.SubmitEnrollment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/providers/{providerId}/approve", h.ApproveProvider.Handle).Methods(http.MethodPatch)

	return r
}
