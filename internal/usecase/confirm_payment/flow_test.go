package confirm_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/provider"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/storagetest"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/payfast"
	"github.com/m04kA/SMC-ClinicBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ClinicBookingService/internal/usecase/request_payment"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Полный путь: запись -> ссылка на оплату -> уведомление COMPLETE
func TestBookingFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	db := storagetest.NewSchemaDB(t)
	log := logger.Nop()
	var noMetrics *metrics.Metrics

	users := userRepo.NewRepository(db)
	providers := providerRepo.NewRepository(db)
	reservations := reservationRepo.NewRepository(db)

	patient, err := users.Create(ctx, &domain.User{Email: "thandi@clinic.test", FullName: ptr.Ptr("Thandi Mokoena")})
	require.NoError(t, err)
	provider, err := providers.Create(ctx, &domain.Provider{
		UserID:          99,
		FullName:        "Dr. Naidoo",
		Email:           "naidoo@clinic.test",
		Specialty:       "General practice",
		ConsultationFee: 50000,
		IsApproved:      true,
	})
	require.NoError(t, err)

	gatewayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer gatewayServer.Close()

	gateway := payfast.NewClient(payfast.Config{
		MerchantID:  "10000100",
		MerchantKey: "46f0cd694581a",
		Passphrase:  passphrase,
		ProcessURL:  gatewayServer.URL + "/eng/process",
		NotifyURL:   "https://api.clinic.test/api/v1/payments/notify",
	}, log)

	// 1. Создаем запись
	created, err := create_reservation.NewUseCase(reservations, providers, domain.DefaultBookingFee, noMetrics, log).
		Execute(ctx, &create_reservation.Request{
			PatientID:  patient.ID,
			ProviderID: provider.ID,
			Date:       types.MustDate("2026-11-02"),
			StartTime:  "09:00",
		})
	require.NoError(t, err)
	assert.Equal(t, types.Cents(51000), created.Reservation.TotalAmount)

	// 2. Получаем ссылку на оплату
	payment, err := request_payment.NewUseCase(reservations, users, gateway, noMetrics, log).
		Execute(ctx, &request_payment.Request{ReservationID: created.Reservation.ID, PatientID: patient.ID})
	require.NoError(t, err)

	redirect, err := url.Parse(payment.RedirectURL)
	require.NoError(t, err)
	reservationID := strconv.FormatInt(created.Reservation.ID, 10)
	assert.Equal(t, reservationID, redirect.Query().Get(payfast.FieldCustomStr1))
	assert.Equal(t, "510.00", redirect.Query().Get(payfast.FieldAmount))

	stored, err := reservations.GetByID(ctx, created.Reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentReference)
	assert.Equal(t, payment.Reference, *stored.PaymentReference)
	assert.Equal(t, types.TimeString("09:00"), stored.StartTime)

	// 3. Уведомление от шлюза
	confirm := NewUseCase(reservations, users, providers, mailer.Nop{}, events.NoopPublisher{}, noMetrics,
		Options{VerifySignature: true, Passphrase: passphrase}, log)

	fields := url.Values{}
	fields.Set(payfast.FieldPaymentID, payment.Reference)
	fields.Set(payfast.FieldPaymentStatus, string(domain.GatewayComplete))
	fields.Set(payfast.FieldAmount, "510.00")
	fields.Set(payfast.FieldCustomStr1, reservationID)
	fields.Set(payfast.FieldSignature, payfast.Sign(fields, passphrase))

	resp, err := confirm.Execute(ctx, &Request{Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, resp.Outcome)

	final, err := reservations.GetByID(ctx, created.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, final.Status)
	assert.Equal(t, domain.PaymentPaid, final.PaymentStatus)

	// 4. Повторное уведомление об отмене не откатывает подтвержденную запись
	cancel := url.Values{}
	cancel.Set(payfast.FieldPaymentStatus, string(domain.GatewayCancelled))
	cancel.Set(payfast.FieldCustomStr1, reservationID)
	cancel.Set(payfast.FieldSignature, payfast.Sign(cancel, passphrase))

	resp, err = confirm.Execute(ctx, &Request{Fields: cancel})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeStale, resp.Outcome)

	final, err = reservations.GetByID(ctx, created.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, final.Status)
}
