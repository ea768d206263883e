package confirm_payment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/payfast"
)

// Options настройки проверки уведомлений
type Options struct {
	VerifySignature bool
	Passphrase      string
}

// UseCase use case обработки уведомления платежного шлюза
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	providerRepo    ProviderRepository
	mailer          Mailer
	publisher       EventPublisher
	metrics         Metrics
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	providerRepo ProviderRepository,
	mailer Mailer,
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		providerRepo:    providerRepo,
		mailer:          mailer,
		publisher:       publisher,
		metrics:         metrics,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет уведомление к записи.
// Ошибку возвращает только неверная подпись, сбои БД отражаются в Outcome и логируются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	status := domain.GatewayStatus(req.Fields.Get(payfast.FieldPaymentStatus))
	rawID := req.Fields.Get(payfast.FieldCustomStr1)

	uc.logger.Info("ConfirmPayment: payment_status=%s, custom_str1=%s, m_payment_id=%s",
		status, rawID, req.Fields.Get(payfast.FieldPaymentID))

	// 1. Проверяем подпись
	if uc.opts.VerifySignature && !payfast.VerifySignature(req.Fields, uc.opts.Passphrase) {
		uc.logger.Warn("ConfirmPayment: signature mismatch for custom_str1=%s", rawID)
		uc.metrics.RecordPaymentNotification("invalid_signature")
		return nil, ErrInvalidSignature
	}

	// 2. Статусы кроме COMPLETE/CANCELLED/FAILED ничего не меняют
	newStatus, newPaymentStatus, ok := status.Transition()
	if !ok {
		uc.logger.Info("ConfirmPayment: status %q ignored", status)
		return uc.done(0, domain.OutcomeIgnored), nil
	}

	reservationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || reservationID <= 0 {
		uc.logger.Warn("ConfirmPayment: invalid reservation id %q", rawID)
		return uc.done(0, domain.OutcomeNotFound), nil
	}

	// 3. Получаем запись
	reservation, err := uc.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d not found", reservationID)
			return uc.done(reservationID, domain.OutcomeNotFound), nil
		}
		uc.logger.Error("ConfirmPayment: failed to get reservation id=%d: %v", reservationID, err)
		return uc.done(reservationID, domain.OutcomeFailed), nil
	}

	if !reservation.IsAwaitingPayment() {
		uc.logger.Warn("ConfirmPayment: reservation id=%d already %s/%s", reservationID, reservation.Status, reservation.PaymentStatus)
		return uc.done(reservationID, domain.OutcomeStale), nil
	}

	// 4. Условное обновление: только из pending
	now := uc.timeProvider.Now()
	err = uc.reservationRepo.FinalizePending(ctx, reservationID, newStatus, newPaymentStatus, now)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotPending) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d finalized concurrently", reservationID)
			return uc.done(reservationID, domain.OutcomeStale), nil
		}
		uc.logger.Error("ConfirmPayment: failed to finalize reservation id=%d: %v", reservationID, err)
		return uc.done(reservationID, domain.OutcomeFailed), nil
	}

	reservation.Status = newStatus
	reservation.PaymentStatus = newPaymentStatus
	reservation.UpdatedAt = now
	uc.logger.Info("ConfirmPayment: reservation id=%d is now %s/%s", reservationID, newStatus, newPaymentStatus)

	// 5. Уведомления не влияют на ответ шлюзу
	if newStatus == domain.StatusConfirmed {
		uc.sendConfirmation(ctx, reservation)
		uc.publish(ctx, events.RoutingReservationConfirmed, reservation)
		return uc.done(reservationID, domain.OutcomeConfirmed), nil
	}

	uc.publish(ctx, events.RoutingReservationCancelled, reservation)
	return uc.done(reservationID, domain.OutcomeCancelled), nil
}

func (uc *UseCase) done(reservationID int64, outcome domain.PaymentOutcome) *Response {
	uc.metrics.RecordPaymentNotification(string(outcome))
	return &Response{ReservationID: reservationID, Outcome: outcome}
}

func (uc *UseCase) sendConfirmation(ctx context.Context, r *domain.Reservation) {
	patient, err := uc.userRepo.GetByID(ctx, r.PatientID)
	if err != nil {
		uc.logger.Warn("ConfirmPayment: no profile for patient=%d, confirmation email skipped: %v", r.PatientID, err)
		return
	}

	providerName := "your provider"
	if provider, err := uc.providerRepo.GetByID(ctx, r.ProviderID); err == nil {
		providerName = provider.FullName
	} else {
		uc.logger.Warn("ConfirmPayment: failed to get provider id=%d: %v", r.ProviderID, err)
	}

	patientName := patient.Email
	if patient.FullName != nil && *patient.FullName != "" {
		patientName = *patient.FullName
	}

	endTime, err := r.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		endTime = r.StartTime
	}

	err = uc.mailer.SendBookingConfirmation(mailer.BookingConfirmation{
		To:            patient.Email,
		PatientName:   patientName,
		ProviderName:  providerName,
		ReservationID: r.ID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       endTime,
		Total:         r.TotalAmount,
		Currency:      domain.DefaultCurrency,
	})
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to send confirmation for reservation id=%d: %v", r.ID, err)
		return
	}
	uc.logger.Info("ConfirmPayment: confirmation sent to patient=%d", r.PatientID)
}

func (uc *UseCase) publish(ctx context.Context, key string, r *domain.Reservation) {
	event := events.ReservationEvent{
		ReservationID: r.ID,
		PatientID:     r.PatientID,
		ProviderID:    r.ProviderID,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		BookingDate:   r.Date.String(),
		StartTime:     r.StartTime.String(),
		OccurredAt:    r.UpdatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.PublishJSON(ctx, key, event); err != nil {
		uc.logger.Error("ConfirmPayment: failed to publish %s for reservation id=%d: %v", key, r.ID, err)
	}
}
