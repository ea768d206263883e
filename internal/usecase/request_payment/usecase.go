package request_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/payfast"
)

const itemName = "Consultation booking"

// Результаты для метрики редиректов
const (
	resultIssued = "issued"
	resultFailed = "failed"
)

// UseCase use case для получения ссылки на оплату записи
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	gateway         PaymentGateway
	metrics         Metrics
	newReference    func() string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	gateway PaymentGateway,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		metrics:         metrics,
		newReference:    uuid.NewString,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выдает ссылку на оплату. При ошибке шлюза запись остается pending, повторов нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestPayment: reservation=%d, patient=%d", req.ReservationID, req.PatientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("RequestPayment: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RequestPayment: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Платить может только владелец записи
	if !reservation.IsOwnedBy(req.PatientID) {
		uc.logger.Warn("RequestPayment: patient=%d is not owner of reservation id=%d", req.PatientID, req.ReservationID)
		return nil, ErrForbidden
	}

	if !reservation.IsAwaitingPayment() {
		uc.logger.Warn("RequestPayment: reservation id=%d is %s/%s", reservation.ID, reservation.Status, reservation.PaymentStatus)
		return nil, ErrNotAwaitingPayment
	}

	// 4. Профиль плательщика может отсутствовать
	payer, err := uc.lookupPayer(ctx, reservation.PatientID)
	if err != nil {
		return nil, err
	}

	// 5. Сохраняем ссылку на платеж до обращения к шлюзу
	reference := uc.newReference()
	if err := uc.reservationRepo.SetPaymentReference(ctx, reservation.ID, reference, uc.timeProvider.Now()); err != nil {
		uc.logger.Error("RequestPayment: failed to store payment reference for reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to store payment reference: %v", ErrInternal, err)
	}

	// 6. Запрашиваем hosted checkout
	description := fmt.Sprintf("Reservation #%d on %s at %s", reservation.ID, reservation.Date, reservation.StartTime)
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	redirectURL, err := uc.gateway.RequestRedirect(ctx, &payfast.PaymentRequest{
		Reference:       reference,
		Amount:          reservation.TotalAmount,
		ItemName:        itemName,
		ItemDescription: description,
		ReservationID:   reservation.ID,
		PatientID:       reservation.PatientID,
		PaymentType:     domain.PaymentTypeBooking,
		Payer:           payer,
	})
	if err != nil {
		uc.metrics.RecordPaymentRedirect(resultFailed)
		uc.logger.Error("RequestPayment: gateway failed for reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	uc.metrics.RecordPaymentRedirect(resultIssued)
	uc.logger.Info("RequestPayment: redirect issued for reservation id=%d, reference=%s", reservation.ID, reference)

	return &Response{
		ReservationID: reservation.ID,
		RedirectURL:   redirectURL,
		Reference:     reference,
		Amount:        reservation.TotalAmount,
		Currency:      domain.DefaultCurrency,
	}, nil
}

// lookupPayer возвращает nil, если у пациента нет профиля
func (uc *UseCase) lookupPayer(ctx context.Context, patientID int64) (*payfast.Payer, error) {
	user, err := uc.userRepo.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("RequestPayment: patient=%d has no profile, payer fields omitted", patientID)
			return nil, nil
		}
		uc.logger.Error("RequestPayment: failed to get profile for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	return &payfast.Payer{
		FirstName: firstName(user.FullName),
		Email:     user.Email,
	}, nil
}

func firstName(fullName *string) *string {
	if fullName == nil {
		return nil
	}
	parts := strings.Fields(*fullName)
	if len(parts) == 0 {
		return nil
	}
	return &parts[0]
}
