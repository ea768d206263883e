package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// UseCase use case для создания записи к врачу
type UseCase struct {
	reservationRepo ReservationRepository
	providerRepo    ProviderRepository
	bookingFee      types.Cents
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	providerRepo ProviderRepository,
	bookingFee types.Cents,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		providerRepo:    providerRepo,
		bookingFee:      bookingFee,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись в статусе pending/pending.
// Повторной проверки доступности слота нет, две одновременные записи на одно время обе пройдут
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: patient=%d, provider=%d, date=%s, time=%s",
		req.PatientID, req.ProviderID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем врача ради стоимости консультации
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateReservation: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateReservation: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsApproved {
		uc.logger.Warn("CreateReservation: provider id=%d is not approved", req.ProviderID)
		return nil, ErrProviderNotApproved
	}

	// 3. Считаем сумму и сохраняем запись
	now := uc.timeProvider.Now()

	reservation := &domain.Reservation{
		PatientID:       req.PatientID,
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		StartTime:       startTime,
		ConsultationFee: provider.ConsultationFee,
		BookingFee:      uc.bookingFee,
		TotalAmount:     provider.ConsultationFee + uc.bookingFee,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.metrics.RecordReservationCreated()
	uc.logger.Info("CreateReservation: reservation id=%d created, total=%s", created.ID, created.TotalAmount.Decimal())

	return &Response{Reservation: created}, nil
}
