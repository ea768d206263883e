package submit_enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	enrollmentRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/enrollment"
)

// UseCase use case подачи заявки врача. Повтор с тем же ключом возвращает сохраненную заявку
type UseCase struct {
	enrollmentRepo EnrollmentRepository
	providerRepo   ProviderRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	enrollmentRepo EnrollmentRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		enrollmentRepo: enrollmentRepo,
		providerRepo:   providerRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подачи заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitEnrollment: user=%d, key=%s", req.UserID, req.IdempotencyKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitEnrollment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Поиск по ключу и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.enrollmentRepo.GetByIdempotencyKey(txCtx, req.IdempotencyKey)
		if err == nil {
			result = &Response{Enrollment: existing, Created: false}
			return nil
		}
		if !errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
			return fmt.Errorf("%w: failed to get enrollment: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		// 2.1. Врач создается неодобренным
		provider, err := uc.providerRepo.Create(txCtx, &domain.Provider{
			UserID:          req.UserID,
			FullName:        req.FullName,
			Email:           req.Email,
			Specialty:       req.Specialty,
			ConsultationFee: req.ConsultationFee,
			IsApproved:      false,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create provider: %v", ErrInternal, err)
		}

		// 2.2. Заявка
		enrollment, err := uc.enrollmentRepo.Create(txCtx, &domain.Enrollment{
			IdempotencyKey:  req.IdempotencyKey,
			UserID:          req.UserID,
			ProviderID:      provider.ID,
			FullName:        req.FullName,
			Email:           req.Email,
			Specialty:       req.Specialty,
			LicenseNumber:   req.LicenseNumber,
			ConsultationFee: req.ConsultationFee,
			Status:          domain.EnrollmentSubmitted,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}

		result = &Response{Enrollment: enrollment, Created: true}
		return nil
	})

	// 3. Параллельный запрос с тем же ключом успел раньше, читаем его результат
	if errors.Is(err, enrollmentRepo.ErrDuplicateKey) {
		uc.logger.Warn("SubmitEnrollment: concurrent submission with key=%s", req.IdempotencyKey)
		existing, getErr := uc.enrollmentRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if getErr != nil {
			uc.logger.Error("SubmitEnrollment: failed to reread enrollment key=%s: %v", req.IdempotencyKey, getErr)
			return nil, fmt.Errorf("%w: failed to reread enrollment: %v", ErrInternal, getErr)
		}
		result, err = &Response{Enrollment: existing, Created: false}, nil
	}
	if err != nil {
		uc.logger.Error("SubmitEnrollment: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Ключ нельзя переиспользовать чужим пользователем
	if result.Enrollment.UserID != req.UserID {
		uc.logger.Warn("SubmitEnrollment: key=%s belongs to user=%d", req.IdempotencyKey, result.Enrollment.UserID)
		return nil, ErrKeyConflict
	}

	if result.Created {
		uc.logger.Info("SubmitEnrollment: enrollment id=%d created for provider id=%d", result.Enrollment.ID, result.Enrollment.ProviderID)
	} else {
		uc.logger.Info("SubmitEnrollment: returning existing enrollment id=%d", result.Enrollment.ID)
	}

	return result, nil
}
