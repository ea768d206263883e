package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/provider"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/providers/models"
)

// Service сервис управления врачами
type Service struct {
	providerRepo   ProviderRepository
	userRepo       UserRepository
	enrollmentRepo EnrollmentRepository
	txManager      TransactionManager
	now            func() time.Time
	logger         Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	providerRepo ProviderRepository,
	userRepo UserRepository,
	enrollmentRepo EnrollmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		providerRepo:   providerRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		txManager:      txManager,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// GetByID получает карточку врача
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetByID: provider id=%d not found", id)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetByID: repository error for provider id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProvider(provider), nil
}

// Approve одобряет врача. Роль администратора читается из БД, а не из токена
func (s *Service) Approve(ctx context.Context, providerID int64, actingUserID int64) (*models.ProviderResponse, error) {
	s.logger.Info("Approve: approving provider id=%d by user=%d", providerID, actingUserID)

	// 1. Проверяем права
	if err := s.checkAdminAccess(ctx, actingUserID); err != nil {
		return nil, err
	}

	var approved *domain.Provider

	// 2. Врач, роль пользователя и заявки меняются вместе
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		provider, err := s.providerRepo.GetByID(txCtx, providerID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: Approve - get provider: %v", ErrInternal, err)
		}

		now := s.now()
		if err := s.providerRepo.SetApproved(txCtx, providerID, true, now); err != nil {
			return fmt.Errorf("%w: Approve - set approved: %v", ErrInternal, err)
		}

		// 2.1. Профиля может не быть, если врача заводили вручную
		if err := s.userRepo.SetRole(txCtx, provider.UserID, domain.RoleProvider); err != nil {
			if !errors.Is(err, userRepo.ErrUserNotFound) {
				return fmt.Errorf("%w: Approve - set role: %v", ErrInternal, err)
			}
			s.logger.Warn("Approve: user id=%d of provider id=%d has no profile", provider.UserID, providerID)
		}

		if err := s.enrollmentRepo.SetStatusByProvider(txCtx, providerID, domain.EnrollmentApproved); err != nil {
			return fmt.Errorf("%w: Approve - set enrollment status: %v", ErrInternal, err)
		}

		provider.IsApproved = true
		provider.UpdatedAt = now
		approved = provider
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			s.logger.Warn("Approve: provider id=%d not found", providerID)
		} else {
			s.logger.Error("Approve: failed to approve provider id=%d: %v", providerID, err)
		}
		return nil, err
	}

	// 3. Кэш сбрасывается после commit
	s.providerRepo.Invalidate(providerID)

	s.logger.Info("Approve: provider id=%d approved by admin=%d", providerID, actingUserID)
	return models.FromDomainProvider(approved), nil
}

// checkAdminAccess проверяет роль пользователя
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user=%d has no profile", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkAdminAccess - repository error: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%d has role %s", userID, user.Role)
		return ErrAccessDenied
	}
	return nil
}
