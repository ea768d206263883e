package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/service/reservations/models"
)

// Service сервис чтения записей
type Service struct {
	reservationRepo ReservationRepository
	providerRepo    ProviderRepository
	userRepo        UserRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	providerRepo ProviderRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		providerRepo:    providerRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Доступ есть у пациента-владельца, у врача этой записи и у администратора
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkReservationAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetPatientReservations получает историю записей пациента, опционально по статусу.
// Смотреть чужую историю может только администратор
func (s *Service) GetPatientReservations(ctx context.Context, req *models.GetPatientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPatientReservations: fetching reservations for patient=%d by user=%d, status=%v",
		req.PatientID, req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, ok := domain.ParseReservationStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetPatientReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	if req.UserID != req.PatientID {
		isAdmin, err := s.isAdmin(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			s.logger.Warn("GetPatientReservations: user=%d cannot read reservations of patient=%d", req.UserID, req.PatientID)
			return nil, ErrAccessDenied
		}
	}

	list, err := s.reservationRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientReservations: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientReservations: successfully fetched %d reservations for patient=%d", len(list), req.PatientID)
	return models.FromDomainReservationList(list), nil
}

// checkReservationAccess проверяет права пользователя на запись
func (s *Service) checkReservationAccess(ctx context.Context, r *domain.Reservation, userID int64) error {
	if r.IsOwnedBy(userID) {
		return nil
	}

	// Врач видит записи к себе
	provider, err := s.providerRepo.GetByID(ctx, r.ProviderID)
	if err == nil && provider.UserID == userID {
		return nil
	}
	if err != nil {
		s.logger.Warn("checkReservationAccess: failed to get provider id=%d: %v", r.ProviderID, err)
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}

	return ErrAccessDenied
}

// isAdmin читает роль пользователя из БД
func (s *Service) isAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return false, nil
		}
		s.logger.Error("isAdmin: failed to get user=%d: %v", userID, err)
		return false, fmt.Errorf("%w: isAdmin - repository error: %v", ErrInternal, err)
	}
	return user.IsAdmin(), nil
}
