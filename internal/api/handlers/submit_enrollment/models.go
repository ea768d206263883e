package submit_enrollment

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	submitEnrollment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/submit_enrollment"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// SubmitEnrollmentRequest HTTP request model. Сумма в минимальных единицах валюты
type SubmitEnrollmentRequest struct {
	FullName        string `json:"fullName" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Specialty       string `json:"specialty" validate:"required,max=100"`
	LicenseNumber   string `json:"licenseNumber" validate:"required,max=50"`
	ConsultationFee int64  `json:"consultationFee" validate:"required,gt=0"`
}

// EnrollmentResponse HTTP response model
type EnrollmentResponse struct {
	ID              int64  `json:"id"`
	ProviderID      int64  `json:"providerId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Specialty       string `json:"specialty"`
	LicenseNumber   string `json:"licenseNumber"`
	ConsultationFee int64  `json:"consultationFee"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitEnrollmentRequest) ToUseCaseRequest(key string, userID int64) *submitEnrollment.Request {
	return &submitEnrollment.Request{
		IdempotencyKey:  key,
		UserID:          userID,
		FullName:        r.FullName,
		Email:           r.Email,
		Specialty:       r.Specialty,
		LicenseNumber:   r.LicenseNumber,
		ConsultationFee: types.Cents(r.ConsultationFee),
	}
}

// FromDomainEnrollment конвертирует domain модель в HTTP response
func FromDomainEnrollment(e *domain.Enrollment) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:              e.ID,
		ProviderID:      e.ProviderID,
		FullName:        e.FullName,
		Email:           e.Email,
		Specialty:       e.Specialty,
		LicenseNumber:   e.LicenseNumber,
		ConsultationFee: int64(e.ConsultationFee),
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}
