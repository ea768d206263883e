package submit_enrollment

import (
	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Request модель заявки врача
type Request struct {
	IdempotencyKey  string // UUID, сгенерированный клиентом
	UserID          int64  // ID пользователя из токена
	FullName        string
	Email           string
	Specialty       string
	LicenseNumber   string
	ConsultationFee types.Cents
}

// Response модель ответа
type Response struct {
	Enrollment *domain.Enrollment
	Created    bool // false, если заявка с этим ключом уже была
}
