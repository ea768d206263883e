package models

import "github.com/m04kA/SMC-ClinicBookingService/internal/domain"

// ProviderResponse публичная карточка врача
type ProviderResponse struct {
	ID              int64  `json:"id"`
	FullName        string `json:"fullName"`
	Specialty       string `json:"specialty"`
	ConsultationFee int64  `json:"consultationFee"`
	Currency        string `json:"currency"`
	IsApproved      bool   `json:"isApproved"`
}

// FromDomainProvider конвертирует domain модель в DTO
func FromDomainProvider(p *domain.Provider) *ProviderResponse {
	if p == nil {
		return nil
	}
	return &ProviderResponse{
		ID:              p.ID,
		FullName:        p.FullName,
		Specialty:       p.Specialty,
		ConsultationFee: int64(p.ConsultationFee),
		Currency:        domain.DefaultCurrency,
		IsApproved:      p.IsApproved,
	}
}
