package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// GetPatientReservationsRequest запрос на историю записей пациента
type GetPatientReservationsRequest struct {
	UserID    int64   `json:"userId"`    // Кто запрашивает
	PatientID int64   `json:"patientId"` // Чьи записи
	Status    *string `json:"status,omitempty"`
}

// ReservationResponse ответ с данными записи. Суммы в минимальных единицах валюты
type ReservationResponse struct {
	ID               int64   `json:"id"`
	PatientID        int64   `json:"patientId"`
	ProviderID       int64   `json:"providerId"`
	BookingDate      string  `json:"bookingDate"` // "2025-10-15"
	StartTime        string  `json:"startTime"`   // "10:00"
	EndTime          string  `json:"endTime"`
	ConsultationFee  int64   `json:"consultationFee"`
	BookingFee       int64   `json:"bookingFee"`
	TotalAmount      int64   `json:"totalAmount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	Notes            *string `json:"notes,omitempty"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	endTime, err := r.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		endTime = r.StartTime
	}

	return &ReservationResponse{
		ID:               r.ID,
		PatientID:        r.PatientID,
		ProviderID:       r.ProviderID,
		BookingDate:      r.Date.String(),
		StartTime:        r.StartTime.String(),
		EndTime:          endTime.String(),
		ConsultationFee:  int64(r.ConsultationFee),
		BookingFee:       int64(r.BookingFee),
		TotalAmount:      int64(r.TotalAmount),
		Currency:         domain.DefaultCurrency,
		Status:           string(r.Status),
		PaymentStatus:    string(r.PaymentStatus),
		Notes:            r.Notes,
		PaymentReference: r.PaymentReference,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}
