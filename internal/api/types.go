package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/carewell/clinic-booking/internal/booking"
)

type CreateAppointmentRequest struct {
	ServiceID            string  `json:"service_id"`
	HealthProfessionalID string  `json:"health_professional_id"`
	CustomerEmail        string  `json:"customer_email"`
	Date                 string  `json:"date"`
	Notes                *string `json:"notes"`
}

type ServiceSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           string    `json:"price"`
}

type ProfessionalSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Service            ServiceSummary      `json:"service"`
	HealthProfessional ProfessionalSummary `json:"health_professional"`
	CustomerEmail      string              `json:"customer_email"`
	ScheduledAt        string              `json:"scheduled_at"`
	Status             string              `json:"status"`
	Notes              *string             `json:"notes"`
	CreatedAt          string              `json:"created_at"`
}

func newAppointmentResponse(d *booking.AppointmentDetail) AppointmentResponse {
	return AppointmentResponse{
		ID: d.ID,
		Service: ServiceSummary{
			ID:              d.Service.ID,
			Name:            d.Service.Name,
			DurationMinutes: d.Service.DurationMinutes,
			Price:           d.Service.Price,
		},
		HealthProfessional: ProfessionalSummary{
			ID:             d.Professional.ID,
			Name:           d.Professional.Name,
			Specialization: d.Professional.Specialization,
		},
		CustomerEmail: d.CustomerEmail,
		ScheduledAt:   d.ScheduledAt.Format(time.RFC3339),
		Status:        string(d.Status),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           string    `json:"price"`
}

func newServiceResponse(s *booking.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

type ProfessionalResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
}

func newProfessionalResponse(p *booking.HealthProfessional) ProfessionalResponse {
	return ProfessionalResponse{
		ID:             p.ID,
		Name:           p.Name,
		Specialization: p.Specialization,
		Email:          p.Email,
		Phone:          p.Phone,
	}
}

type StatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse is the field-scoped failure shape: a scheduling
// conflict surfaces as an error on the "date" field, not as its own code.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
