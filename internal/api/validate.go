package api

import (
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/clinic-booking/internal/booking"
)

const maxNotesLength = 1000

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// validateCreateAppointment turns the raw request into a typed input for the
// booking service. Field errors use the request's JSON keys.
func validateCreateAppointment(req CreateAppointmentRequest, now time.Time) (booking.CreateInput, map[string][]string) {
	errs := make(map[string][]string)
	var in booking.CreateInput

	if req.ServiceID == "" {
		errs["service_id"] = append(errs["service_id"], "The service id field is required.")
	} else if id, err := uuid.Parse(req.ServiceID); err != nil {
		errs["service_id"] = append(errs["service_id"], "The service id must be a valid UUID.")
	} else {
		in.ServiceID = id
	}

	if req.HealthProfessionalID == "" {
		errs["health_professional_id"] = append(errs["health_professional_id"], "The health professional id field is required.")
	} else if id, err := uuid.Parse(req.HealthProfessionalID); err != nil {
		errs["health_professional_id"] = append(errs["health_professional_id"], "The health professional id must be a valid UUID.")
	} else {
		in.HealthProfessionalID = id
	}

	if req.CustomerEmail == "" {
		errs["customer_email"] = append(errs["customer_email"], "The customer email field is required.")
	} else if len(req.CustomerEmail) > 255 {
		errs["customer_email"] = append(errs["customer_email"], "The customer email may not be greater than 255 characters.")
	} else if addr, err := mail.ParseAddress(req.CustomerEmail); err != nil || addr.Address != req.CustomerEmail {
		errs["customer_email"] = append(errs["customer_email"], "The customer email must be a valid email address.")
	} else {
		in.CustomerEmail = req.CustomerEmail
	}

	if req.Date == "" {
		errs["date"] = append(errs["date"], "The date field is required.")
	} else if scheduledAt, ok := parseDate(req.Date); !ok {
		errs["date"] = append(errs["date"], "The date must be a valid date.")
	} else if !scheduledAt.After(now) {
		errs["date"] = append(errs["date"], "The appointment date must be in the future.")
	} else {
		in.ScheduledAt = scheduledAt
	}

	if req.Notes != nil && len(*req.Notes) > maxNotesLength {
		errs["notes"] = append(errs["notes"], "The notes may not be greater than 1000 characters.")
	} else {
		in.Notes = req.Notes
	}

	if len(errs) > 0 {
		return booking.CreateInput{}, errs
	}
	return in, nil
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
