package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carewell/clinic-booking/internal/booking"
)

func createAppointmentHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in, errs := validateCreateAppointment(req, time.Now())
		if errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		detail, err := svc.CreateAppointment(r.Context(), in)
		if err != nil {
			handleCreateError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newAppointmentResponse(detail))
	}
}

// handleCreateError mirrors framework-validated booking errors: missing
// references and the scheduling conflict come back as field-scoped
// validation failures, everything else as plain errors.
func handleCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrServiceNotFound):
		writeValidationErrors(w, map[string][]string{
			"service_id": {"The selected service does not exist."},
		})
	case errors.Is(err, booking.ErrProfessionalNotFound):
		writeValidationErrors(w, map[string][]string{
			"health_professional_id": {"The selected health professional does not exist."},
		})
	case errors.Is(err, booking.ErrTimeSlotTaken):
		writeValidationErrors(w, map[string][]string{
			"date": {"The selected time slot is not available for this health professional."},
		})
	case errors.Is(err, booking.ErrSlotBeingBooked):
		writeError(w, http.StatusConflict, "slot_being_booked", "time slot is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func getAppointmentHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		detail, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			if errors.Is(err, booking.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", "Appointment not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, newAppointmentResponse(detail))
	}
}

func listCustomerAppointmentsHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("customer_email")
		if email == "" {
			writeError(w, http.StatusBadRequest, "missing_customer_email", "customer_email query parameter is required")
			return
		}

		details, err := svc.ListCustomerAppointments(r.Context(), email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]AppointmentResponse, 0, len(details))
		for i := range details {
			resp = append(resp, newAppointmentResponse(&details[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelAppointmentHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		cancelled, err := svc.CancelAppointment(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if !cancelled {
			writeError(w, http.StatusNotFound, "appointment_not_found", "Appointment not found")
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{ID: id, Status: string(booking.StatusCancelled)})
	}
}

func confirmAppointmentHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		appt, err := svc.ConfirmAppointment(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrAppointmentNotFound):
				writeError(w, http.StatusNotFound, "appointment_not_found", "Appointment not found")
			case errors.Is(err, booking.ErrInvalidStatusTransition):
				writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{ID: appt.ID, Status: string(appt.Status)})
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
