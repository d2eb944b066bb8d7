package api

import (
	"errors"
	"net/http"

	"github.com/carewell/clinic-booking/internal/booking"
)

// Catalog endpoints are read-only plumbing over the seeded services and
// health professionals.

func listServicesHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := svc.ListServices(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ServiceResponse, 0, len(services))
		for i := range services {
			resp = append(resp, newServiceResponse(&services[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func getServiceHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		service, err := svc.GetService(r.Context(), id)
		if err != nil {
			if errors.Is(err, booking.ErrServiceNotFound) {
				writeError(w, http.StatusNotFound, "service_not_found", "Service not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, newServiceResponse(service))
	}
}

func listProfessionalsHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		professionals, err := svc.ListProfessionals(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ProfessionalResponse, 0, len(professionals))
		for i := range professionals {
			resp = append(resp, newProfessionalResponse(&professionals[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func getProfessionalHandler(svc *booking.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		professional, err := svc.GetProfessional(r.Context(), id)
		if err != nil {
			if errors.Is(err, booking.ErrProfessionalNotFound) {
				writeError(w, http.StatusNotFound, "health_professional_not_found", "Health professional not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, newProfessionalResponse(professional))
	}
}
