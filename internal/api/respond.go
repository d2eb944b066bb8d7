package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json response")
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Details: details,
	})
}

func writeValidationErrors(w http.ResponseWriter, errs map[string][]string) {
	msg := "The given data was invalid."
	for _, fieldErrs := range errs {
		if len(fieldErrs) > 0 {
			msg = fieldErrs[0]
			break
		}
	}

	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Message: msg,
		Errors:  errs,
	})
}
