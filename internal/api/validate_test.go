package api

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateAppointment(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	serviceID := uuid.New()
	professionalID := uuid.New()

	valid := CreateAppointmentRequest{
		ServiceID:            serviceID.String(),
		HealthProfessionalID: professionalID.String(),
		CustomerEmail:        "jane@example.com",
		Date:                 "2026-09-14 10:00:00",
	}

	tests := []struct {
		name      string
		mutate    func(r *CreateAppointmentRequest)
		wantField string
	}{
		{"missing service id", func(r *CreateAppointmentRequest) { r.ServiceID = "" }, "service_id"},
		{"malformed service id", func(r *CreateAppointmentRequest) { r.ServiceID = "not-a-uuid" }, "service_id"},
		{"missing professional id", func(r *CreateAppointmentRequest) { r.HealthProfessionalID = "" }, "health_professional_id"},
		{"malformed professional id", func(r *CreateAppointmentRequest) { r.HealthProfessionalID = "123" }, "health_professional_id"},
		{"missing email", func(r *CreateAppointmentRequest) { r.CustomerEmail = "" }, "customer_email"},
		{"invalid email", func(r *CreateAppointmentRequest) { r.CustomerEmail = "not-an-email" }, "customer_email"},
		{"email with display name", func(r *CreateAppointmentRequest) { r.CustomerEmail = "Jane <jane@example.com>" }, "customer_email"},
		{"overlong email", func(r *CreateAppointmentRequest) {
			r.CustomerEmail = strings.Repeat("a", 250) + "@example.com"
		}, "customer_email"},
		{"missing date", func(r *CreateAppointmentRequest) { r.Date = "" }, "date"},
		{"unparseable date", func(r *CreateAppointmentRequest) { r.Date = "next tuesday" }, "date"},
		{"past date", func(r *CreateAppointmentRequest) { r.Date = "2026-08-31 10:00:00" }, "date"},
		{"date equal to now", func(r *CreateAppointmentRequest) { r.Date = "2026-09-01 12:00:00" }, "date"},
		{"overlong notes", func(r *CreateAppointmentRequest) {
			notes := strings.Repeat("x", maxNotesLength+1)
			r.Notes = &notes
		}, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, errs := validateCreateAppointment(req, now)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestValidateCreateAppointment_Valid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	serviceID := uuid.New()
	professionalID := uuid.New()
	notes := "prefers morning slots"

	in, errs := validateCreateAppointment(CreateAppointmentRequest{
		ServiceID:            serviceID.String(),
		HealthProfessionalID: professionalID.String(),
		CustomerEmail:        "jane@example.com",
		Date:                 "2026-09-14T10:00:00Z",
		Notes:                &notes,
	}, now)

	require.Nil(t, errs)
	assert.Equal(t, serviceID, in.ServiceID)
	assert.Equal(t, professionalID, in.HealthProfessionalID)
	assert.Equal(t, "jane@example.com", in.CustomerEmail)
	assert.True(t, in.ScheduledAt.Equal(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, in.Notes)
	assert.Equal(t, notes, *in.Notes)
}

func TestValidateCreateAppointment_DateLayouts(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	for _, date := range []string{
		"2026-09-14T10:00:00Z",
		"2026-09-14 10:00:00",
		"2026-09-14T10:00:00",
	} {
		in, errs := validateCreateAppointment(CreateAppointmentRequest{
			ServiceID:            uuid.NewString(),
			HealthProfessionalID: uuid.NewString(),
			CustomerEmail:        "jane@example.com",
			Date:                 date,
		}, now)

		require.Nil(t, errs, "layout %q", date)
		assert.Equal(t, 10, in.ScheduledAt.Hour())
	}
}

func TestValidateCreateAppointment_CollectsAllFieldErrors(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	_, errs := validateCreateAppointment(CreateAppointmentRequest{}, now)

	require.NotNil(t, errs)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "service_id")
	assert.Contains(t, errs, "health_professional_id")
	assert.Contains(t, errs, "customer_email")
	assert.Contains(t, errs, "date")
}
