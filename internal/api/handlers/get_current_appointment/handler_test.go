package get_current_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/scheduling"
)

type stubScheduler struct{}

func (stubScheduler) CurrentAppointment(_ context.Context, requesterID string) (*domain.Appointment, error) {
	if requesterID != "req-1" {
		return nil, scheduling.ErrAppointmentNotFound
	}
	return &domain.Appointment{
		ID:          "apt-1",
		RequesterID: "req-1",
		Date:        time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Hour:        "09:30",
		Status:      domain.StatusBooked,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler(t *testing.T) {
	h := middleware.Auth(http.HandlerFunc(NewHandler(stubScheduler{}, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodGet, "/appointments/current", nil)
	req.Header.Set(middleware.RequesterIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"apt-1"`)
	assert.Contains(t, rec.Body.String(), `"date":"2025-06-20"`)

	req = httptest.NewRequest(http.MethodGet, "/appointments/current", nil)
	req.Header.Set(middleware.RequesterIDHeader, "req-2")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
