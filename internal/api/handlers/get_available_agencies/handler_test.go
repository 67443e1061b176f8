package get_available_agencies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type stubScheduler struct {
	agencies []*domain.Agency
}

func (s *stubScheduler) AgenciesAvailableOn(context.Context, time.Time) ([]*domain.Agency, error) {
	return s.agencies, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler(t *testing.T) {
	h := NewHandler(&stubScheduler{agencies: []*domain.Agency{
		{ID: "agency-1", Name: "Agencia Caracas Centro", Address: "Av. Urdaneta"},
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/availability?date=2025-06-20", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"agencyId":"agency-1","name":"Agencia Caracas Centro","address":"Av. Urdaneta"}]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/availability", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	empty := NewHandler(&stubScheduler{}, nopLogger{})
	rec = httptest.NewRecorder()
	empty.Handle(rec, httptest.NewRequest(http.MethodGet, "/availability?date=2025-06-21", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
