package admin_login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/auth"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	manager := auth.NewManager("secret", time.Hour)
	h := NewHandler(auth.NewAdminAuthenticator("admin", hash, manager), validation.New(), nopLogger{})

	login := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body)))
		return rec
	}

	rec := login(`{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err = manager.RequireRole(resp.Token, auth.RoleAdmin)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, login(`{"username":"admin","password":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, login(`{"username":"admin"}`).Code)
	assert.Equal(t, http.StatusBadRequest, login(``).Code)
}
