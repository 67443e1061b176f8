package book_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

type mockBooker struct {
	mock.Mock
}

func (m *mockBooker) Book(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookAppointment.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"requesterId": "req-1",
	"applicantKind": "natural",
	"date": "2025-06-20",
	"hour": "9:30",
	"agencyId": "agency-2",
	"contactEmail": "ana@mail.com",
	"clientName": "Ana"
}`

func newRouter(booker Booker) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/book", NewHandler(booker, validation.New(), nopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func doBook(r http.Handler, requesterID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(body))
	if requesterID != "" {
		req.Header.Set(middleware.RequesterIDHeader, requesterID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	booker := &mockBooker{}
	appt := &domain.Appointment{
		ID:            "apt-1",
		RequesterID:   "req-1",
		ApplicantKind: domain.ApplicantNatural,
		Date:          time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Hour:          "09:30",
		AgencyID:      "agency-2",
		ContactEmail:  "ana@mail.com",
		Status:        domain.StatusBooked,
	}
	booker.On("Book", mock.Anything, mock.MatchedBy(func(req *bookAppointment.Request) bool {
		return req.RequesterID == "req-1" && req.Hour == "09:30" && req.Date.Equal(appt.Date)
	})).Return(&bookAppointment.Response{
		Appointment: appt,
		PdfURL:      "/pdf/apt-1",
		Notifications: []domain.Notification{
			{Kind: domain.NotificationClient, Recipient: "ana@mail.com", Subject: "Confirmación de cita BBVA"},
			{Kind: domain.NotificationBank, Recipient: "citas@bbva.com", Subject: "Nueva cita agendada"},
		},
	}, nil).Once()

	rec := doBook(newRouter(booker), "req-1", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "apt-1", resp.Appointment.ID)
	assert.Equal(t, "2025-06-20", resp.Appointment.Date)
	assert.Equal(t, "/pdf/apt-1", resp.PdfURL)
	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, "bank", resp.Notifications[1].Kind)
	booker.AssertExpectations(t)
}

func TestHandler_Rejections(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{err: scheduling.ErrIncompleteApplication, wantStatus: http.StatusUnprocessableEntity, wantKind: bookAppointment.KindIncompleteApplication},
		{err: bookAppointment.ErrAlreadyBooked, wantStatus: http.StatusConflict, wantKind: bookAppointment.KindAlreadyBooked},
		{err: fmt.Errorf("%w: saturday", bookAppointment.ErrInvalidDate), wantStatus: http.StatusBadRequest, wantKind: bookAppointment.KindInvalidDate},
		{err: bookAppointment.ErrAgencyNotBookable, wantStatus: http.StatusUnprocessableEntity, wantKind: bookAppointment.KindAgencyNotBookable},
		{err: bookAppointment.ErrAgencyFullyBooked, wantStatus: http.StatusConflict, wantKind: bookAppointment.KindAgencyFullyBooked},
		{err: bookAppointment.ErrSlotTaken, wantStatus: http.StatusConflict, wantKind: bookAppointment.KindSlotTaken},
		{err: scheduling.ErrIntakeUnavailable, wantStatus: http.StatusServiceUnavailable},
		{err: bookAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			booker := &mockBooker{}
			booker.On("Book", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := doBook(newRouter(booker), "req-1", validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantKind, resp.ErrorKind)
		})
	}
}

func TestHandler_InvalidDateMessages(t *testing.T) {
	tests := []struct {
		err     error
		wantMsg string
	}{
		{err: fmt.Errorf("%w: 2025-06-21", bookAppointment.ErrNotBusinessDay), wantMsg: msgNotBusinessDay},
		{err: fmt.Errorf("%w: earliest bookable date is 2025-06-19", bookAppointment.ErrBeforeBookingWindow), wantMsg: msgBeforeBookingWindow},
		{err: bookAppointment.ErrInvalidDate, wantMsg: msgInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			booker := &mockBooker{}
			booker.On("Book", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := doBook(newRouter(booker), "req-1", validBody)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, bookAppointment.KindInvalidDate, resp.ErrorKind)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	booker := &mockBooker{}
	r := newRouter(booker)

	rec := doBook(r, "", validBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doBook(r, "req-2", validBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doBook(r, "req-1", `{"requesterId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doBook(r, "req-1", strings.Replace(validBody, `"2025-06-20"`, `"20/06/2025"`, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "date", resp.Details["Date"])

	rec = doBook(r, "req-1", strings.Replace(validBody, `"natural"`, `"company"`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	booker.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
}
