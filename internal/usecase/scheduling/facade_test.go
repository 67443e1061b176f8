package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	wednesday = time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	friday    = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type pdfStub struct{}

func (pdfStub) BuildPdfURL(id string) string { return "/pdf/" + id }

type mockCompleteness struct {
	mock.Mock
}

func (m *mockCompleteness) IsApplicationComplete(ctx context.Context, requesterID string) (bool, error) {
	args := m.Called(ctx, requesterID)
	return args.Bool(0), args.Error(1)
}

func newFacade(t *testing.T, completeness CompletenessChecker) *Facade {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Agencies().Upsert(ctx, &domain.Agency{ID: "agency-2", Name: "Agencia Norte", Position: 2}))
	_, err := store.Parameters().Create(ctx, &domain.AgencyParameters{
		AgencyID:              "agency-2",
		MaxAppointmentsPerDay: 3,
		AvailableHours:        []types.TimeString{"09:30", "10:30", "11:30"},
	})
	require.NoError(t, err)

	resolver := availability.NewService(store.Agencies(), store.Parameters(), store.Appointments(), nopLogger{})
	booker := book_appointment.NewUseCase(
		store.Appointments(),
		store.Parameters(),
		store.Agencies(),
		store.TxManager(),
		nil,
		pdfStub{},
		nil,
		book_appointment.Settings{
			EnforceWindow:      true,
			NaturalRecipient:   "citas@bbva.com",
			JuridicalRecipient: "citas.juridicas@bbva.com",
		},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: wednesday})

	return NewFacade(resolver, booker, completeness, store.Appointments(), nopLogger{}).
		WithTimeProvider(fixedTime{now: wednesday})
}

func bookRequest(requester string, hour types.TimeString) *book_appointment.Request {
	return &book_appointment.Request{
		RequesterID:   requester,
		ApplicantKind: domain.ApplicantNatural,
		Date:          friday,
		Hour:          hour,
		AgencyID:      "agency-2",
		ContactEmail:  requester + "@mail.com",
	}
}

func TestFacade_Book(t *testing.T) {
	ctx := context.Background()
	completeness := &mockCompleteness{}
	completeness.On("IsApplicationComplete", ctx, "req-1").Return(true, nil)
	completeness.On("IsApplicationComplete", ctx, "req-2").Return(false, nil)
	completeness.On("IsApplicationComplete", ctx, "req-3").Return(false, errors.New("timeout"))

	f := newFacade(t, completeness)

	resp, err := f.Book(ctx, bookRequest("req-1", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, "/pdf/"+resp.Appointment.ID, resp.PdfURL)

	hours, err := f.HoursAvailableAt(ctx, "agency-2", friday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30", "11:30"}, hours)

	_, err = f.Book(ctx, bookRequest("req-2", "10:30"))
	assert.ErrorIs(t, err, ErrIncompleteApplication)

	_, err = f.Book(ctx, bookRequest("req-3", "10:30"))
	assert.ErrorIs(t, err, ErrIntakeUnavailable)

	// Повторная запись того же заявителя
	_, err = f.Book(ctx, bookRequest("req-1", "10:30"))
	assert.ErrorIs(t, err, book_appointment.ErrAlreadyBooked)

	completeness.AssertExpectations(t)
}

func TestFacade_IncompleteCheckedFirst(t *testing.T) {
	ctx := context.Background()
	completeness := &mockCompleteness{}
	completeness.On("IsApplicationComplete", ctx, "req-1").Return(true, nil).Once()
	completeness.On("IsApplicationComplete", ctx, "req-1").Return(false, nil).Once()

	f := newFacade(t, completeness)

	_, err := f.Book(ctx, bookRequest("req-1", "09:30"))
	require.NoError(t, err)

	// Уже записан, но анкета проверяется раньше
	_, err = f.Book(ctx, bookRequest("req-1", "10:30"))
	assert.ErrorIs(t, err, ErrIncompleteApplication)
}

type outcomeRecorder struct{ outcomes []string }

func (r *outcomeRecorder) ObserveBooking(outcome string) { r.outcomes = append(r.outcomes, outcome) }

func TestFacade_IncompleteObserved(t *testing.T) {
	ctx := context.Background()
	completeness := &mockCompleteness{}
	completeness.On("IsApplicationComplete", ctx, "req-1").Return(false, nil)

	recorder := &outcomeRecorder{}
	f := newFacade(t, completeness).WithOutcomeObserver(recorder)

	_, err := f.Book(ctx, bookRequest("req-1", "09:30"))
	assert.ErrorIs(t, err, ErrIncompleteApplication)
	assert.Equal(t, []string{book_appointment.KindIncompleteApplication}, recorder.outcomes)
}

func TestFacade_AgenciesAvailableOn(t *testing.T) {
	ctx := context.Background()
	completeness := &mockCompleteness{}
	completeness.On("IsApplicationComplete", ctx, mock.Anything).Return(true, nil)
	f := newFacade(t, completeness)

	for i, hour := range []types.TimeString{"09:30", "10:30", "11:30"} {
		_, err := f.Book(ctx, bookRequest("req-"+string(rune('a'+i)), hour))
		require.NoError(t, err)
	}

	agencies, err := f.AgenciesAvailableOn(ctx, friday)
	require.NoError(t, err)
	assert.Empty(t, agencies)

	agencies, err = f.AgenciesAvailableOn(ctx, friday.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, agencies, 1)
	assert.Equal(t, "agency-2", agencies[0].ID)
}

func TestFacade_BookingWindow(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{now: wednesday, want: "2025-06-19"},
		{now: time.Date(2025, 6, 20, 18, 0, 0, 0, time.UTC), want: "2025-06-23"},
		{now: time.Date(2025, 6, 21, 9, 0, 0, 0, time.UTC), want: "2025-06-23"},
	}

	f := newFacade(t, &mockCompleteness{})
	for _, tt := range tests {
		f.WithTimeProvider(fixedTime{now: tt.now})
		assert.Equal(t, tt.want, f.BookingWindow().Format(domain.DateFormat))
	}
}

func TestFacade_CurrentAppointment(t *testing.T) {
	ctx := context.Background()
	completeness := &mockCompleteness{}
	completeness.On("IsApplicationComplete", ctx, "req-1").Return(true, nil)
	f := newFacade(t, completeness)

	_, err := f.CurrentAppointment(ctx, "req-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	resp, err := f.Book(ctx, bookRequest("req-1", "11:30"))
	require.NoError(t, err)

	current, err := f.CurrentAppointment(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, resp.Appointment.ID, current.ID)
	assert.Equal(t, types.TimeString("11:30"), current.Hour)
}
