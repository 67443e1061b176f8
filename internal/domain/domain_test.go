package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(date(t, "2025-06-20")))  // пятница
	assert.False(t, IsBusinessDay(date(t, "2025-06-21"))) // суббота
	assert.False(t, IsBusinessDay(date(t, "2025-06-22"))) // воскресенье
	assert.True(t, IsBusinessDay(date(t, "2025-06-23")))  // понедельник
}

func TestNextBusinessDay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"wednesday", time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC), "2025-06-19"},
		{"friday", time.Date(2025, 6, 20, 23, 59, 0, 0, time.UTC), "2025-06-23"},
		{"saturday", time.Date(2025, 6, 21, 8, 0, 0, 0, time.UTC), "2025-06-23"},
		{"sunday", time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC), "2025-06-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBusinessDay(tt.now).Format(DateFormat))
		})
	}
}

func TestNewAgencyParameters(t *testing.T) {
	p, err := NewAgencyParameters("agency-2", 3, []types.TimeString{"9:30", "10:30", "11:30"})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:30", "10:30", "11:30"}, p.AvailableHours)
	assert.True(t, p.HasHour("10:30"))
	assert.False(t, p.HasHour("12:00"))

	cases := []struct {
		name  string
		id    string
		max   int
		hours []types.TimeString
	}{
		{"empty id", "", 3, []types.TimeString{"09:00"}},
		{"zero cap", "agency-1", 0, []types.TimeString{"09:00"}},
		{"no hours", "agency-1", 3, nil},
		{"bad hour", "agency-1", 3, []types.TimeString{"9h"}},
		{"duplicate hour", "agency-1", 3, []types.TimeString{"09:00", "09:00:00"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewAgencyParameters(c.id, c.max, c.hours)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestAppointment_Transitions(t *testing.T) {
	a := &Appointment{Status: StatusBooked}
	assert.True(t, a.CanTransitionTo(StatusProcessed))
	assert.True(t, a.CanTransitionTo(StatusCanceled))
	assert.False(t, a.CanTransitionTo(StatusCompleted))

	now := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	a.ApplyStatus(StatusProcessed, nil, now)
	require.NotNil(t, a.ProcessedAt)
	assert.True(t, a.IsActive())
	assert.True(t, a.CanTransitionTo(StatusCompleted))
	assert.False(t, a.CanTransitionTo(StatusCanceled))

	a.ApplyStatus(StatusCompleted, nil, now.Add(time.Hour))
	assert.False(t, a.CanTransitionTo(StatusCanceled))
	assert.True(t, a.IsActive())

	c := &Appointment{Status: StatusBooked}
	c.ApplyStatus(StatusCanceled, ptr.Ptr("Cliente no disponible"), now)
	assert.False(t, c.IsActive())
	assert.Equal(t, "Cliente no disponible", *c.CancelReason)
	assert.False(t, c.CanTransitionTo(StatusBooked))
}

func TestAppointmentsFilter_Matches(t *testing.T) {
	d := date(t, "2025-06-20")
	a := &Appointment{AgencyID: "agency-2", RequesterID: "req-1", Date: d, Status: StatusCanceled}

	assert.True(t, AppointmentsFilter{AgencyID: ptr.Ptr("agency-2")}.Matches(a))
	assert.False(t, AppointmentsFilter{AgencyID: ptr.Ptr("agency-1")}.Matches(a))
	assert.False(t, AppointmentsFilter{ActiveOnly: true}.Matches(a))
	assert.True(t, AppointmentsFilter{DateFrom: &d, DateTo: &d}.Matches(a))
	assert.True(t, AppointmentsFilter{DateFrom: &d, DateTo: &d}.IsSingleDay())

	status := StatusCanceled
	assert.True(t, AppointmentsFilter{Status: &status, ActiveOnly: true}.Matches(a))

	next := d.AddDate(0, 0, 1)
	assert.False(t, AppointmentsFilter{DateFrom: &next}.Matches(a))
}
