package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func appointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            "apt-1",
		RequesterID:   "req-1",
		ApplicantKind: domain.ApplicantNatural,
		Date:          time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Hour:          "09:00",
		AgencyID:      "agency-2",
		ContactEmail:  "ana@mail.com",
		Status:        domain.StatusBooked,
		CreatedAt:     time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC),
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_PublishBooked(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, nopLogger{})

	require.NoError(t, p.PublishBooked(context.Background(), appointment()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "apt-1", string(msg.Key))
	assert.Equal(t, EventTypeAppointmentBooked, header(msg, "event_type"))
	assert.NotEmpty(t, header(msg, "event_id"))

	var event AppointmentBooked
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "2025-06-20", event.Date)
	assert.Equal(t, "09:00", event.Hour)
	assert.Equal(t, "agency-2", event.AgencyID)
	assert.Equal(t, "natural", event.ApplicantKind)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	p := NewPublisher(&fakeWriter{err: errors.New("broker down")}, nopLogger{})

	err := p.PublishBooked(context.Background(), appointment())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, SplitBrokers(" kafka:9092, ,kafka2:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
