package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func notification(kind domain.NotificationKind) domain.Notification {
	return domain.Notification{
		Kind:          kind,
		Recipient:     "ana@mail.com",
		Subject:       "Confirmación de cita BBVA",
		AppointmentID: "apt-1",
		ClientName:    "Ana <Pérez>",
		ClientEmail:   "ana@mail.com",
		Date:          "2025-06-20",
		Hour:          "09:30",
		AgencyName:    "Agencia Valencia Centro",
		AgencyAddress: "Av. Bolívar, Valencia",
		PdfURL:        "/placeholder.svg?height=800&width=600&text=Cita_BBVA_apt-1.pdf",
	}
}

func TestRender(t *testing.T) {
	body, err := Render(notification(domain.NotificationClient))
	require.NoError(t, err)

	assert.Contains(t, body, "Estimado/a <strong>Ana &lt;Pérez&gt;</strong>")
	assert.Contains(t, body, "2025-06-20")
	assert.Contains(t, body, "09:30")
	assert.Contains(t, body, "Agencia Valencia Centro")
	assert.Contains(t, body, "Cita_BBVA_apt-1.pdf")

	bank, err := Render(notification(domain.NotificationBank))
	require.NoError(t, err)
	assert.Contains(t, bank, "Nueva Cita Agendada")
	assert.NotContains(t, bank, "Estimado/a")
}

func TestMailer_SendConfirmation(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", "ana@mail.com", "Confirmación de cita BBVA", mock.AnythingOfType("string")).Return(nil).Once()
	sender.On("Send", "ana@mail.com", "Confirmación de cita BBVA", mock.AnythingOfType("string")).Return(errors.New("421 try later")).Once()

	m := New(sender, nopLogger{})

	require.NoError(t, m.SendConfirmation(context.Background(), notification(domain.NotificationClient)))
	assert.ErrorIs(t, m.SendConfirmation(context.Background(), notification(domain.NotificationClient)), ErrSend)
	sender.AssertExpectations(t)
}

func TestMailer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(&mockSender{}, nopLogger{})
	assert.ErrorIs(t, m.SendConfirmation(ctx, notification(domain.NotificationClient)), context.Canceled)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("from@bbva.com", "to@mail.com", "Asunto", "<p>hola</p>")

	assert.Contains(t, msg, "From: from@bbva.com\r\n")
	assert.Contains(t, msg, "To: to@mail.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n\r\n<p>hola</p>")
}
