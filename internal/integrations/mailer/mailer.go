package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Mailer собирает письма-подтверждения и передает их отправителю
type Mailer struct {
	sender Sender
	log    Logger
}

// New создает Mailer
func New(sender Sender, log Logger) *Mailer {
	return &Mailer{sender: sender, log: log}
}

// SendConfirmation отправляет одно письмо о записи
func (m *Mailer) SendConfirmation(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := Render(n)
	if err != nil {
		return err
	}

	if err := m.sender.Send(n.Recipient, n.Subject, body); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, n.Recipient, err)
	}

	m.log.Info("Mailer: %s confirmation for appointment id=%s sent to %s", n.Kind, n.AppointmentID, n.Recipient)
	return nil
}

// Render собирает HTML письма
func Render(n domain.Notification) (string, error) {
	data := confirmationData{
		ClientName:    n.ClientName,
		ClientEmail:   n.ClientEmail,
		Date:          n.Date,
		Hour:          n.Hour.String(),
		AgencyName:    n.AgencyName,
		AgencyAddress: n.AgencyAddress,
		PdfURL:        n.PdfURL,
		ForBank:       n.Kind == domain.NotificationBank,
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}
