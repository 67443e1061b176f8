package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Publisher публикует события о записях в kafka
type Publisher struct {
	writer MessageWriter
	log    Logger
}

// NewPublisher создает Publisher поверх готового writer
func NewPublisher(writer MessageWriter, log Logger) *Publisher {
	return &Publisher{writer: writer, log: log}
}

// NewWriter создает kafka writer. Ключ сообщения id записи, поэтому балансировка по хэшу
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// PublishBooked отправляет событие appointment.booked
func (p *Publisher) PublishBooked(ctx context.Context, appt *domain.Appointment) error {
	payload, err := json.Marshal(FromDomainAppointment(appt))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	eventID := uuid.NewString()
	msg := kafka.Message{
		Key:   []byte(appt.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(EventTypeAppointmentBooked)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("PublishBooked: failed to publish appointment id=%s: %v", appt.ID, err)
		return fmt.Errorf("%w: appointment id=%s: %v", ErrPublish, appt.ID, err)
	}

	p.log.Info("PublishBooked: event_id=%s published for appointment id=%s", eventID, appt.ID)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
