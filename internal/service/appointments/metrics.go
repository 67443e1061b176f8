package appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// ComputeMetrics считает показатели по всему журналу записей на момент now
func ComputeMetrics(appointments []*domain.Appointment, now time.Time) *models.MetricsResponse {
	m := &models.MetricsResponse{
		Total:         len(appointments),
		CancelReasons: make(map[string]int),
	}

	today := domain.DateOnly(now)
	weekAgo := now.Add(-weekWindow)
	monthAgo := now.Add(-monthWindow)

	var (
		attentionTotal time.Duration
		attended       int
	)

	for _, a := range appointments {
		switch a.Status {
		case domain.StatusBooked:
			m.Booked++
		case domain.StatusProcessed:
			m.Processed++
		case domain.StatusCanceled:
			m.Canceled++
			if a.CancelReason != nil && *a.CancelReason != "" {
				m.CancelReasons[*a.CancelReason]++
			}
		case domain.StatusCompleted:
			m.Completed++
			if a.CompletedAt != nil {
				attentionTotal += a.CompletedAt.Sub(a.CreatedAt)
				attended++
			}
		}

		if a.Date.Equal(today) {
			m.Today++
		}
		if !a.CreatedAt.Before(weekAgo) {
			m.ThisWeek++
		}
		if !a.CreatedAt.Before(monthAgo) {
			m.ThisMonth++
		}
	}

	if attended > 0 {
		m.AverageAttentionMinutes = attentionTotal.Minutes() / float64(attended)
	}

	// Завершенные: прошедшие обработку или отмененные
	finished := m.Processed + m.Canceled + m.Completed
	if finished > 0 {
		m.CompletionRate = float64(m.Completed) / float64(finished) * 100
	}

	return m
}
