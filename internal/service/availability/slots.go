package availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CountActive считает записи, занимающие лимит агентства на дату
func CountActive(appointments []*domain.Appointment) int {
	count := 0
	for _, a := range appointments {
		if a.IsActive() {
			count++
		}
	}
	return count
}

// HasCapacity возвращает true, если лимит агентства на дату не исчерпан
func HasCapacity(params *domain.AgencyParameters, appointments []*domain.Appointment) bool {
	return CountActive(appointments) < params.MaxAppointmentsPerDay
}

// FreeHours возвращает часы агентства, не занятые активными записями.
// Порядок совпадает с настроенным. appointments должны относиться к одному агентству и дате
func FreeHours(params *domain.AgencyParameters, appointments []*domain.Appointment) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(appointments))
	for _, a := range appointments {
		if a.IsActive() {
			taken[a.Hour] = struct{}{}
		}
	}

	free := make([]types.TimeString, 0, len(params.AvailableHours))
	for _, h := range params.AvailableHours {
		if _, ok := taken[h]; !ok {
			free = append(free, h)
		}
	}
	return free
}

// IsHourFree проверяет, что час входит в расписание и не занят
func IsHourFree(params *domain.AgencyParameters, appointments []*domain.Appointment, hour types.TimeString) bool {
	if !params.HasHour(hour) {
		return false
	}
	for _, a := range appointments {
		if a.IsActive() && a.Hour == hour {
			return false
		}
	}
	return true
}

// groupByAgency раскладывает записи по агентствам
func groupByAgency(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	grouped := make(map[string][]*domain.Appointment)
	for _, a := range appointments {
		grouped[a.AgencyID] = append(grouped[a.AgencyID], a)
	}
	return grouped
}
