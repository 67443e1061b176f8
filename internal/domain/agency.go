package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidParameters возвращается при некорректной параметризации агентства
	ErrInvalidParameters = errors.New("domain: invalid agency parameters")
)

// Agency represents a bank branch that hosts appointments
type Agency struct {
	ID       string
	Name     string
	Address  string
	Region   string
	Position int // Порядок в каталоге
}

// AgencyParameters операционные лимиты агентства
type AgencyParameters struct {
	AgencyID              string
	MaxAppointmentsPerDay int
	AvailableHours        []types.TimeString // В порядке настройки, без повторов

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAgencyParameters создает параметризацию с проверкой инвариантов.
// Часы нормализуются к HH:MM, порядок сохраняется
func NewAgencyParameters(agencyID string, maxPerDay int, hours []types.TimeString) (*AgencyParameters, error) {
	if agencyID == "" {
		return nil, fmt.Errorf("%w: agency id is required", ErrInvalidParameters)
	}

	if maxPerDay < MinAppointmentsPerDay || maxPerDay > MaxAppointmentsPerDay {
		return nil, fmt.Errorf("%w: maxAppointmentsPerDay must be between %d and %d",
			ErrInvalidParameters, MinAppointmentsPerDay, MaxAppointmentsPerDay)
	}

	normalized, err := NormalizeHours(hours)
	if err != nil {
		return nil, err
	}

	return &AgencyParameters{
		AgencyID:              agencyID,
		MaxAppointmentsPerDay: maxPerDay,
		AvailableHours:        normalized,
	}, nil
}

// NormalizeHours проверяет список часов: непустой, корректный формат, без повторов
func NormalizeHours(hours []types.TimeString) ([]types.TimeString, error) {
	if len(hours) == 0 {
		return nil, fmt.Errorf("%w: availableHours must not be empty", ErrInvalidParameters)
	}

	seen := make(map[types.TimeString]struct{}, len(hours))
	normalized := make([]types.TimeString, 0, len(hours))

	for _, h := range hours {
		ts, err := types.NewTimeStringFromString(string(h))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hour %q", ErrInvalidParameters, h)
		}
		if _, dup := seen[ts]; dup {
			return nil, fmt.Errorf("%w: duplicate hour %s", ErrInvalidParameters, ts)
		}
		seen[ts] = struct{}{}
		normalized = append(normalized, ts)
	}

	return normalized, nil
}

// HasHour возвращает true, если час входит в расписание агентства
func (p *AgencyParameters) HasHour(hour types.TimeString) bool {
	for _, h := range p.AvailableHours {
		if h == hour {
			return true
		}
	}
	return false
}
