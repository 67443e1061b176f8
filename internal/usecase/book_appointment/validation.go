package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса и нормализует час к HH:MM
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RequesterID) == "" {
		return fmt.Errorf("%w: requesterId is required", ErrInvalidInput)
	}

	if !req.ApplicantKind.IsValid() {
		return fmt.Errorf("%w: applicantKind must be natural or juridical", ErrInvalidInput)
	}

	if strings.TrimSpace(req.AgencyID) == "" {
		return fmt.Errorf("%w: agencyId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ContactEmail) == "" {
		return fmt.Errorf("%w: contactEmail is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Hour.IsZero() {
		return fmt.Errorf("%w: hour is required", ErrInvalidInput)
	}

	hour, err := types.NewTimeStringFromString(string(req.Hour))
	if err != nil {
		return fmt.Errorf("%w: invalid hour format: %v", ErrInvalidInput, err)
	}
	req.Hour = hour
	req.Date = domain.DateOnly(req.Date)

	return nil
}

// validateDate проверяет, что на дату можно записаться:
// только будни и, при enforceWindow, не раньше ближайшего рабочего дня
func validateDate(date, now time.Time, enforceWindow bool) error {
	if !domain.IsBusinessDay(date) {
		return fmt.Errorf("%w: %s", ErrNotBusinessDay, date.Format(domain.DateFormat))
	}

	if enforceWindow {
		earliest := domain.NextBusinessDay(now)
		if date.Before(earliest) {
			return fmt.Errorf("%w: earliest bookable date is %s", ErrBeforeBookingWindow, earliest.Format(domain.DateFormat))
		}
	}

	return nil
}

// recipientFor выбирает адрес банка по типу заявителя
func recipientFor(kind domain.ApplicantKind, settings Settings) string {
	if kind == domain.ApplicantJuridical {
		return settings.JuridicalRecipient
	}
	return settings.NaturalRecipient
}
