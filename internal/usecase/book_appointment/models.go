package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на запись в агентство
type Request struct {
	RequesterID   string               // ID заявителя
	ApplicantKind domain.ApplicantKind // natural или juridical
	Date          time.Time            // Дата приема (без времени)
	Hour          types.TimeString     // Час из расписания агентства, например "09:30"
	AgencyID      string               // ID агентства
	ContactEmail  string               // Почта заявителя для подтверждения
	ClientName    string               // Имя для письма (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment   *domain.Appointment
	PdfURL        string
	Notifications []domain.Notification
}

// Settings политика записи и адресаты банка
type Settings struct {
	EnforceWindow      bool          // Запрещать даты раньше ближайшего рабочего дня
	NaturalRecipient   string        // Адрес банка для физических лиц
	JuridicalRecipient string        // Адрес банка для юридических лиц
	DispatchTimeout    time.Duration // Ограничение на отправку уведомлений
}
