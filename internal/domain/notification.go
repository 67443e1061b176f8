package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// NotificationKind адресат письма-подтверждения
type NotificationKind string

const (
	NotificationClient NotificationKind = "client" // Письмо заявителю
	NotificationBank   NotificationKind = "bank"   // Письмо в отдел записи банка
)

// Notification описание письма о созданной записи
type Notification struct {
	Kind      NotificationKind
	Recipient string
	Subject   string

	AppointmentID string
	ClientName    string
	ClientEmail   string
	Date          string // YYYY-MM-DD
	Hour          types.TimeString
	AgencyName    string
	AgencyAddress string
	PdfURL        string
}
