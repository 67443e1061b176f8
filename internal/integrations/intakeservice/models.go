package intakeservice

// ApplicationProgress прогресс заполнения анкеты заявителя
type ApplicationProgress struct {
	RequesterID string `json:"requesterId"`
	Progress    int    `json:"progress"` // 0..100
}

// IsComplete анкета заполнена полностью
func (p ApplicationProgress) IsComplete() bool {
	return p.Progress >= CompleteProgress
}

// ErrorResponse модель ошибки от IntakeService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
