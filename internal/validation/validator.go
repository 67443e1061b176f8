package validation

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Validator проверка входящих DTO по тегам validate
type Validator struct {
	v *validator.Validate
}

// New регистрирует теги date (YYYY-MM-DD) и clock (HH:MM или HH:MM:SS)
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse(time.DateOnly, value)
		return err == nil
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := types.NewTimeStringFromString(value)
		return err == nil
	})

	return &Validator{v: v}
}

// Struct проверяет структуру
func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// Details поле -> тег для ответа клиенту. nil, если ошибка не от валидатора
func Details(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}
	return details
}
