package mailer

import "errors"

var (
	// ErrRender возвращается при ошибке сборки письма
	ErrRender = errors.New("mailer: failed to render template")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("mailer: failed to send email")
)
