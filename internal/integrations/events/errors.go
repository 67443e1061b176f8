package events

import "errors"

var (
	// ErrPublish возвращается, если событие не удалось записать в kafka
	ErrPublish = errors.New("events: failed to publish event")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: failed to encode event")
)
