package notifications

import "errors"

var (
	// ErrDeliveryFailed возвращается, если хотя бы одно уведомление не доставлено
	ErrDeliveryFailed = errors.New("notifications: delivery failed")
)
