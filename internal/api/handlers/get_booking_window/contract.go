package get_booking_window

import "time"

type Scheduler interface {
	BookingWindow() time.Time
}
