package entity

import "time"

// Availability is an admin-published (date, time slot) pair customers can book.
type Availability struct {
	BaseNoDelete
	Date        time.Time `db:"date"`
	TimeSlot    string    `db:"time_slot"`
	IsAvailable bool      `db:"is_available"`
}
