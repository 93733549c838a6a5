package models

import (
	"time"
)

// BookingDate holds one row per (room, night) claimed by a confirmed
// booking. The unique index on (room_id, night) is the double-booking
// guard: the insert that loses the race fails, the transaction rolls
// back, and the booking stays PENDING.
//
// No soft delete here: cancel must remove the row for real, otherwise
// the unique index would keep the night occupied forever.
type BookingDate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time

	BookingID uint      `gorm:"column:booking_id;index" json:"bookingId"`
	RoomID    uint      `gorm:"column:room_id;uniqueIndex:idx_room_night" json:"roomId"`
	Night     time.Time `gorm:"column:night;uniqueIndex:idx_room_night" json:"night"`
}
