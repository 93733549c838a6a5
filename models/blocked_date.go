package models

import (
	"time"
)

// BlockedDate takes a (room, night) out of inventory by staff action,
// independent of any booking. It occupies the same conceptual space as
// BookingDate, so availability checks must look at both tables. Hard
// deleted on unblock so the unique index never holds stale rows.
type BlockedDate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time

	RoomID uint      `gorm:"column:room_id;uniqueIndex:idx_room_block_night" json:"roomId"`
	Night  time.Time `gorm:"column:night;uniqueIndex:idx_room_block_night" json:"night"`
	Reason string    `gorm:"column:reason;size:191" json:"reason,omitempty"`
}
