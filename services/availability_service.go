package services

import (
	"fmt"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers read-only availability questions. Its
// results are advisory: they are stale the instant they return, and the
// unique (room, night) index checked inside BookingService.Confirm is
// what actually prevents double booking.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindAvailableRooms returns active rooms sleeping at least minCapacity
// guests with no occupancy row and no admin block on any night of
// [checkIn, checkOut). Cheapest first; equal prices keep id order.
func (s *AvailabilityService) FindAvailableRooms(checkIn, checkOut time.Time, minCapacity int) ([]models.Room, error) {
	nights := utils.NightsBetween(checkIn, checkOut)
	if len(nights) == 0 {
		return nil, ErrInvalidDateRange
	}

	var rooms []models.Room
	err := s.DB.
		Where("active = ?", true).
		Where("max_occupancy >= ?", minCapacity).
		Where("NOT EXISTS (SELECT 1 FROM booking_dates bd WHERE bd.room_id = rooms.id AND bd.night IN ?)", nights).
		Where("NOT EXISTS (SELECT 1 FROM blocked_dates bl WHERE bl.room_id = rooms.id AND bl.night IN ?)", nights).
		Order("price ASC, id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	return rooms, nil
}

// IsRoomAvailable reports whether no night of the stay is claimed by an
// occupancy row or an admin block. Callers must not treat a true result
// as a reservation; Confirm re-derives truth from the unique index.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	nights := utils.NightsBetween(checkIn, checkOut)
	if len(nights) == 0 {
		return false, ErrInvalidDateRange
	}
	return roomFreeForNights(s.DB, roomID, nights)
}

// roomFreeForNights runs the two conflict counts on the given handle so
// BookingService can reuse it inside a transaction.
func roomFreeForNights(db *gorm.DB, roomID uint, nights []time.Time) (bool, error) {
	var booked int64
	if err := db.Model(&models.BookingDate{}).
		Where("room_id = ? AND night IN ?", roomID, nights).
		Count(&booked).Error; err != nil {
		return false, fmt.Errorf("failed to count occupancy rows: %w", err)
	}
	if booked > 0 {
		return false, nil
	}

	var blocked int64
	if err := db.Model(&models.BlockedDate{}).
		Where("room_id = ? AND night IN ?", roomID, nights).
		Count(&blocked).Error; err != nil {
		return false, fmt.Errorf("failed to count blocked rows: %w", err)
	}
	return blocked == 0, nil
}
