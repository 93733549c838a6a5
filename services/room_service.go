package services

import (
	"errors"
	"fmt"

	"hotel-booking/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrRoomNotFound
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	return s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error
}

// Delete refuses to remove a room that still has non-cancelled
// bookings; staff must cancel those first. This replaces the source
// system's unchecked cascade.
func (s *RoomService) Delete(id uint) error {
	var active int64
	if err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", id, models.BookingCancelled).
		Count(&active).Error; err != nil {
		return fmt.Errorf("failed to count bookings for room %d: %w", id, err)
	}
	if active > 0 {
		return ErrRoomHasBookings
	}

	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
