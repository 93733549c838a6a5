package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
)

// BlockService manages admin blocks: rooms taken out of inventory by
// staff (maintenance, owner use) independent of any booking.
type BlockService struct {
	DB *gorm.DB
}

func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{DB: db}
}

// BlockRoom writes one BlockedDate row per night in [from, to).
// Nights already blocked for the room are skipped, not errors, so
// overlapping block requests are safe to repeat. Returns the number of
// rows actually created.
func (s *BlockService) BlockRoom(roomID uint, from, to time.Time, reason string) (int, error) {
	nights := utils.NightsBetween(from, to)
	if len(nights) == 0 {
		return 0, ErrInvalidDateRange
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, fmt.Errorf("db error checking room %d: %w", roomID, err)
	}

	created := 0
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.BlockedDate
		if err := tx.
			Where("room_id = ? AND night IN ?", roomID, nights).
			Find(&existing).Error; err != nil {
			return err
		}
		taken := make(map[time.Time]struct{}, len(existing))
		for _, b := range existing {
			taken[utils.ToDay(b.Night)] = struct{}{}
		}

		for _, night := range nights {
			if _, ok := taken[night]; ok {
				continue
			}
			row := models.BlockedDate{RoomID: roomID, Night: night, Reason: reason}
			if err := tx.Create(&row).Error; err != nil {
				// A concurrent block beat us to this night; treat it as
				// already blocked, same as the pre-read above.
				if isDuplicateKeyErr(err) {
					continue
				}
				return fmt.Errorf("failed to create blocked date: %w", err)
			}
			created++
		}
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}
	return created, nil
}

// UnblockRoom deletes the room's block rows from the given date
// forward. A zero from means "from today". Returns rows removed.
func (s *BlockService) UnblockRoom(roomID uint, from time.Time) (int64, error) {
	if from.IsZero() {
		from = utils.Today()
	} else {
		from = utils.ToDay(from)
	}

	res := s.DB.
		Where("room_id = ? AND night >= ?", roomID, from).
		Delete(&models.BlockedDate{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete blocked dates: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListBlocks returns all block rows for a room ordered by night.
func (s *BlockService) ListBlocks(roomID uint) ([]models.BlockedDate, error) {
	var blocks []models.BlockedDate
	if err := s.DB.
		Where("room_id = ?", roomID).
		Order("night ASC").
		Find(&blocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list blocked dates: %w", err)
	}
	return blocks, nil
}
