package services

import (
	"testing"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the production
// schema. A single connection keeps the memory database alive and
// shared across the test's transactions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.BookingDate{},
		&models.BlockedDate{},
	))
	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, number string, price float64, capacity int) models.Room {
	t.Helper()
	room := models.Room{
		Name:         "Room " + number,
		RoomNumber:   number,
		Floor:        "1",
		Price:        price,
		MaxOccupancy: capacity,
		Active:       true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

// stayDates returns an ISO check-in/check-out pair starting the given
// number of days from today.
func stayDates(daysFromNow, nights int) (string, string) {
	ci := utils.Today().AddDate(0, 0, daysFromNow)
	co := ci.AddDate(0, 0, nights)
	return ci.Format(utils.DateLayout), co.Format(utils.DateLayout)
}

func countBookingDates(t *testing.T, db *gorm.DB, bookingID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BookingDate{}).
		Where("booking_id = ?", bookingID).Count(&n).Error)
	return n
}

func parseDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}
