package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase puts a small starter inventory in an empty database so a
// fresh install has something to search against.
func SeedDatabase() {
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		return
	}

	rooms := []models.Room{
		{Name: "Standard Twin", RoomNumber: "101", Floor: "1", Price: 1000, MaxOccupancy: 2, Active: true},
		{Name: "Standard Double", RoomNumber: "102", Floor: "1", Price: 1200, MaxOccupancy: 2, Active: true},
		{Name: "Superior", RoomNumber: "201", Floor: "2", Price: 1800, MaxOccupancy: 3, Active: true},
		{Name: "Deluxe", RoomNumber: "301", Floor: "3", Price: 2500, MaxOccupancy: 4, Active: true},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Rooms seeded")
}

// ConnectDatabase opens the configured database, runs migrations and
// seeds starter data. Set DB_DRIVER=sqlite (with SQLITE_PATH) for local
// development without a MySQL server.
func ConnectDatabase() error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	}

	var db *gorm.DB
	var err error
	if envOrDefault("DB_DRIVER", "mysql") == "sqlite" {
		path := envOrDefault("SQLITE_PATH", "hotel.db")
		db, err = gorm.Open(sqlite.Open(path), gormCfg)
	} else {
		dsn, dsnErr := resolveMySQLDSN()
		if dsnErr != nil {
			return dsnErr
		}
		db, err = gorm.Open(mysql.Open(dsn), gormCfg)
	}
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.BookingDate{},
		&models.BlockedDate{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
