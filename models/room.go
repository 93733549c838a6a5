package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Active       bool    `json:"active" gorm:"column:active;default:true"`
	Description  string  `json:"description" gorm:"type:text"`
}
