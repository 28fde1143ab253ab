package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accommodation struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	LandlordId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Address    string         `gorm:"type:text"`
	City       string         `gorm:"type:varchar(100);index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}

type Room struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccommodationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	LandlordId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title           string         `gorm:"type:varchar(255);not null"`
	Capacity        int            `gorm:"not null;default:1"`
	MonthlyRent     int64          `gorm:"not null"`
	Deposit         int64          `gorm:"not null;default:0"`
	ElectricityRate int64          `gorm:"not null;default:0"`
	WaterRate       int64          `gorm:"not null;default:0"`
	InternetFee     int64          `gorm:"not null;default:0"`
	ServiceFee      int64          `gorm:"not null;default:0"`
	IsAvailable     bool           `gorm:"not null;default:true;index"`
	CurrentTenantId *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Room) TableName() string {
	return "rooms"
}
