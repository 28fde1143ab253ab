package entity

import (
	"time"

	"github.com/google/uuid"
)

type Accommodation struct {
	Id         uuid.UUID
	LandlordId uuid.UUID
	Name       string
	Address    string
	City       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Room struct {
	Id              uuid.UUID
	AccommodationId uuid.UUID
	LandlordId      uuid.UUID
	Title           string
	Capacity        int
	MonthlyRent     int64
	Deposit         int64
	ElectricityRate int64 // per kWh
	WaterRate       int64 // per m3
	InternetFee     int64
	ServiceFee      int64
	IsAvailable     bool
	CurrentTenantId *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
