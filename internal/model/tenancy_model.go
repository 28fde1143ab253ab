package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TenancyAgreement struct {
	Id                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgreementConfirmationId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PaymentId               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TenantId                uuid.UUID `gorm:"type:uuid;not null;index"`
	LandlordId              uuid.UUID `gorm:"type:uuid;not null;index"`
	// At most one active tenancy per room.
	RoomId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenancy_active_room,where:status = 'active'"`

	StartDate       time.Time `gorm:"not null"`
	EndDate         *time.Time
	MonthlyRent     int64          `gorm:"not null"`
	Deposit         int64          `gorm:"not null"`
	ElectricityRate int64          `gorm:"not null;default:0"`
	WaterRate       int64          `gorm:"not null;default:0"`
	AdditionalFees  datatypes.JSON `gorm:"type:jsonb"`
	Notes           string         `gorm:"type:text"`

	DocumentId     string `gorm:"type:varchar(255)"`
	SignedDocument string `gorm:"type:text"`
	Status         string `gorm:"type:varchar(20);not null;default:'active'"`
	SignedAt       time.Time
	EndedAt        *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (TenancyAgreement) TableName() string {
	return "tenancy_agreements"
}
