package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AgreementConfirmation struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RentalRequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantId        uuid.UUID `gorm:"type:uuid;not null;index"`
	LandlordId      uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Token           string    `gorm:"type:varchar(128);uniqueIndex;not null"`

	// Terms snapshot
	StartDate       time.Time `gorm:"not null"`
	EndDate         *time.Time
	MonthlyRent     int64          `gorm:"not null"`
	Deposit         int64          `gorm:"not null"`
	ElectricityRate int64          `gorm:"not null;default:0"`
	WaterRate       int64          `gorm:"not null;default:0"`
	AdditionalFees  datatypes.JSON `gorm:"type:jsonb"`
	Notes           string         `gorm:"type:text"`

	Status          string `gorm:"type:varchar(20);not null;default:'pending';index:idx_agreement_status_expiry,priority:1"`
	SignatureStatus string `gorm:"type:varchar(30);not null;default:'pending';index"`
	PaymentStatus   string `gorm:"type:varchar(20);not null;default:'pending'"`
	RejectionReason string `gorm:"type:text"`
	DocumentId      string `gorm:"type:varchar(255);index"`
	SignedDocument  string `gorm:"type:text"`

	ExpiresAt       time.Time `gorm:"not null;index:idx_agreement_status_expiry,priority:2"`
	ConfirmedAt     *time.Time
	RejectedAt      *time.Time
	SignatureSentAt *time.Time
	SignedAt        *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (AgreementConfirmation) TableName() string {
	return "agreement_confirmations"
}
