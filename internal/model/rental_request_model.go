package model

import (
	"time"

	"github.com/google/uuid"
)

type RentalRequest struct {
	Id                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantId                uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomId                  uuid.UUID `gorm:"type:uuid;not null;index"`
	LandlordId              uuid.UUID `gorm:"type:uuid;not null;index"`
	ProposedStartDate       time.Time `gorm:"not null"`
	GuestCount              int       `gorm:"not null;default:1"`
	Message                 string    `gorm:"type:text"`
	ResponseMessage         string    `gorm:"type:text"`
	Status                  string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	AcceptedAt              *time.Time
	RespondedAt             *time.Time
	AgreementConfirmationId *uuid.UUID `gorm:"type:uuid"`
	PaymentCompletedAt      *time.Time
	CreatedAt               time.Time `gorm:"autoCreateTime"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime"`
}

func (RentalRequest) TableName() string {
	return "rental_requests"
}
