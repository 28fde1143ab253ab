package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Payment struct {
	Id                      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantId                uuid.UUID      `gorm:"type:uuid;not null;index"`
	LandlordId              uuid.UUID      `gorm:"type:uuid;not null;index"`
	RoomId                  uuid.UUID      `gorm:"type:uuid;not null"`
	AgreementConfirmationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Purpose                 string         `gorm:"type:varchar(20);not null;default:'deposit'"`
	Amount                  int64          `gorm:"not null"`
	PaymentMethod           string         `gorm:"type:varchar(30);not null"`
	Status                  string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransactionId           string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExternalTransactionId   string         `gorm:"type:varchar(128)"`
	GatewayResponse         datatypes.JSON `gorm:"type:jsonb"`
	FailureReason           string         `gorm:"type:text"`
	IpAddress               string         `gorm:"type:varchar(45)"`
	PaidAt                  *time.Time
	CreatedAt               time.Time `gorm:"autoCreateTime"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
