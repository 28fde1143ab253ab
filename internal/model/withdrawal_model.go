package model

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalRequest struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`
	// One open request per tenant and agreement.
	TenantId                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_withdrawal_open,where:status = 'pending' OR status = 'approved' OR status = 'processing'"`
	AgreementConfirmationId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_withdrawal_open,where:status = 'pending' OR status = 'approved' OR status = 'processing'"`
	LandlordId              uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentId               uuid.UUID `gorm:"type:uuid;not null"`
	RoomId                  uuid.UUID `gorm:"type:uuid;not null"`

	Amount          int64  `gorm:"not null"`
	DeductionAmount int64  `gorm:"not null;default:0"`
	DeductionReason string `gorm:"type:text"`
	NetAmount       int64  `gorm:"not null;default:0"`
	Reason          string `gorm:"type:text"`

	BankCode      string `gorm:"type:varchar(20);not null"`
	BankName      string `gorm:"type:varchar(100)"`
	AccountNumber string `gorm:"type:varchar(50);not null"`
	AccountHolder string `gorm:"type:varchar(255);not null"`

	Status             string `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason    string `gorm:"type:text"`
	PayoutReference    string `gorm:"type:varchar(128);index"`
	PayoutResponseCode string `gorm:"type:varchar(10)"`
	PayoutMessage      string `gorm:"type:text"`
	ApprovedAt         *time.Time
	ProcessedAt        *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
