package model

import (
	"time"

	"github.com/google/uuid"
)

type WalletTransaction struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_wallet_tx_reference,priority:1"`
	Amount       int64     `gorm:"not null"`
	ReferenceId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_tx_reference,priority:2"`
	BalanceAfter int64     `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
