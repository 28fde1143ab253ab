package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID gives new rows an application-side UUID so inserts do not depend
// on database-specific defaults.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *Accommodation) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *Room) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *RentalRequest) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *AgreementConfirmation) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *TenancyAgreement) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

func (m *Notification) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.Id)
	return nil
}

// All lists every table, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Accommodation{},
		&Room{},
		&RentalRequest{},
		&AgreementConfirmation{},
		&Payment{},
		&TenancyAgreement{},
		&WithdrawalRequest{},
		&WalletTransaction{},
		&Notification{},
	}
}
