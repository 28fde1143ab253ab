package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

type TenantOwnedBy struct {
	TenantID uuid.UUID
}

func (s TenantOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantID)
}

type LandlordOwnedBy struct {
	LandlordID uuid.UUID
}

func (s LandlordOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("landlord_id = ?", s.LandlordID)
}

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

type ByRentalRequestID struct {
	RentalRequestID uuid.UUID
}

func (s ByRentalRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rental_request_id = ?", s.RentalRequestID)
}

type ByAgreementID struct {
	AgreementID uuid.UUID
}

func (s ByAgreementID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agreement_confirmation_id = ?", s.AgreementID)
}

type ByPaymentMethod struct {
	Method string
}

func (s ByPaymentMethod) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_method = ?", s.Method)
}

type ByTransactionID struct {
	TransactionID string
}

func (s ByTransactionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_id = ?", s.TransactionID)
}

type ByDocumentID struct {
	DocumentID string
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByPayoutReference struct {
	Reference string
}

func (s ByPayoutReference) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payout_reference = ?", s.Reference)
}

// ExpiringBefore matches rows whose expires_at is at or before the given time.
type ExpiringBefore struct {
	Time time.Time
}

func (s ExpiringBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.Time)
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
type ForUpdate struct{}

func (s ForUpdate) Apply(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
