// Package testutil builds an in-memory database with the full schema and
// seeds the records most service tests start from.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
	"rental-marketplace-be/internal/repository/implementation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database. It is limited to one
// connection, so code under test must not query outside an open transaction.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, role entity.UserRole, name string) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		FullName: name,
		Role:     role,
	}
	require.NoError(t, implementation.NewUserRepository(db).Create(context.Background(), user))
	return user
}

type RoomOptions struct {
	Capacity        int
	MonthlyRent     int64
	Deposit         int64
	ElectricityRate int64
	WaterRate       int64
	InternetFee     int64
	ServiceFee      int64
}

func DefaultRoom() RoomOptions {
	return RoomOptions{
		Capacity:        2,
		MonthlyRent:     3_000_000,
		Deposit:         3_000_000,
		ElectricityRate: 3_500,
		WaterRate:       20_000,
		InternetFee:     100_000,
	}
}

func SeedRoom(t *testing.T, db *gorm.DB, landlordId uuid.UUID, opts RoomOptions) *entity.Room {
	t.Helper()
	ctx := context.Background()
	repo := implementation.NewRoomRepository(db)

	acc := &entity.Accommodation{LandlordId: landlordId, Name: "Sunrise House", Address: "12 Nguyen Trai", City: "Ho Chi Minh"}
	require.NoError(t, repo.CreateAccommodation(ctx, acc))

	room := &entity.Room{
		AccommodationId: acc.Id,
		LandlordId:      landlordId,
		Title:           "Room 101",
		Capacity:        opts.Capacity,
		MonthlyRent:     opts.MonthlyRent,
		Deposit:         opts.Deposit,
		ElectricityRate: opts.ElectricityRate,
		WaterRate:       opts.WaterRate,
		InternetFee:     opts.InternetFee,
		ServiceFee:      opts.ServiceFee,
		IsAvailable:     true,
	}
	require.NoError(t, repo.Create(ctx, room))
	return room
}

func SeedRentalRequest(t *testing.T, db *gorm.DB, tenantId uuid.UUID, room *entity.Room, status entity.RentalRequestStatus) *entity.RentalRequest {
	t.Helper()
	req := &entity.RentalRequest{
		TenantId:          tenantId,
		RoomId:            room.Id,
		LandlordId:        room.LandlordId,
		ProposedStartDate: time.Now().AddDate(0, 0, 14),
		GuestCount:        1,
		Status:            status,
	}
	require.NoError(t, implementation.NewRentalRequestRepository(db).Create(context.Background(), req))
	return req
}

// SeedAgreement stores an agreement for req with the room's prices.
func SeedAgreement(t *testing.T, db *gorm.DB, req *entity.RentalRequest, room *entity.Room, status entity.AgreementStatus, expiresAt time.Time) *entity.AgreementConfirmation {
	t.Helper()
	agreement := &entity.AgreementConfirmation{
		RentalRequestId: req.Id,
		TenantId:        req.TenantId,
		LandlordId:      req.LandlordId,
		RoomId:          room.Id,
		Token:           strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		Terms: entity.AgreementTerms{
			StartDate:       req.ProposedStartDate,
			MonthlyRent:     room.MonthlyRent,
			Deposit:         room.Deposit,
			ElectricityRate: room.ElectricityRate,
			WaterRate:       room.WaterRate,
		},
		Status:          status,
		SignatureStatus: entity.SignaturePending,
		PaymentStatus:   entity.AgreementPaymentPending,
		ExpiresAt:       expiresAt,
	}
	require.NoError(t, implementation.NewAgreementRepository(db).Create(context.Background(), agreement))
	require.NoError(t, implementation.NewRentalRequestRepository(db).UpdateFields(context.Background(), req.Id, map[string]interface{}{
		"agreement_confirmation_id": agreement.Id,
	}))
	return agreement
}

func SeedPayment(t *testing.T, db *gorm.DB, agreement *entity.AgreementConfirmation, method entity.PaymentMethod, status entity.PaymentStatus) *entity.Payment {
	t.Helper()
	payment := &entity.Payment{
		TenantId:                agreement.TenantId,
		LandlordId:              agreement.LandlordId,
		RoomId:                  agreement.RoomId,
		AgreementConfirmationId: agreement.Id,
		Purpose:                 entity.PaymentPurposeDeposit,
		Amount:                  agreement.Terms.Deposit,
		PaymentMethod:           method,
		Status:                  status,
		TransactionId:           "TX" + uuid.NewString()[:12],
	}
	require.NoError(t, implementation.NewPaymentRepository(db).Create(context.Background(), payment))
	return payment
}
