package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleTenant   UserRole = "tenant"
	UserRoleLandlord UserRole = "landlord"
	UserRoleAdmin    UserRole = "admin"
)

type User struct {
	Id            uuid.UUID
	Email         string
	FullName      string
	Phone         string
	Role          UserRole
	PasswordHash  string
	WalletBalance int64 // VND
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
