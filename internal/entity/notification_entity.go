package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      string
	Title     string
	Message   string
	Data      map[string]interface{}
	IsRead    bool
	CreatedAt time.Time
}
