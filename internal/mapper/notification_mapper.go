package mapper

import (
	"encoding/json"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	var data map[string]interface{}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &data)
	}
	return &entity.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Type:      n.TypeCode,
		Title:     n.Title,
		Message:   n.Message,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	var metadata datatypes.JSON
	if len(n.Data) > 0 {
		if raw, err := json.Marshal(n.Data); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		TypeCode:  n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(models []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
