package mapper

import (
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}
	return &entity.Room{
		Id:              r.Id,
		AccommodationId: r.AccommodationId,
		LandlordId:      r.LandlordId,
		Title:           r.Title,
		Capacity:        r.Capacity,
		MonthlyRent:     r.MonthlyRent,
		Deposit:         r.Deposit,
		ElectricityRate: r.ElectricityRate,
		WaterRate:       r.WaterRate,
		InternetFee:     r.InternetFee,
		ServiceFee:      r.ServiceFee,
		IsAvailable:     r.IsAvailable,
		CurrentTenantId: r.CurrentTenantId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}
	return &model.Room{
		Id:              r.Id,
		AccommodationId: r.AccommodationId,
		LandlordId:      r.LandlordId,
		Title:           r.Title,
		Capacity:        r.Capacity,
		MonthlyRent:     r.MonthlyRent,
		Deposit:         r.Deposit,
		ElectricityRate: r.ElectricityRate,
		WaterRate:       r.WaterRate,
		InternetFee:     r.InternetFee,
		ServiceFee:      r.ServiceFee,
		IsAvailable:     r.IsAvailable,
		CurrentTenantId: r.CurrentTenantId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *RoomMapper) ToEntities(models []*model.Room) []*entity.Room {
	entities := make([]*entity.Room, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}

func (m *RoomMapper) AccommodationToEntity(a *model.Accommodation) *entity.Accommodation {
	if a == nil {
		return nil
	}
	return &entity.Accommodation{
		Id:         a.Id,
		LandlordId: a.LandlordId,
		Name:       a.Name,
		Address:    a.Address,
		City:       a.City,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (m *RoomMapper) AccommodationToModel(a *entity.Accommodation) *model.Accommodation {
	if a == nil {
		return nil
	}
	return &model.Accommodation{
		Id:         a.Id,
		LandlordId: a.LandlordId,
		Name:       a.Name,
		Address:    a.Address,
		City:       a.City,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
