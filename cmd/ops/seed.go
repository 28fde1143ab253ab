package main

import (
	"context"
	"time"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	email string
	name  string
	role  entity.UserRole
}

var seedUsers = []seedUser{
	{email: "landlord@example.com", name: "Demo Landlord", role: entity.UserRoleLandlord},
	{email: "tenant@example.com", name: "Demo Tenant", role: entity.UserRoleTenant},
	{email: "admin@example.com", name: "Demo Admin", role: entity.UserRoleAdmin},
}

func seedCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo users and a room, then print their API tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(); err != nil {
				return err
			}
			return runSeed(cmd.Context(), unitofwork.NewRepositoryFactory(e.db), e.cfg.App.JWTSecret, password)
		},
	}
	cmd.Flags().StringVar(&password, "password", "password123", "Password for every demo user")
	return cmd
}

func runSeed(ctx context.Context, factory unitofwork.RepositoryFactory, jwtSecret, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	users := make(map[entity.UserRole]*entity.User)
	for _, su := range seedUsers {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: su.email})
		if err != nil {
			return err
		}
		if user == nil {
			user = &entity.User{
				Email:        su.email,
				FullName:     su.name,
				Role:         su.role,
				PasswordHash: string(hash),
			}
			if err := uow.UserRepository().Create(ctx, user); err != nil {
				return err
			}
			color.Green("Created %s %s", su.role, su.email)
		} else {
			color.Yellow("Exists  %s %s", su.role, su.email)
		}
		users[su.role] = user
	}

	landlord := users[entity.UserRoleLandlord]
	rooms, err := uow.RoomRepository().FindAll(ctx, specification.LandlordOwnedBy{LandlordID: landlord.Id})
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		acc := &entity.Accommodation{LandlordId: landlord.Id, Name: "Sunrise House", Address: "12 Nguyen Trai", City: "Ho Chi Minh"}
		if err := uow.RoomRepository().CreateAccommodation(ctx, acc); err != nil {
			return err
		}
		room := &entity.Room{
			AccommodationId: acc.Id,
			LandlordId:      landlord.Id,
			Title:           "Room 101",
			Capacity:        2,
			MonthlyRent:     3_000_000,
			Deposit:         3_000_000,
			ElectricityRate: 3_500,
			WaterRate:       20_000,
			InternetFee:     100_000,
			IsAvailable:     true,
		}
		if err := uow.RoomRepository().Create(ctx, room); err != nil {
			return err
		}
		color.Green("Created room %s", room.Id)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	color.Cyan("\nTokens (valid 30 days)")
	exp := jwt.MapClaims{"exp": time.Now().Add(30 * 24 * time.Hour).Unix()}
	for _, su := range seedUsers {
		user := users[su.role]
		claims := jwt.MapClaims{}
		for k, v := range exp {
			claims[k] = v
		}
		token, err := serverutils.IssueToken(jwtSecret, user.Id, string(user.Role), claims)
		if err != nil {
			return err
		}
		color.White("%-9s %s", su.role, token)
	}
	return nil
}
