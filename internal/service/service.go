package service

import (
	"context"

	"gamehub/internal/domain"
)

type UserService interface {
	AddUser(ctx context.Context, name, email string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type InventoryService interface {
	AddGame(ctx context.Context, title string, stock int) (*domain.Game, error)
	UpdateStock(ctx context.Context, id int64, stock int) (*domain.Game, error)
	DeleteGame(ctx context.Context, id int64) error
}

type RentalService interface {
	CreateRental(ctx context.Context, userID, gameID int64) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
}

type DashboardService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}
