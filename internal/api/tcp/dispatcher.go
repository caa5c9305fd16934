package tcp

import (
	"context"
	"errors"
	"fmt"

	"gamehub/internal/api/protocol"
	"gamehub/internal/domain"
	"gamehub/internal/service"
)

// Dispatcher maps a decoded command onto a Hub operation and folds the
// outcome into a structured response. Every ledger failure is recovered here;
// nothing a client sends can escalate past this boundary.
type Dispatcher struct {
	users      service.UserService
	inventory  service.InventoryService
	rentals    service.RentalService
	dashboards service.DashboardService
}

func NewDispatcher(users service.UserService, inventory service.InventoryService, rentals service.RentalService, dashboards service.DashboardService) *Dispatcher {
	return &Dispatcher{
		users:      users,
		inventory:  inventory,
		rentals:    rentals,
		dashboards: dashboards,
	}
}

// Dispatch executes one command and always returns a response, never an
// error: failures become tagged error responses.
func (d *Dispatcher) Dispatch(ctx context.Context, req *protocol.Request) *protocol.Response {
	switch req.Action {
	case protocol.ActionAddUser:
		return d.addUser(ctx, req)
	case protocol.ActionAddGame:
		return d.addGame(ctx, req)
	case protocol.ActionCreateRental:
		return d.createRental(ctx, req)
	case protocol.ActionReturnRental:
		return d.returnRental(ctx, req)
	case protocol.ActionDeleteUser:
		return d.deleteUser(ctx, req)
	case protocol.ActionDeleteGame:
		return d.deleteGame(ctx, req)
	case protocol.ActionUpdateStock:
		return d.updateStock(ctx, req)
	case protocol.ActionListDashboard:
		return d.listDashboard(ctx)
	default:
		return errorResponse(req, domain.ErrUnknownAction)
	}
}

func (d *Dispatcher) addUser(ctx context.Context, req *protocol.Request) *protocol.Response {
	user, err := d.users.AddUser(ctx, req.Name, req.Email)
	if err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Message: fmt.Sprintf("User '%s' added", user.Name),
		UserID:  user.ID,
	}
}

func (d *Dispatcher) addGame(ctx context.Context, req *protocol.Request) *protocol.Response {
	stock := 1
	if req.Stock != nil {
		stock = *req.Stock
	}
	game, err := d.inventory.AddGame(ctx, req.Title, stock)
	if err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Message: fmt.Sprintf("Game '%s' added", game.Title),
		GameID:  game.ID,
	}
}

func (d *Dispatcher) createRental(ctx context.Context, req *protocol.Request) *protocol.Response {
	rental, err := d.rentals.CreateRental(ctx, req.UserID, req.GameID)
	if err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:   protocol.StatusSuccess,
		Message:  "Rental created",
		RentalID: rental.ID,
	}
}

func (d *Dispatcher) returnRental(ctx context.Context, req *protocol.Request) *protocol.Response {
	rental, err := d.rentals.ReturnRental(ctx, req.RentalID)
	if err != nil {
		return errorResponse(req, err)
	}
	fee := rental.LateFee
	return &protocol.Response{
		Status:   protocol.StatusSuccess,
		Message:  fmt.Sprintf("Rental returned. Late fee: $%d", fee),
		RentalID: rental.ID,
		LateFee:  &fee,
	}
}

func (d *Dispatcher) deleteUser(ctx context.Context, req *protocol.Request) *protocol.Response {
	if err := d.users.DeleteUser(ctx, req.UserID); err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Message: fmt.Sprintf("User ID %d deleted", req.UserID),
	}
}

func (d *Dispatcher) deleteGame(ctx context.Context, req *protocol.Request) *protocol.Response {
	if err := d.inventory.DeleteGame(ctx, req.GameID); err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Message: fmt.Sprintf("Game ID %d deleted", req.GameID),
	}
}

func (d *Dispatcher) updateStock(ctx context.Context, req *protocol.Request) *protocol.Response {
	if req.Stock == nil {
		return errorResponse(req, domain.NewValidationError("stock", "stock is required"))
	}
	game, err := d.inventory.UpdateStock(ctx, req.GameID, *req.Stock)
	if err != nil {
		return errorResponse(req, err)
	}
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Message: fmt.Sprintf("Game ID %d stock updated to %d", game.ID, game.Stock),
		GameID:  game.ID,
	}
}

func (d *Dispatcher) listDashboard(ctx context.Context) *protocol.Response {
	snapshot, err := d.dashboards.Dashboard(ctx)
	if err != nil {
		return &protocol.Response{Status: protocol.StatusError, Message: err.Error()}
	}
	users, games, rentals := protocol.DashboardToViews(snapshot)
	return &protocol.Response{
		Status:  protocol.StatusSuccess,
		Users:   users,
		Games:   games,
		Rentals: rentals,
	}
}

// errorResponse translates the ledger error taxonomy into wire messages.
func errorResponse(req *protocol.Request, err error) *protocol.Response {
	resp := &protocol.Response{Status: protocol.StatusError}
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.Message = ve.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		resp.Message = fmt.Sprintf("User ID %d not found", req.UserID)
	case errors.Is(err, domain.ErrGameNotFound):
		resp.Message = fmt.Sprintf("Game ID %d not found", req.GameID)
	case errors.Is(err, domain.ErrOutOfStock):
		resp.Message = fmt.Sprintf("Game ID %d is out of stock", req.GameID)
	case errors.Is(err, domain.ErrRentalNotFound):
		resp.Message = fmt.Sprintf("Rental ID %d not found", req.RentalID)
	case errors.Is(err, domain.ErrAlreadyReturned):
		resp.Message = "Rental already returned"
	case errors.Is(err, domain.ErrUnknownAction):
		resp.Message = "Unknown action"
	default:
		resp.Message = err.Error()
	}
	return resp
}
