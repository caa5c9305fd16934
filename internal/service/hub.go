package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"gamehub/internal/domain"
	"gamehub/internal/logger"
	"gamehub/internal/repository"
	"gamehub/internal/utils"
)

// Hub is the rental ledger aggregate: the user store, the game store and the
// rental records behind a single mutex. Every exported method takes the lock
// for its whole duration, so each command is one atomic unit: no caller can
// observe stock decremented without the matching rental record, or a rental
// returned without its stock increment. The repositories themselves are not
// goroutine-safe and must never be reached except through the Hub.
type Hub struct {
	mu      sync.Mutex
	users   repository.UserRepository
	games   repository.GameRepository
	rentals repository.RentalRepository

	loanPeriod time.Duration
	feePerDay  int64
	now        func() time.Time
}

// Option configures a Hub.
type Option func(*Hub)

// WithClock overrides the time source. Tests use this to pin due dates and
// late fees.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		h.now = now
	}
}

// NewHub wires the three repositories into one mutual-exclusion domain.
// loanDays is the rental period in days, feePerDay the flat charge per full
// day past due.
func NewHub(users repository.UserRepository, games repository.GameRepository, rentals repository.RentalRepository, loanDays int, feePerDay int64, opts ...Option) *Hub {
	h := &Hub{
		users:      users,
		games:      games,
		rentals:    rentals,
		loanPeriod: time.Duration(loanDays) * 24 * time.Hour,
		feePerDay:  feePerDay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) AddUser(ctx context.Context, name, email string) (*domain.User, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if email != "" && !utils.ValidEmail(email) {
		return nil, domain.NewValidationError("email", "malformed email address")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	user := &domain.User{
		Name:      name,
		Email:     email,
		CreatedOn: h.now(),
	}
	if err := h.users.Create(user); err != nil {
		return nil, err
	}
	logger.Info("user added", "user_id", user.ID, "name", user.Name)
	return user, nil
}

func (h *Hub) DeleteUser(ctx context.Context, id int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.users.Delete(id); err != nil {
		return err
	}
	logger.Info("user deleted", "user_id", id)
	return nil
}

func (h *Hub) AddGame(ctx context.Context, title string, stock int) (*domain.Game, error) {
	if title == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if stock < 0 {
		return nil, domain.NewValidationError("stock", "stock must not be negative")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	game := &domain.Game{
		Title:     title,
		Stock:     stock,
		CreatedOn: h.now(),
	}
	if err := h.games.Create(game); err != nil {
		return nil, err
	}
	logger.Info("game added", "game_id", game.ID, "title", game.Title, "stock", game.Stock)
	return game, nil
}

func (h *Hub) UpdateStock(ctx context.Context, id int64, stock int) (*domain.Game, error) {
	if stock < 0 {
		return nil, domain.NewValidationError("stock", "stock must not be negative")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.games.SetStock(id, stock); err != nil {
		return nil, err
	}
	game, err := h.games.GetByID(id)
	if err != nil {
		return nil, err
	}
	logger.Info("game stock updated", "game_id", id, "stock", stock)
	return game, nil
}

func (h *Hub) DeleteGame(ctx context.Context, id int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.games.Delete(id); err != nil {
		return err
	}
	logger.Info("game deleted", "game_id", id)
	return nil
}

// CreateRental lends one copy of a game to a user. The existence checks, the
// stock decrement and the rental record creation happen under one lock
// acquisition, so concurrent calls against a game with one copy left yield
// exactly one success and one ErrOutOfStock.
func (h *Hub) CreateRental(ctx context.Context, userID, gameID int64) (*domain.Rental, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.users.GetByID(userID); err != nil {
		return nil, err
	}
	if _, err := h.games.GetByID(gameID); err != nil {
		return nil, err
	}
	if err := h.games.DecrementStock(gameID); err != nil {
		return nil, err
	}

	now := h.now()
	rental := &domain.Rental{
		UserID:     userID,
		GameID:     gameID,
		RentalDate: now,
		DueDate:    now.Add(h.loanPeriod),
	}
	if err := h.rentals.Create(rental); err != nil {
		return nil, err
	}
	logger.Info("rental created", "rental_id", rental.ID, "user_id", userID, "game_id", gameID, "due_date", rental.DueDate)
	return rental, nil
}

// ReturnRental transitions a rental from ACTIVE to RETURNED, computes the
// late fee and puts the copy back in stock. Exactly one of two concurrent
// returns on the same id wins; the other gets ErrAlreadyReturned. A return
// against a since-deleted game swallows the stock increment.
func (h *Hub) ReturnRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rental, err := h.rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Returned {
		return nil, domain.ErrAlreadyReturned
	}

	now := h.now()
	rental.Returned = true
	rental.ReturnDate = &now
	rental.LateFee = utils.LateFee(rental.DueDate, now, h.feePerDay)
	if err := h.rentals.Update(rental); err != nil {
		return nil, err
	}

	if err := h.games.IncrementStock(rental.GameID); err != nil {
		if !errors.Is(err, domain.ErrGameNotFound) {
			return nil, err
		}
		// The game was deleted while the copy was out. Stock reconciliation
		// for deleted games is out of scope.
		logger.Warn("returned rental references deleted game", "rental_id", rentalID, "game_id", rental.GameID)
	}
	logger.Info("rental returned", "rental_id", rentalID, "late_fee", rental.LateFee)
	return rental, nil
}

// Dashboard takes a linearized snapshot of all three stores under the lock.
// No partially applied create or return is ever visible in it.
func (h *Hub) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return &domain.Dashboard{
		Users:   h.users.List(),
		Games:   h.games.List(),
		Rentals: h.rentals.List(),
	}, nil
}
