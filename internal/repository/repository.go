package repository

import "gamehub/internal/domain"

// The repositories below own the ledger's record collections. None of them is
// safe for concurrent use on its own: every call must happen inside the
// mutual-exclusion scope owned by service.Hub, which covers the user store,
// the game store and the rental ledger as a single domain.

type UserRepository interface {
	// Create assigns the next user id and stores the record.
	Create(user *domain.User) error
	GetByID(id int64) (*domain.User, error)
	// List returns users in creation order.
	List() []domain.User
	Delete(id int64) error
}

type GameRepository interface {
	// Create assigns the next game id, derives availability from stock and
	// stores the record.
	Create(game *domain.Game) error
	GetByID(id int64) (*domain.Game, error)
	// List returns games in creation order.
	List() []domain.Game
	// DecrementStock takes one copy off the shelf. It fails with
	// domain.ErrOutOfStock when no copies remain.
	DecrementStock(id int64) error
	// IncrementStock puts one copy back. There is no upper bound on stock.
	IncrementStock(id int64) error
	// SetStock is the administrative absolute override. Callers validate the
	// value; the repository re-derives availability.
	SetStock(id int64, stock int) error
	Delete(id int64) error
}

type RentalRepository interface {
	// Create assigns the next rental id and stores the record.
	Create(rental *domain.Rental) error
	GetByID(id int64) (*domain.Rental, error)
	// List returns rentals in creation order.
	List() []domain.Rental
	Update(rental *domain.Rental) error
}
