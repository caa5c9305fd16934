// Package memory provides the in-memory backing stores for the rental
// ledger. The ledger is purely in-memory for its lifetime; nothing here
// survives a restart.
package memory

import "gamehub/internal/repository"

// Store bundles the three repositories over one shared id allocator.
type Store struct {
	IDs     *IDAllocator
	Users   repository.UserRepository
	Games   repository.GameRepository
	Rentals repository.RentalRepository
}

func NewStore() *Store {
	ids := NewIDAllocator()
	return &Store{
		IDs:     ids,
		Users:   NewUserRepository(ids),
		Games:   NewGameRepository(ids),
		Rentals: NewRentalRepository(ids),
	}
}
