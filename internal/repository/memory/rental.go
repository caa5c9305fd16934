package memory

import (
	"gamehub/internal/domain"
	"gamehub/internal/repository"
)

type rentalRepository struct {
	ids     *IDAllocator
	rentals map[int64]domain.Rental
	order   []int64
}

func NewRentalRepository(ids *IDAllocator) repository.RentalRepository {
	return &rentalRepository{
		ids:     ids,
		rentals: make(map[int64]domain.Rental),
	}
}

func (r *rentalRepository) Create(rental *domain.Rental) error {
	rental.ID = r.ids.Next(KindRental)
	r.rentals[rental.ID] = *rental
	r.order = append(r.order, rental.ID)
	return nil
}

func (r *rentalRepository) GetByID(id int64) (*domain.Rental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, domain.ErrRentalNotFound
	}
	return &rental, nil
}

func (r *rentalRepository) List() []domain.Rental {
	out := make([]domain.Rental, 0, len(r.rentals))
	for _, id := range r.order {
		if rental, ok := r.rentals[id]; ok {
			out = append(out, rental)
		}
	}
	return out
}

func (r *rentalRepository) Update(rental *domain.Rental) error {
	if _, ok := r.rentals[rental.ID]; !ok {
		return domain.ErrRentalNotFound
	}
	r.rentals[rental.ID] = *rental
	return nil
}
