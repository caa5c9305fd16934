package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
)

type Rental struct {
	ID       int64 `json:"rental_id"`
	UserID   int64 `json:"user_id"`
	GameID   int64 `json:"game_id"`
	Returned bool  `json:"returned"`
	// RentalDate and DueDate are fixed at creation. ReturnDate and LateFee
	// are set exactly once, together with the Returned transition.
	RentalDate time.Time  `json:"rental_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	LateFee    int64      `json:"late_fee"`
}

// Status reports the lifecycle state of the rental. The state machine has
// exactly two states: ACTIVE at creation, RETURNED after a successful return.
func (r *Rental) Status() RentalStatus {
	if r.Returned {
		return RentalStatusReturned
	}
	return RentalStatusActive
}

// Overdue reports whether an active rental is past its due date at the given
// instant. Returned rentals are never overdue.
func (r *Rental) Overdue(now time.Time) bool {
	return !r.Returned && now.After(r.DueDate)
}
