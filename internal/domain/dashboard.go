package domain

// Dashboard is a point-in-time snapshot of the whole ledger. The slices are
// ordered by creation and are private copies; mutating them never touches
// live store state.
type Dashboard struct {
	Users   []User   `json:"users"`
	Games   []Game   `json:"games"`
	Rentals []Rental `json:"rentals"`
}
