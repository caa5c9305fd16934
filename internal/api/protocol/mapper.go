package protocol

import (
	"time"

	"gamehub/internal/domain"
)

func UserToView(u *domain.User) UserView {
	return UserView{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}
}

func GameToView(g *domain.Game) GameView {
	return GameView{
		GameID:    g.ID,
		Title:     g.Title,
		Stock:     g.Stock,
		Available: g.Available,
	}
}

func RentalToView(r *domain.Rental) RentalView {
	view := RentalView{
		RentalID:   r.ID,
		UserID:     r.UserID,
		GameID:     r.GameID,
		Returned:   r.Returned,
		RentalDate: r.RentalDate.Format(time.RFC3339),
		DueDate:    r.DueDate.Format(time.RFC3339),
		LateFee:    r.LateFee,
	}
	if r.ReturnDate != nil {
		view.ReturnDate = r.ReturnDate.Format(time.RFC3339)
	}
	return view
}

// DashboardToViews converts a ledger snapshot into the wire sequences,
// preserving creation order.
func DashboardToViews(d *domain.Dashboard) ([]UserView, []GameView, []RentalView) {
	users := make([]UserView, 0, len(d.Users))
	for i := range d.Users {
		users = append(users, UserToView(&d.Users[i]))
	}
	games := make([]GameView, 0, len(d.Games))
	for i := range d.Games {
		games = append(games, GameToView(&d.Games[i]))
	}
	rentals := make([]RentalView, 0, len(d.Rentals))
	for i := range d.Rentals {
		rentals = append(rentals, RentalToView(&d.Rentals[i]))
	}
	return users, games, rentals
}
