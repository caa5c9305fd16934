// Package http serves the HTML dashboard: a read view over the ledger
// snapshot plus forms for creating and returning rentals. It consumes the
// same Hub operations as the TCP dispatcher and adds no contract of its own.
package http

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gamehub/internal/logger"
	"gamehub/internal/service"
)

const dashboardTemplate = `<!doctype html>
<title>GameHub</title>
<h1>GameHub</h1>

<h2>Create Rental</h2>
<form method="post" action="/create_rental">
  User:
  <select name="user_id">
    {{range .Users}}<option value="{{.ID}}">{{.Name}} (ID: {{.ID}})</option>{{end}}
  </select>
  Game:
  <select name="game_id">
    {{range .Games}}<option value="{{.ID}}">{{.Title}} (ID: {{.ID}})</option>{{end}}
  </select>
  <input type="submit" value="Create Rental">
</form>

<h2>Return Rental</h2>
<form method="post" action="/return_rental">
  Rental:
  <select name="rental_id">
    {{range .Rentals}}{{if not .Returned}}<option value="{{.ID}}">Rental {{.ID}}: User {{.UserID}} - Game {{.GameID}}</option>{{end}}{{end}}
  </select>
  <input type="submit" value="Return Rental">
</form>

<h2>Dashboard</h2>

<h3>Users</h3>
<ul>
{{range .Users}}<li>ID: {{.ID}}, Name: {{.Name}}{{if .Email}}, Email: {{.Email}}{{end}}</li>
{{end}}</ul>

<h3>Games</h3>
<ul>
{{range .Games}}<li>ID: {{.ID}}, Title: {{.Title}}, Stock: {{.Stock}}, Available: {{.Available}}</li>
{{end}}</ul>

<h3>Rentals</h3>
<ul>
{{range .Rentals}}<li>Rental ID: {{.ID}}, User ID: {{.UserID}}, Game ID: {{.GameID}}, Returned: {{.Returned}}, Late Fee: ${{.LateFee}}, Due: {{.DueDate.Format "2006-01-02"}}</li>
{{end}}</ul>
`

// DashboardHandler renders the ledger snapshot and relays the two rental
// mutations.
type DashboardHandler struct {
	rentals    service.RentalService
	dashboards service.DashboardService
	tmpl       *template.Template
}

func NewDashboardHandler(rentals service.RentalService, dashboards service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		rentals:    rentals,
		dashboards: dashboards,
		tmpl:       template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// Register mounts the dashboard routes on the router.
func (h *DashboardHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/create_rental", h.handleCreateRental).Methods(http.MethodPost)
	r.HandleFunc("/return_rental", h.handleReturnRental).Methods(http.MethodPost)
}

func (h *DashboardHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboards.Dashboard(r.Context())
	if err != nil {
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	if err := h.tmpl.Execute(w, snapshot); err != nil {
		logger.Error("failed to render dashboard", "error", err)
	}
}

func (h *DashboardHandler) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	userID, err1 := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	gameID, err2 := strconv.ParseInt(r.FormValue("game_id"), 10, 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "user_id and game_id must be numbers", http.StatusBadRequest)
		return
	}
	if _, err := h.rentals.CreateRental(r.Context(), userID, gameID); err != nil {
		logger.Warn("create rental via dashboard failed", "user_id", userID, "game_id", gameID, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *DashboardHandler) handleReturnRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := strconv.ParseInt(r.FormValue("rental_id"), 10, 64)
	if err != nil {
		http.Error(w, "rental_id must be a number", http.StatusBadRequest)
		return
	}
	if _, err := h.rentals.ReturnRental(r.Context(), rentalID); err != nil {
		logger.Warn("return rental via dashboard failed", "rental_id", rentalID, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
