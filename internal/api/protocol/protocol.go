// Package protocol defines the JSON wire format of the command server: one
// request object in, one response object out, per connection. An optional
// auth preamble precedes the request when the server runs with the
// credential gate enabled.
package protocol

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Command actions accepted by the dispatcher.
const (
	ActionAddUser       = "add_user"
	ActionAddGame       = "add_game"
	ActionCreateRental  = "create_rental"
	ActionReturnRental  = "return_rental"
	ActionDeleteUser    = "delete_user"
	ActionDeleteGame    = "delete_game"
	ActionUpdateStock   = "update_stock"
	ActionListDashboard = "list_dashboard"
)

// Response status tags.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	// StatusOK acknowledges a successful auth preamble.
	StatusOK = "ok"
)

// TypeAuth marks the auth preamble message.
const TypeAuth = "auth"

// Request is a single client command. Only the fields relevant to the action
// are set; Stock is a pointer so add_game can default it to 1 when absent.
type Request struct {
	Action string `json:"action,omitempty"`

	// Auth preamble fields.
	Type     string `json:"type,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`

	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Title    string `json:"title,omitempty"`
	Stock    *int   `json:"stock,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	GameID   int64  `json:"game_id,omitempty"`
	RentalID int64  `json:"rental_id,omitempty"`
}

// Response is the structured result of a command: a status tag, a
// human-readable message and the command-specific payload.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	Token string `json:"token,omitempty"`

	UserID   int64  `json:"user_id,omitempty"`
	GameID   int64  `json:"game_id,omitempty"`
	RentalID int64  `json:"rental_id,omitempty"`
	LateFee  *int64 `json:"late_fee,omitempty"`

	Users   []UserView   `json:"users,omitempty"`
	Games   []GameView   `json:"games,omitempty"`
	Rentals []RentalView `json:"rentals,omitempty"`
}

// UserView is the wire shape of a user record.
type UserView struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// GameView is the wire shape of a game record.
type GameView struct {
	GameID    int64  `json:"game_id"`
	Title     string `json:"title"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

// RentalView is the wire shape of a rental record. Dates are RFC 3339.
type RentalView struct {
	RentalID   int64  `json:"rental_id"`
	UserID     int64  `json:"user_id"`
	GameID     int64  `json:"game_id"`
	Returned   bool   `json:"returned"`
	RentalDate string `json:"rental_date"`
	DueDate    string `json:"due_date"`
	ReturnDate string `json:"return_date,omitempty"`
	LateFee    int64  `json:"late_fee"`
}

// NewDecoder returns a streaming decoder for the connection; the auth
// preamble and the command arrive as consecutive JSON values.
func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return json.NewDecoder(r)
}

// Write encodes a single response onto the connection.
func Write(w io.Writer, resp *Response) error {
	return json.NewEncoder(w).Encode(resp)
}

// Marshal encodes a request for a client send.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent pretty-prints a value, used by the terminal client.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes a single JSON value.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
