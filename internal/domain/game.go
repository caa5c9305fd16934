package domain

import "time"

type Game struct {
	ID    int64  `json:"game_id"`
	Title string `json:"title"`
	Stock int    `json:"stock"`
	// Available is derived from Stock on every mutation and is never
	// accepted as external input.
	Available bool      `json:"available"`
	CreatedOn time.Time `json:"created_on"`
}
