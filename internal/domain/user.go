package domain

import "time"

type User struct {
	ID        int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
