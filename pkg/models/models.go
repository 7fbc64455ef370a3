package models

import "time"

// RSVP is one guest's answer. Email is the natural key: a guest who
// submits twice replaces their earlier answer.
type RSVP struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Attending bool      `json:"attending" db:"attending"`
	Guests    []string  `json:"guests,omitempty" db:"-"`
	Dietary   string    `json:"dietary,omitempty" db:"dietary"`
	Message   string    `json:"message,omitempty" db:"message"`
	Locale    string    `json:"locale" db:"locale"`
	ClientIP  string    `json:"-" db:"client_ip"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
