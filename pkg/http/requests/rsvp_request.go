package requests

import (
	"fmt"
	"strings"
)

const maxGuests = 10

// RSVPRequest is the guest-facing form payload.
type RSVPRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Attending bool     `json:"attending"`
	Guests    []string `json:"guests"`
	Dietary   string   `json:"dietary"`
	Message   string   `json:"message"`
	Locale    string   `json:"locale"`
}

func (r *RSVPRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return fmt.Errorf("Name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("Email is required")
	}
	at := strings.IndexByte(r.Email, '@')
	if at <= 0 || at == len(r.Email)-1 || !strings.Contains(r.Email[at+1:], ".") {
		return fmt.Errorf("Email is not valid")
	}
	if len(r.Guests) > maxGuests {
		return fmt.Errorf("Too many guests")
	}
	for i, guest := range r.Guests {
		r.Guests[i] = strings.TrimSpace(guest)
		if r.Guests[i] == "" {
			return fmt.Errorf("Guest names cannot be empty")
		}
	}
	return nil
}
