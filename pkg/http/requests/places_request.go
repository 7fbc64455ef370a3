package requests

import (
	"fmt"
	"strings"
)

// AutocompleteRequest asks for address predictions while a guest types.
type AutocompleteRequest struct {
	Input        string `json:"input"`
	SessionToken string `json:"sessionToken"`
}

func (r *AutocompleteRequest) Validate() error {
	r.Input = strings.TrimSpace(r.Input)
	if r.Input == "" {
		return fmt.Errorf("Input is required")
	}
	return nil
}

// ValidateAddressRequest checks a full address before the RSVP is saved.
type ValidateAddressRequest struct {
	Address string `json:"address"`
}

func (r *ValidateAddressRequest) Validate() error {
	r.Address = strings.TrimSpace(r.Address)
	if r.Address == "" {
		return fmt.Errorf("Address is required")
	}
	return nil
}
