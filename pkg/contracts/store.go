package contracts

import (
	"github.com/oakvale/wedding-backend/pkg/models"
)

// RSVPStorage persists guest responses. Saving the same email twice
// replaces the earlier answer.
type RSVPStorage interface {
	SaveRSVP(rsvp models.RSVP) error
	GetRSVP(email string) (models.RSVP, bool, error)
	ListRSVPs() ([]models.RSVP, error)
}
