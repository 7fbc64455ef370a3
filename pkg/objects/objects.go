package objects

import (
	"github.com/oakvale/wedding-backend/pkg/contracts"
	"github.com/oakvale/wedding-backend/pkg/mailer"
	"github.com/oakvale/wedding-backend/pkg/ratelimit"
)

var (
	Config    contracts.Config
	RateStore ratelimit.Store
	Store     contracts.RSVPStorage
	Mail      *mailer.Mailer
)
