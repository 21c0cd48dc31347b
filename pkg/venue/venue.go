package venue

import (
	"fmt"
	"regexp"
	"time"

	"github.com/venuecal/venuecal/internal/apperr"
)

var ErrVenueNotFound = fmt.Errorf("venue %w", apperr.ErrNotFound)
var ErrVenueCodeTaken = fmt.Errorf("venue code already in use: %w", apperr.ErrConflict)

var errNameRequired = apperr.Invalid("name", "is required")

// Venue is a tenant. Everything else (configuration, options, events) belongs to exactly one venue.
type Venue struct {
	Id               int
	Code             string
	Name             string
	GoogleCalendarId string
	CreatedAt        time.Time
}

var codePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,39}$`)

func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return apperr.Invalid("code", "must be 2-40 lowercase letters, digits or dashes")
	}
	return nil
}
