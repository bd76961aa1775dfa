// Package skipapi reads skip hire options from the remote skip listing API.
package skipapi

import (
	"context"

	"github.com/DukeRupert/skipwizard/internal/domain"
)

// Lister returns the skips available for the configured location.
//
// Implementations return a domain error with code EUNAVAILABLE for every
// failure. Callers show one generic message and never branch on the cause.
type Lister interface {
	ListSkips(ctx context.Context) ([]domain.Skip, error)
}
