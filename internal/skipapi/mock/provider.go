package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DukeRupert/skipwizard/internal/domain"
)

// Provider is a mock skip lister for testing and development
type Provider struct {
	logger *slog.Logger

	mu sync.Mutex

	// Configurable responses for testing
	Skips []domain.Skip
	Err   error

	// Call tracking for testing
	Calls int
}

// New creates a mock provider that returns SampleSkips
func New(logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
		Skips:  SampleSkips(),
	}
}

// ListSkips returns the configured skips or error
func (p *Provider) ListSkips(ctx context.Context) ([]domain.Skip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls++

	if p.Err != nil {
		return nil, p.Err
	}

	if p.logger != nil {
		p.logger.Debug("mock skip listing", "count", len(p.Skips))
	}

	out := make([]domain.Skip, len(p.Skips))
	copy(out, p.Skips)
	return out, nil
}

// SampleSkips returns a small listing shaped like the live API response for
// postcode NR32.
func SampleSkips() []domain.Skip {
	return []domain.Skip{
		{ID: 17933, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 278, VAT: 20, AllowedOnRoad: true, Postcode: "NR32"},
		{ID: 17934, Size: 6, HirePeriodDays: 14, PriceBeforeVAT: 305, VAT: 20, AllowedOnRoad: true, Postcode: "NR32"},
		{ID: 17935, Size: 8, HirePeriodDays: 14, PriceBeforeVAT: 375, VAT: 20, AllowedOnRoad: true, Postcode: "NR32"},
		{ID: 17936, Size: 10, HirePeriodDays: 14, PriceBeforeVAT: 400, VAT: 20, AllowedOnRoad: false, Postcode: "NR32"},
		{ID: 17937, Size: 12, HirePeriodDays: 14, PriceBeforeVAT: 439, VAT: 20, AllowedOnRoad: false, Postcode: "NR32"},
		{ID: 17938, Size: 14, HirePeriodDays: 14, PriceBeforeVAT: 470, VAT: 20, AllowedOnRoad: false, Postcode: "NR32"},
		{ID: 17939, Size: 16, HirePeriodDays: 14, PriceBeforeVAT: 496, VAT: 20, AllowedOnRoad: false, Postcode: "NR32"},
		{ID: 15124, Size: 20, HirePeriodDays: 14, PriceBeforeVAT: 992, VAT: 20, AllowedOnRoad: false, AllowsHeavyWaste: true, Postcode: "NR32"},
		{ID: 15125, Size: 40, HirePeriodDays: 14, PriceBeforeVAT: 992, VAT: 20, AllowedOnRoad: false, Postcode: "NR32"},
	}
}
