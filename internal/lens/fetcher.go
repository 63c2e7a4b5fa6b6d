package lens

import (
	"context"

	"lensoracle/internal/domain"
)

// Fetcher retrieves the stats of one Lens profile. settings is the free-form
// value configured for the oracle job; implementations may use it to select
// the API endpoint.
type Fetcher interface {
	FetchStats(ctx context.Context, settings, profileID string) (*domain.Stats, error)
}
