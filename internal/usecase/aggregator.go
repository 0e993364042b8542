// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"github.com/naka-gawa/github-contrib/internal/domain"
	"github.com/naka-gawa/github-contrib/internal/gateway"
)

// Aggregator is the use case for collecting one user's contributions within
// one organization. It orchestrates the organization lookup, the paginated
// fetch, and the normalization into report-ready records.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate performs the main business logic. The two fetches run strictly
// in sequence because the contributions query cannot start without the
// organization ID.
func (a *Aggregator) Aggregate(ctx context.Context, username, organization string) ([]domain.Contribution, error) {
	a.logger.Println("Usecase: Starting contribution aggregation...")

	orgID, err := a.fetcher.FetchOrganizationID(ctx, organization)
	if err != nil {
		return nil, err
	}

	aggregate, err := a.fetcher.FetchContributions(ctx, username, orgID)
	if err != nil {
		return nil, err
	}
	a.logger.Println("Usecase: All contribution data fetched successfully.")

	contributions, err := Normalize(aggregate)
	if err != nil {
		return nil, err
	}

	a.logger.Println("Usecase: Aggregation complete.")
	return contributions, nil
}
