package ports

import (
	"context"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// RenterRepository persists renter applications. Create assigns ID and
// CreatedAt on the passed record. List returns records newest first.
type RenterRepository interface {
	Create(ctx context.Context, app *domain.RenterApplication) error
	List(ctx context.Context) ([]*domain.RenterApplication, error)
	// FindByIdempotencyKey returns domain.ErrApplicationNotFound when no
	// record was stored under key.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.RenterApplication, error)
}

// LandlordRepository persists landlord applications with the same contract
// as RenterRepository.
type LandlordRepository interface {
	Create(ctx context.Context, app *domain.LandlordApplication) error
	List(ctx context.Context) ([]*domain.LandlordApplication, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.LandlordApplication, error)
}
