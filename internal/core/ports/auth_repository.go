package ports

import (
	"context"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// AuthRepository defines the interface for admin account persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
