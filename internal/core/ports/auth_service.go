package ports

import (
	"context"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

type AuthService interface {
	EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
