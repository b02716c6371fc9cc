package ports

import (
	"context"
	"time"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// SubmitRenterInput carries a renter inquiry from the transport layer.
type SubmitRenterInput struct {
	FullName       string
	Phone          string
	Location       string
	BudgetRange    string
	Requirements   string // optional; "" is stored as null
	IdempotencyKey string
}

// SubmitLandlordInput carries a landlord inquiry from the transport layer.
type SubmitLandlordInput struct {
	FullName       string
	Phone          string
	PropertyType   string
	Location       string
	Message        string // optional; "" is stored as null
	IdempotencyKey string
}

// SubmissionResult is returned after a create.
type SubmissionResult struct {
	ID        string
	CreatedAt time.Time
	// AlreadyExisted is true when the Idempotency-Key matched a stored record.
	AlreadyExisted bool
}

// ApplicationService defines the use cases behind both funnels.
type ApplicationService interface {
	SubmitRenter(ctx context.Context, input SubmitRenterInput) (*SubmissionResult, error)
	SubmitLandlord(ctx context.Context, input SubmitLandlordInput) (*SubmissionResult, error)
	ListRenters(ctx context.Context) ([]*domain.RenterApplication, error)
	ListLandlords(ctx context.Context) ([]*domain.LandlordApplication, error)
}
