package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mercury-homes/lead-funnel/internal/api/metrics"
	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
)

// IdempotencyStore abstracts the short-lived reservation of Idempotency-Keys (Redis).
type IdempotencyStore interface {
	// Reserve claims key for a new submission. When the key is already taken,
	// reserved is false and existingID holds the stored application ID, or is
	// empty while the first request is still in flight.
	Reserve(ctx context.Context, kind domain.Kind, key string) (existingID string, reserved bool, err error)
	Complete(ctx context.Context, kind domain.Kind, key, id string) error
	Release(ctx context.Context, kind domain.Kind, key string) error
}

// AlertQueue accepts lead alerts for asynchronous delivery.
type AlertQueue interface {
	Enqueue(alert domain.LeadAlert)
}

type ApplicationService struct {
	renters   ports.RenterRepository
	landlords ports.LandlordRepository
	idem      IdempotencyStore
	alerts    AlertQueue
	logger    zerolog.Logger
}

// NewApplicationService wires the funnel use cases. idem and alerts may be nil.
func NewApplicationService(
	renters ports.RenterRepository,
	landlords ports.LandlordRepository,
	idem IdempotencyStore,
	alerts AlertQueue,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		renters:   renters,
		landlords: landlords,
		idem:      idem,
		alerts:    alerts,
		logger:    logger,
	}
}

// SubmitRenter stores a renter inquiry. A repeated Idempotency-Key returns
// the first record instead of creating another one.
func (s *ApplicationService) SubmitRenter(ctx context.Context, in ports.SubmitRenterInput) (*ports.SubmissionResult, error) {
	replay := func(ctx context.Context) (*ports.SubmissionResult, error) {
		existing, err := s.renters.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		return &ports.SubmissionResult{ID: existing.ID, CreatedAt: existing.CreatedAt, AlreadyExisted: true}, nil
	}

	create := func(ctx context.Context) (*ports.SubmissionResult, error) {
		app := &domain.RenterApplication{
			FullName:       in.FullName,
			Phone:          in.Phone,
			Location:       in.Location,
			BudgetRange:    in.BudgetRange,
			Requirements:   domain.OptionalText(in.Requirements),
			IdempotencyKey: in.IdempotencyKey,
		}
		if err := s.renters.Create(ctx, app); err != nil {
			return nil, err
		}
		s.enqueue(domain.NewRenterAlert(app))
		return &ports.SubmissionResult{ID: app.ID, CreatedAt: app.CreatedAt}, nil
	}

	return s.submit(ctx, domain.KindRenter, in.IdempotencyKey, replay, create)
}

// SubmitLandlord stores a landlord inquiry with the same idempotency rules
// as SubmitRenter.
func (s *ApplicationService) SubmitLandlord(ctx context.Context, in ports.SubmitLandlordInput) (*ports.SubmissionResult, error) {
	replay := func(ctx context.Context) (*ports.SubmissionResult, error) {
		existing, err := s.landlords.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		return &ports.SubmissionResult{ID: existing.ID, CreatedAt: existing.CreatedAt, AlreadyExisted: true}, nil
	}

	create := func(ctx context.Context) (*ports.SubmissionResult, error) {
		app := &domain.LandlordApplication{
			FullName:       in.FullName,
			Phone:          in.Phone,
			PropertyType:   in.PropertyType,
			Location:       in.Location,
			Message:        domain.OptionalText(in.Message),
			IdempotencyKey: in.IdempotencyKey,
		}
		if err := s.landlords.Create(ctx, app); err != nil {
			return nil, err
		}
		s.enqueue(domain.NewLandlordAlert(app))
		return &ports.SubmissionResult{ID: app.ID, CreatedAt: app.CreatedAt}, nil
	}

	return s.submit(ctx, domain.KindLandlord, in.IdempotencyKey, replay, create)
}

// ListRenters returns every renter application, newest first.
func (s *ApplicationService) ListRenters(ctx context.Context) ([]*domain.RenterApplication, error) {
	apps, err := s.renters.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list renter applications")
		return nil, fmt.Errorf("list renters: %w", err)
	}
	return apps, nil
}

// ListLandlords returns every landlord application, newest first.
func (s *ApplicationService) ListLandlords(ctx context.Context) ([]*domain.LandlordApplication, error) {
	apps, err := s.landlords.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list landlord applications")
		return nil, fmt.Errorf("list landlords: %w", err)
	}
	return apps, nil
}

type submitFunc func(ctx context.Context) (*ports.SubmissionResult, error)

// submit runs the idempotency protocol shared by both kinds:
//  1. a record already stored under key is replayed,
//  2. otherwise key is reserved so a concurrent duplicate gets ErrSubmissionInFlight,
//  3. the reservation is released when the insert fails so the user can retry.
func (s *ApplicationService) submit(ctx context.Context, kind domain.Kind, key string, replay, create submitFunc) (*ports.SubmissionResult, error) {
	log := s.logger.With().Str("kind", string(kind)).Logger()

	if key == "" {
		return s.create(ctx, kind, create, log)
	}
	log = log.With().Str("idempotency_key", key).Logger()

	if res, err := replay(ctx); err == nil {
		log.Info().Str("id", res.ID).Msg("idempotent replay")
		metrics.ApplicationsReplayedTotal.WithLabelValues(string(kind)).Inc()
		return res, nil
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		log.Warn().Err(err).Msg("idempotency lookup failed, continuing")
	}

	reserved := false
	if s.idem != nil {
		existingID, ok, err := s.idem.Reserve(ctx, kind, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("idempotency reservation failed, continuing without it")
		case !ok && existingID == "":
			return nil, domain.ErrSubmissionInFlight
		case !ok:
			// Reservation finished but the record lookup above missed it;
			// trust the reservation.
			log.Info().Str("id", existingID).Msg("idempotent replay from reservation")
			metrics.ApplicationsReplayedTotal.WithLabelValues(string(kind)).Inc()
			return &ports.SubmissionResult{ID: existingID, AlreadyExisted: true}, nil
		default:
			reserved = true
		}
	}

	res, err := s.create(ctx, kind, create, log)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			// Lost a race on the unique index: the other request won.
			if prev, rerr := replay(ctx); rerr == nil {
				metrics.ApplicationsReplayedTotal.WithLabelValues(string(kind)).Inc()
				return prev, nil
			}
		}
		if reserved {
			if rerr := s.idem.Release(ctx, kind, key); rerr != nil {
				log.Warn().Err(rerr).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if reserved {
		if cerr := s.idem.Complete(ctx, kind, key, res.ID); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to complete idempotency key")
		}
	}
	return res, nil
}

func (s *ApplicationService) create(ctx context.Context, kind domain.Kind, create submitFunc, log zerolog.Logger) (*ports.SubmissionResult, error) {
	res, err := create(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create application")
		return nil, fmt.Errorf("create %s application: %w", kind, err)
	}
	metrics.ApplicationsCreatedTotal.WithLabelValues(string(kind)).Inc()
	log.Info().Str("id", res.ID).Msg("application created")
	return res, nil
}

func (s *ApplicationService) enqueue(alert domain.LeadAlert) {
	if s.alerts == nil {
		return
	}
	s.alerts.Enqueue(alert)
}
