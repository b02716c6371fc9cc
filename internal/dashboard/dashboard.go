// Package dashboard assembles the staff view of incoming applications: both
// lists, their load state and the headline counts.
package dashboard

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// Lister fetches the full application lists.
type Lister interface {
	ListRenters(ctx context.Context) ([]*domain.RenterApplication, error)
	ListLandlords(ctx context.Context) ([]*domain.LandlordApplication, error)
}

// State tells an empty list apart from one that could not be loaded.
type State int

const (
	StateLoaded State = iota
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Section is one list on the dashboard.
type Section[T any] struct {
	Items []T
	State State
	Err   error
}

func newSection[T any](items []T, err error) Section[T] {
	switch {
	case err != nil:
		return Section[T]{State: StateFailed, Err: err}
	case len(items) == 0:
		return Section[T]{Items: []T{}, State: StateEmpty}
	default:
		return Section[T]{Items: items, State: StateLoaded}
	}
}

// Snapshot is one refresh of the dashboard.
type Snapshot struct {
	Renters   Section[*domain.RenterApplication]
	Landlords Section[*domain.LandlordApplication]
	Summary   Summary
	FetchedAt time.Time
}

// Fetch loads both lists concurrently and waits for both. A failed list
// does not affect the other one; counts are computed over what loaded.
func Fetch(ctx context.Context, l Lister, now time.Time) Snapshot {
	var (
		renters    []*domain.RenterApplication
		landlords  []*domain.LandlordApplication
		rErr, lErr error
		wg         conc.WaitGroup
	)

	wg.Go(func() { renters, rErr = l.ListRenters(ctx) })
	wg.Go(func() { landlords, lErr = l.ListLandlords(ctx) })
	wg.Wait()

	snap := Snapshot{
		Renters:   newSection(renters, rErr),
		Landlords: newSection(landlords, lErr),
		FetchedAt: now,
	}
	snap.Summary = Summarize(snap.Renters.Items, snap.Landlords.Items, now)
	return snap
}

// Summary holds the headline counts.
type Summary struct {
	HouseSeekers   int `json:"houseSeekers"`
	PropertyOwners int `json:"propertyOwners"`
	Today          int `json:"today"`
	ToContact      int `json:"toContact"`
}

// Summarize counts applications. Today means the same calendar day as now,
// in now's location.
func Summarize(renters []*domain.RenterApplication, landlords []*domain.LandlordApplication, now time.Time) Summary {
	return Summary{
		HouseSeekers:   len(renters),
		PropertyOwners: len(landlords),
		Today:          len(SubmittedOn(renters, now)) + len(SubmittedOn(landlords, now)),
		ToContact:      len(renters) + len(landlords),
	}
}

type submission interface {
	SubmittedAt() time.Time
}

// SubmittedOn keeps the items submitted on day's calendar date in day's
// location. Order is preserved.
func SubmittedOn[T submission](items []T, day time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if sameDay(it.SubmittedAt(), day) {
			out = append(out, it)
		}
	}
	return out
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
