package crawl

import (
	"context"
	"fmt"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// DefaultMaxProbes caps one Advance call when no limit is configured
const DefaultMaxProbes = 50

// Prober reports whether a meeting has been published
type Prober interface {
	Exists(ctx context.Context, kind model.MeetingKind, session, meeting int) (bool, error)
}

// Boundary discovers newly published meetings. Meeting ids are sequential,
// so probing last+1, last+2, ... until the first missing id finds every new
// meeting without re-scanning the archive.
type Boundary struct {
	store     StateStore
	prober    Prober
	maxProbes int
}

// BoundaryOption configures a Boundary
type BoundaryOption func(*Boundary)

// WithMaxProbes limits how many ids one Advance call may probe
func WithMaxProbes(n int) BoundaryOption {
	return func(b *Boundary) {
		if n > 0 {
			b.maxProbes = n
		}
	}
}

// NewBoundary creates a crawl boundary
func NewBoundary(store StateStore, prober Prober, opts ...BoundaryOption) *Boundary {
	b := &Boundary{
		store:     store,
		prober:    prober,
		maxProbes: DefaultMaxProbes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Advance probes past the stored id and returns the previous and the new
// upper bound. The new bound is not persisted; call Commit once the run that
// used it has succeeded.
func (b *Boundary) Advance(ctx context.Context, kind model.MeetingKind, session int) (last, bound int, err error) {
	last, err = b.store.Load(kind)
	if err != nil {
		return 0, 0, err
	}

	bound = last
	for i := 0; i < b.maxProbes; i++ {
		if err := ctx.Err(); err != nil {
			return last, bound, err
		}

		ok, err := b.prober.Exists(ctx, kind, session, bound+1)
		if err != nil {
			return last, bound, fmt.Errorf("probe %s meeting %d: %w", kind, bound+1, err)
		}
		if !ok {
			break
		}
		bound++
	}

	return last, bound, nil
}

// Commit persists a bound for the next run
func (b *Boundary) Commit(kind model.MeetingKind, bound int) error {
	return b.store.Save(kind, bound)
}
