package worker

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// DossierRef names a dossier referenced by a meeting, with the date of the
// latest meeting that referenced it
type DossierRef struct {
	Session    int
	Dossier    string
	MeetingDay time.Time
}

// DossierRefresher downloads a dossier page when the cached copy predates
// the meeting day. It reports whether a download happened.
type DossierRefresher interface {
	Ensure(ctx context.Context, session int, dossier string, meetingDay time.Time) (bool, error)
}

// DossierJob refreshes one dossier
type DossierJob struct {
	Ref       DossierRef
	Refresher DossierRefresher
}

// Execute runs the refresh
func (j *DossierJob) Execute(ctx context.Context) Result {
	refreshed, err := j.Refresher.Ensure(ctx, j.Ref.Session, j.Ref.Dossier, j.Ref.MeetingDay)
	if err != nil {
		err = fmt.Errorf("dossier %s: %w", j.Ref.Dossier, err)
	}
	return &DossierResult{Ref: j.Ref, Refreshed: refreshed, Error: err}
}

// DossierResult is the outcome of one refresh
type DossierResult struct {
	Ref       DossierRef
	Refreshed bool
	Error     error
}

// GetError returns the refresh error, if any
func (r *DossierResult) GetError() error {
	return r.Error
}

// DossierBatch refreshes many dossiers concurrently
type DossierBatch struct {
	refresher   DossierRefresher
	concurrency int
}

// NewDossierBatch creates a batch runner
func NewDossierBatch(refresher DossierRefresher, concurrency int) *DossierBatch {
	return &DossierBatch{
		refresher:   refresher,
		concurrency: concurrency,
	}
}

// Refresh runs one job per ref and returns the results ordered by dossier id
func (b *DossierBatch) Refresh(ctx context.Context, refs []DossierRef) []*DossierResult {
	if len(refs) == 0 {
		return []*DossierResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, ref := range refs {
		pool.Submit(&DossierJob{Ref: ref, Refresher: b.refresher})
	}

	results := pool.Wait()

	out := make([]*DossierResult, 0, len(results))
	for _, r := range results {
		if dr, ok := r.(*DossierResult); ok {
			out = append(out, dr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ref.Dossier < out[j].Ref.Dossier
	})
	return out
}

// MergeRefs deduplicates refs by session and dossier, keeping the latest
// meeting day of each
func MergeRefs(refs []DossierRef) []DossierRef {
	type key struct {
		session int
		dossier string
	}

	index := make(map[key]int)
	var merged []DossierRef
	for _, r := range refs {
		if r.Dossier == "" {
			continue
		}
		k := key{r.Session, r.Dossier}
		if i, ok := index[k]; ok {
			if r.MeetingDay.After(merged[i].MeetingDay) {
				merged[i].MeetingDay = r.MeetingDay
			}
			continue
		}
		index[k] = len(merged)
		merged = append(merged, r)
	}
	return merged
}
