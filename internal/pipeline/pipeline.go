package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ppiankov/kamerwatch/internal/cache"
	"github.com/ppiankov/kamerwatch/internal/crawl"
	"github.com/ppiankov/kamerwatch/internal/extract"
	"github.com/ppiankov/kamerwatch/internal/model"
	"github.com/ppiankov/kamerwatch/internal/worker"
)

// Pipeline runs one scrape: discover new meetings, parse every meeting in
// range, refresh the dossiers they reference and hand all records to the
// sinks
type Pipeline struct {
	meetings *MeetingSource
	dossiers *DossierSource
	boundary *crawl.Boundary
	engine   *extract.Engine
	sinks    []Sink
	workers  int
	logger   *slog.Logger
}

// RunOptions selects what one run processes
type RunOptions struct {
	Session int
	From    int // First meeting id to parse; ids below it are left alone
}

// RunSummary counts what a run did
type RunSummary struct {
	Kind          model.MeetingKind
	Session       int
	Previous      int // Crawl boundary before the run
	Bound         int // Crawl boundary after the run
	Meetings      int
	Skipped       int // Meetings whose metadata could not be read
	Missing       int // Ids in range without a published transcript
	Refreshed     int
	DossierErrors int
	Dossiers      int
}

// NewPipeline wires the sources, caches and crawl state described by cfg
func NewPipeline(cfg *model.Config, sinks []Sink, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []FetcherOption{
		WithLimiter(worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)),
	}
	if cfg.HTTP.RespectRobots {
		opts = append(opts, WithRobots(NewRobotsGate(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)))
	}
	fetcher := NewFetcher(cfg.HTTP, opts...)

	sourcesDir := filepath.Join(cfg.DataDir, "sources")
	var docs cache.Cache = cache.NewDiskCache(sourcesDir, 0)
	if cfg.Cache.Enabled {
		docs = cache.NewLayeredCache(cache.NewMemoryCache(cfg.Cache.MemoryTTL), docs)
	}

	meetings := NewMeetingSource(fetcher, docs, cfg.Sources)
	boundary := crawl.NewBoundary(
		crawl.NewFileStateStore(cfg.DataDir),
		meetings,
		crawl.WithMaxProbes(cfg.Crawl.MaxProbes),
	)

	return &Pipeline{
		meetings: meetings,
		dossiers: NewDossierSource(fetcher, cache.NewDossierCache(sourcesDir), cfg.Sources.DossierURL),
		boundary: boundary,
		engine:   extract.NewEngine(),
		sinks:    sinks,
		workers:  cfg.Concurrency.DossierWorkers,
		logger:   logger,
	}
}

// Run scrapes one kind of meeting. A meeting whose metadata cannot be read
// is logged and skipped; download and sink failures abort the run and leave
// the crawl state untouched.
func (p *Pipeline) Run(ctx context.Context, kind model.MeetingKind, opts RunOptions) (*RunSummary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown meeting kind %q", kind)
	}

	last, bound, err := p.boundary.Advance(ctx, kind, opts.Session)
	if err != nil {
		return nil, fmt.Errorf("advance crawl boundary: %w", err)
	}

	log := p.logger.With("kind", string(kind), "session", opts.Session)
	if bound == last {
		log.Info("no new meetings", "last", last)
	} else {
		log.Info("found new meetings", "from", last+1, "to", bound)
	}

	summary := &RunSummary{Kind: kind, Session: opts.Session, Previous: last, Bound: bound}

	from := 1
	if opts.From > 1 {
		from = opts.From
	}

	var refs []worker.DossierRef
	for id := from; id <= bound; id++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		meeting, err := p.parseMeeting(ctx, model.MeetingRef{Kind: kind, SessionID: opts.Session, MeetingID: id})
		switch {
		case isNotFound(err):
			log.Debug("meeting not published", "meeting", id)
			summary.Missing++
			continue
		case errors.Is(err, extract.ErrMeetingMetadata):
			log.Warn("skipping meeting", "meeting", id, "error", err)
			summary.Skipped++
			continue
		case err != nil:
			return summary, err
		}

		if err := p.writeMeeting(ctx, meeting); err != nil {
			return summary, err
		}
		summary.Meetings++

		day, err := time.Parse(cache.DayLayout, meeting.Date)
		if err != nil {
			log.Warn("meeting date unusable for dossier staleness", "meeting", id, "date", meeting.Date)
		}
		for _, dossier := range meeting.DossierIDs() {
			refs = append(refs, worker.DossierRef{Session: opts.Session, Dossier: dossier, MeetingDay: day})
		}
	}

	p.refreshDossiers(ctx, refs, summary)

	if err := p.writeDossiers(ctx, opts.Session, summary); err != nil {
		return summary, err
	}

	if err := p.boundary.Commit(kind, bound); err != nil {
		return summary, fmt.Errorf("save crawl state: %w", err)
	}

	log.Info("run complete",
		"meetings", summary.Meetings,
		"skipped", summary.Skipped,
		"dossiers", summary.Dossiers,
		"refreshed", summary.Refreshed)

	return summary, nil
}

func (p *Pipeline) parseMeeting(ctx context.Context, ref model.MeetingRef) (*model.Meeting, error) {
	doc, err := p.meetings.Document(ctx, ref.Kind, ref.SessionID, ref.MeetingID)
	if err != nil {
		return nil, err
	}

	result, err := p.engine.ParseReader(bytes.NewReader(doc), ref)
	if err != nil {
		return nil, err
	}

	for _, note := range result.Notes {
		p.logger.Debug("parse note",
			"kind", string(ref.Kind),
			"meeting", ref.MeetingID,
			"section", note.Section.String(),
			"note", note.Message)
	}
	return result.Meeting, nil
}

// refreshDossiers downloads referenced dossiers whose cached page is missing
// or older than the meeting. Failures are logged; the stale copy, if any,
// is still parsed afterwards.
func (p *Pipeline) refreshDossiers(ctx context.Context, refs []worker.DossierRef, summary *RunSummary) {
	results := worker.NewDossierBatch(p.dossiers, p.workers).Refresh(ctx, worker.MergeRefs(refs))
	for _, r := range results {
		if err := r.GetError(); err != nil {
			p.logger.Warn("dossier refresh failed", "dossier", r.Ref.Dossier, "error", err)
			summary.DossierErrors++
			continue
		}
		if r.Refreshed {
			summary.Refreshed++
		}
	}
}

// writeDossiers parses every cached dossier of the session
func (p *Pipeline) writeDossiers(ctx context.Context, session int, summary *RunSummary) error {
	entries, err := p.dossiers.Cached(session)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		data, err := p.dossiers.Read(entry)
		if err != nil {
			return err
		}

		root, err := extract.ParseHTML(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse dossier %s: %w", entry.Dossier, err)
		}

		dossier, err := extract.ParseDossier(session, entry.Dossier, root)
		if errors.Is(err, extract.ErrNoDossierTable) {
			p.logger.Warn("skipping dossier", "dossier", entry.Dossier, "error", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("parse dossier %s: %w", entry.Dossier, err)
		}

		for _, sink := range p.sinks {
			if err := sink.WriteDossier(ctx, dossier); err != nil {
				return fmt.Errorf("write dossier %s: %w", entry.Dossier, err)
			}
		}
		summary.Dossiers++
	}
	return nil
}

func (p *Pipeline) writeMeeting(ctx context.Context, m *model.Meeting) error {
	for _, sink := range p.sinks {
		if err := sink.WriteMeeting(ctx, m); err != nil {
			return fmt.Errorf("write %s meeting %d: %w", m.Kind, m.MeetingID, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
