package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/kamerwatch/internal/cache"
	"github.com/ppiankov/kamerwatch/internal/model"
)

// Downloader is the part of Fetcher the sources need
type Downloader interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error)
}

// MeetingSource supplies transcripts, from the document cache when present
// and from the website otherwise. Published transcripts do not change, so a
// cached copy is never refetched.
type MeetingSource struct {
	downloader Downloader
	cache      cache.Cache
	urls       model.SourcesConfig
}

// NewMeetingSource creates a transcript source
func NewMeetingSource(d Downloader, c cache.Cache, urls model.SourcesConfig) *MeetingSource {
	return &MeetingSource{
		downloader: d,
		cache:      c,
		urls:       urls,
	}
}

// URL returns the address of a transcript
func (s *MeetingSource) URL(kind model.MeetingKind, session, meeting int) string {
	tmpl := s.urls.PlenaryURL
	if kind == model.KindCommittee {
		tmpl = s.urls.CommitteeURL
	}
	return fmt.Sprintf(tmpl, session, meeting)
}

// Document returns the decoded transcript of a meeting. A transcript that
// does not exist yields an error matching ErrNotFound.
func (s *MeetingSource) Document(ctx context.Context, kind model.MeetingKind, session, meeting int) ([]byte, error) {
	key := cache.MeetingKey(kind, session, meeting)
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	result, err := s.downloader.FetchWithRetry(ctx, s.URL(kind, session, meeting))
	if err != nil {
		return nil, fmt.Errorf("%s meeting %d: %w", kind, meeting, err)
	}

	if err := s.cache.Set(key, result.Body, 0); err != nil {
		return nil, fmt.Errorf("cache %s meeting %d: %w", kind, meeting, err)
	}
	return result.Body, nil
}

// Exists probes for a transcript. A transcript found by probing is stored,
// so the run that follows does not download it again.
func (s *MeetingSource) Exists(ctx context.Context, kind model.MeetingKind, session, meeting int) (bool, error) {
	_, err := s.Document(ctx, kind, session, meeting)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// DossierSource keeps dossier pages fresh in the dossier cache
type DossierSource struct {
	downloader Downloader
	cache      *cache.DossierCache
	urlTmpl    string
	now        func() time.Time
}

// NewDossierSource creates a dossier source
func NewDossierSource(d Downloader, c *cache.DossierCache, urlTmpl string) *DossierSource {
	return &DossierSource{
		downloader: d,
		cache:      c,
		urlTmpl:    urlTmpl,
		now:        time.Now,
	}
}

// URL returns the address of a dossier page
func (s *DossierSource) URL(session int, dossier string) string {
	return fmt.Sprintf(s.urlTmpl, session, dossier)
}

// Ensure downloads a dossier when it is not cached or when the cached copy
// predates the meeting that referenced it. It reports whether it downloaded.
func (s *DossierSource) Ensure(ctx context.Context, session int, dossier string, meetingDay time.Time) (bool, error) {
	if entry, ok := s.cache.Lookup(session, dossier); ok && !s.cache.Stale(entry, meetingDay) {
		return false, nil
	}

	result, err := s.downloader.FetchWithRetry(ctx, s.URL(session, dossier))
	if err != nil {
		return false, err
	}

	if _, err := s.cache.Store(session, dossier, s.now(), result.Body); err != nil {
		return false, err
	}
	return true, nil
}

// Cached returns every cached dossier page of a session
func (s *DossierSource) Cached(session int) ([]cache.DossierEntry, error) {
	return s.cache.List(session)
}

// Read returns the page of a cached dossier
func (s *DossierSource) Read(entry cache.DossierEntry) ([]byte, error) {
	return s.cache.Read(entry)
}
