package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the date format embedded in dossier file names
const DayLayout = "2006-01-02"

// DossierEntry is one cached dossier page. The day in its file name is the
// day the page was downloaded.
type DossierEntry struct {
	Session int
	Dossier string
	Day     time.Time
	Path    string
}

// DossierCache stores dossier pages as
// {dir}/sessions/{session}/dossiers/{session}_{dossier}_{YYYY-MM-DD}.html.
// At most one file exists per dossier.
type DossierCache struct {
	dir string
}

// NewDossierCache creates a dossier cache rooted at dir
func NewDossierCache(dir string) *DossierCache {
	return &DossierCache{dir: dir}
}

func (c *DossierCache) sessionDir(session int) string {
	return filepath.Join(c.dir, "sessions", strconv.Itoa(session), "dossiers")
}

// Lookup finds the cached page of a dossier
func (c *DossierCache) Lookup(session int, dossier string) (DossierEntry, bool) {
	entries, err := c.List(session)
	if err != nil {
		return DossierEntry{}, false
	}
	for _, e := range entries {
		if e.Dossier == dossier {
			return e, true
		}
	}
	return DossierEntry{}, false
}

// Stale reports whether a cached page predates the meeting that referenced
// the dossier, in which case its status may have changed since
func (c *DossierCache) Stale(entry DossierEntry, meetingDay time.Time) bool {
	return entry.Day.Before(truncateDay(meetingDay))
}

// Store writes a freshly downloaded page and removes the file it replaces
func (c *DossierCache) Store(session int, dossier string, day time.Time, body []byte) (DossierEntry, error) {
	old, hadOld := c.Lookup(session, dossier)

	dir := c.sessionDir(session)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return DossierEntry{}, fmt.Errorf("create dossier dir: %w", err)
	}

	day = truncateDay(day)
	entry := DossierEntry{
		Session: session,
		Dossier: dossier,
		Day:     day,
		Path:    filepath.Join(dir, fmt.Sprintf("%d_%s_%s.html", session, dossier, day.Format(DayLayout))),
	}

	if err := os.WriteFile(entry.Path, body, 0644); err != nil {
		return DossierEntry{}, fmt.Errorf("write dossier %s: %w", dossier, err)
	}

	if hadOld && old.Path != entry.Path {
		if err := os.Remove(old.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return entry, fmt.Errorf("remove stale dossier %s: %w", dossier, err)
		}
	}

	return entry, nil
}

// Read returns the cached page of an entry
func (c *DossierCache) Read(entry DossierEntry) ([]byte, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("read dossier %s: %w", entry.Dossier, err)
	}
	return data, nil
}

// List returns every cached dossier of a session, ordered by dossier id.
// Files that do not follow the naming scheme are ignored.
func (c *DossierCache) List(session int) ([]DossierEntry, error) {
	dir := c.sessionDir(session)
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}

	var entries []DossierEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		e, ok := parseDossierFile(session, f.Name())
		if !ok {
			continue
		}
		e.Path = filepath.Join(dir, f.Name())
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dossier != entries[j].Dossier {
			return entries[i].Dossier < entries[j].Dossier
		}
		return entries[i].Day.After(entries[j].Day)
	})
	return entries, nil
}

// parseDossierFile splits "{session}_{dossier}_{day}.html"
func parseDossierFile(session int, name string) (DossierEntry, bool) {
	base, ok := strings.CutSuffix(name, ".html")
	if !ok {
		return DossierEntry{}, false
	}
	rest, ok := strings.CutPrefix(base, strconv.Itoa(session)+"_")
	if !ok {
		return DossierEntry{}, false
	}

	i := strings.LastIndex(rest, "_")
	if i <= 0 {
		return DossierEntry{}, false
	}
	day, err := time.Parse(DayLayout, rest[i+1:])
	if err != nil {
		return DossierEntry{}, false
	}

	return DossierEntry{Session: session, Dossier: rest[:i], Day: day}, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
