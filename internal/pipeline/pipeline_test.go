package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/kamerwatch/internal/model"
)

const meetingPage = `<html><body>
<table><tr><td>
<p><span>Donderdag 14 maart 2024</span></p>
<p><span>Namiddag</span></p>
</td></tr></table>
<p><span>De vergadering wordt geopend om 14.15 uur.</span></p>
<h1><span lang="NL-BE">Naamstemmingen</span></h1>
<h2><span lang="NL-BE">Wetsontwerp houdende diverse bepalingen (1234/5)</span></h2>
<table>
<tr><td>(Stemming/vote 1)</td></tr>
<tr><td>Ja</td><td>80</td></tr>
<tr><td>Nee</td><td>40</td></tr>
<tr><td>Onthoudingen</td><td>5</td></tr>
</table>
<p><span>De vergadering wordt gesloten om 18.02 uur.</span></p>
</body></html>`

const dossierPage = `<html><body><div id="story"><h4><center>Wetsontwerp houdende diverse bepalingen</center></h4>
<table>
<tr><td>Indieningsdatum</td><td>5/10/2023</td></tr>
<tr><td>Status</td><td>AANGENOMEN</td></tr>
</table></div></body></html>`

// parliament serves two plenary meetings, the second without a readable
// header, and one dossier
type parliament struct {
	mu   sync.Mutex
	hits map[string]int
}

func (p *parliament) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.hits[r.URL.Path]++
	p.mu.Unlock()

	switch r.URL.Path {
	case "/plenary/56/1":
		_, _ = io.WriteString(w, meetingPage)
	case "/plenary/56/2":
		_, _ = io.WriteString(w, "<html><body><p>Voorlopige versie</p></body></html>")
	case "/dossier/56/1234":
		_, _ = io.WriteString(w, dossierPage)
	default:
		http.NotFound(w, r)
	}
}

func (p *parliament) count(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[path]
}

// memorySink keeps what it is given
type memorySink struct {
	meetings []*model.Meeting
	dossiers []*model.Dossier
}

func (s *memorySink) WriteMeeting(_ context.Context, m *model.Meeting) error {
	s.meetings = append(s.meetings, m)
	return nil
}

func (s *memorySink) WriteDossier(_ context.Context, d *model.Dossier) error {
	s.dossiers = append(s.dossiers, d)
	return nil
}

func testConfig(t *testing.T, serverURL string) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.HTTP.RespectRobots = false
	cfg.HTTP.MaxRetries = 1
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.RateLimiting.RequestsPerSecond = 0
	cfg.Concurrency.DossierWorkers = 2
	cfg.Sources = model.SourcesConfig{
		PlenaryURL:   serverURL + "/plenary/%d/%d",
		CommitteeURL: serverURL + "/committee/%d/%d",
		DossierURL:   serverURL + "/dossier/%d/%s",
	}
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipeline_Run(t *testing.T) {
	site := &parliament{hits: make(map[string]int)}
	server := httptest.NewServer(site)
	defer server.Close()

	cfg := testConfig(t, server.URL)
	sink := &memorySink{}
	jsonDir := t.TempDir()
	p := NewPipeline(cfg, []Sink{sink, NewJSONSink(jsonDir)}, quietLogger())

	summary, err := p.Run(context.Background(), model.KindPlenary, RunOptions{Session: 56})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Previous != 0 || summary.Bound != 2 {
		t.Errorf("boundary = (%d, %d), want (0, 2)", summary.Previous, summary.Bound)
	}
	if summary.Meetings != 1 || summary.Skipped != 1 {
		t.Errorf("meetings = %d, skipped = %d; want 1, 1", summary.Meetings, summary.Skipped)
	}
	if summary.Refreshed != 1 || summary.Dossiers != 1 {
		t.Errorf("refreshed = %d, dossiers = %d; want 1, 1", summary.Refreshed, summary.Dossiers)
	}

	if len(sink.meetings) != 1 {
		t.Fatalf("sink got %d meetings, want 1", len(sink.meetings))
	}
	m := sink.meetings[0]
	if m.Date != "2024-03-14" || len(m.Votes) != 1 || m.Votes[0].DossierID != "1234" {
		t.Errorf("unexpected meeting: date=%s votes=%+v", m.Date, m.Votes)
	}

	if len(sink.dossiers) != 1 || sink.dossiers[0].Status != model.StatusAdopted {
		t.Errorf("unexpected dossiers: %+v", sink.dossiers)
	}

	state, err := os.ReadFile(filepath.Join(cfg.DataDir, "current_plenary_id.txt"))
	if err != nil || strings.TrimSpace(string(state)) != "2" {
		t.Errorf("crawl state = %q, %v; want 2", state, err)
	}

	data, err := os.ReadFile(filepath.Join(jsonDir, "meetings", "plenary", "56-1.json"))
	if err != nil {
		t.Fatalf("JSON output missing: %v", err)
	}
	var rendered model.Meeting
	if err := json.Unmarshal(data, &rendered); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rendered.StartTime != "14h15" || rendered.EndTime != "18h02" {
		t.Errorf("rendered times = %s-%s", rendered.StartTime, rendered.EndTime)
	}
	if _, err := os.Stat(filepath.Join(jsonDir, "dossiers", "56-1234.json")); err != nil {
		t.Errorf("dossier JSON missing: %v", err)
	}
}

func TestPipeline_RerunUsesCache(t *testing.T) {
	site := &parliament{hits: make(map[string]int)}
	server := httptest.NewServer(site)
	defer server.Close()

	cfg := testConfig(t, server.URL)

	for i := 0; i < 2; i++ {
		sink := &memorySink{}
		p := NewPipeline(cfg, []Sink{sink}, quietLogger())
		summary, err := p.Run(context.Background(), model.KindPlenary, RunOptions{Session: 56})
		if err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		if len(sink.meetings) != 1 {
			t.Errorf("run %d: %d meetings, want 1", i+1, len(sink.meetings))
		}
		if i == 1 && summary.Refreshed != 0 {
			t.Errorf("second run refreshed %d dossiers, want 0", summary.Refreshed)
		}
	}

	if got := site.count("/plenary/56/1"); got != 1 {
		t.Errorf("meeting 1 downloaded %d times, want 1", got)
	}
	if got := site.count("/dossier/56/1234"); got != 1 {
		t.Errorf("dossier downloaded %d times, want 1", got)
	}
	// The first unpublished id is probed on every run
	if got := site.count("/plenary/56/3"); got != 2 {
		t.Errorf("meeting 3 probed %d times, want 2", got)
	}
}

func TestPipeline_From(t *testing.T) {
	site := &parliament{hits: make(map[string]int)}
	server := httptest.NewServer(site)
	defer server.Close()

	sink := &memorySink{}
	p := NewPipeline(testConfig(t, server.URL), []Sink{sink}, quietLogger())

	summary, err := p.Run(context.Background(), model.KindPlenary, RunOptions{Session: 56, From: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Meetings != 0 || summary.Skipped != 1 {
		t.Errorf("meetings = %d, skipped = %d; want 0, 1", summary.Meetings, summary.Skipped)
	}
	if len(sink.meetings) != 0 {
		t.Errorf("meeting 1 should be outside the range")
	}
}

func TestPipeline_ServerErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	noSleep(t)

	cfg := testConfig(t, server.URL)
	p := NewPipeline(cfg, nil, quietLogger())

	if _, err := p.Run(context.Background(), model.KindCommittee, RunOptions{Session: 56}); err == nil {
		t.Fatal("expected error when the site fails")
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "current_committee_id.txt")); !os.IsNotExist(err) {
		t.Errorf("crawl state should not be written after a failed run")
	}
}

func TestPipeline_UnknownKind(t *testing.T) {
	p := NewPipeline(testConfig(t, "http://127.0.0.1:0"), nil, quietLogger())
	if _, err := p.Run(context.Background(), model.MeetingKind("senate"), RunOptions{Session: 56}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestMeetingSource_URL(t *testing.T) {
	s := NewMeetingSource(nil, nil, model.DefaultConfig().Sources)

	if got, want := s.URL(model.KindPlenary, 56, 7), "https://www.dekamer.be/doc/PCRI/html/56/ip007x.html"; got != want {
		t.Errorf("plenary URL = %s, want %s", got, want)
	}
	if got, want := s.URL(model.KindCommittee, 56, 123), "https://www.dekamer.be/doc/CCRI/html/56/ic123x.html"; got != want {
		t.Errorf("committee URL = %s, want %s", got, want)
	}
}

func ExampleJSONSink() {
	dir, _ := os.MkdirTemp("", "kamerwatch")
	defer os.RemoveAll(dir)

	sink := NewJSONSink(dir)
	_ = sink.WriteDossier(context.Background(), &model.Dossier{SessionID: 56, ID: "0345"})

	_, err := os.Stat(filepath.Join(dir, "dossiers", "56-0345.json"))
	fmt.Println(err == nil)
	// Output: true
}
