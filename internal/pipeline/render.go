package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// Sink receives the records produced by a run
type Sink interface {
	WriteMeeting(ctx context.Context, m *model.Meeting) error
	WriteDossier(ctx context.Context, d *model.Dossier) error
}

// JSONSink writes one indented JSON file per meeting and per dossier:
//
//	{dir}/meetings/{kind}/{session}-{meeting}.json
//	{dir}/dossiers/{session}-{dossier}.json
type JSONSink struct {
	dir string
}

// NewJSONSink creates a JSON renderer writing below dir
func NewJSONSink(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

// WriteMeeting renders a meeting
func (s *JSONSink) WriteMeeting(_ context.Context, m *model.Meeting) error {
	path := filepath.Join(s.dir, "meetings", string(m.Kind), fmt.Sprintf("%d-%d.json", m.SessionID, m.MeetingID))
	return writeJSON(path, m)
}

// WriteDossier renders a dossier
func (s *JSONSink) WriteDossier(_ context.Context, d *model.Dossier) error {
	path := filepath.Join(s.dir, "dossiers", fmt.Sprintf("%d-%s.json", d.SessionID, d.ID))
	return writeJSON(path, d)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
