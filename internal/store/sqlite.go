package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// SQLiteSink writes meetings and dossiers to a SQLite database. Writing the
// same meeting twice leaves the database as if it was written once.
type SQLiteSink struct {
	db          *sql.DB
	busyTimeout time.Duration
}

// Option configures Open
type Option func(*SQLiteSink)

// WithBusyTimeout sets how long a write waits for a locked database
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteSink) { s.busyTimeout = d }
}

// Open opens (creating if needed) the database at path and applies the
// schema
func Open(path string, opts ...Option) (*SQLiteSink, error) {
	s := &SQLiteSink{busyTimeout: 10 * time.Second}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps the per-connection pragmas in force
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", s.busyTimeout.Milliseconds()),
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	return s, nil
}

// DB exposes the database for queries
func (s *SQLiteSink) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// WriteMeeting replaces a meeting and all its questions, propositions and
// votes
func (s *SQLiteSink) WriteMeeting(ctx context.Context, m *model.Meeting) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		key := []any{m.SessionID, m.MeetingID, string(m.Kind)}

		// Children of an earlier parse may outnumber this one
		for _, table := range []string{"questions", "propositions", "votes"} {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM "+table+" WHERE session_id = ? AND meeting_id = ? AND kind = ?", key...); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meetings
			(session_id, meeting_id, kind, date, time_of_day, start_time, end_time, committee, chair)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.SessionID, m.MeetingID, string(m.Kind), m.Date, string(m.TimeOfDay),
			m.StartTime, m.EndTime, string(m.Committee), m.Chair); err != nil {
			return fmt.Errorf("insert meeting: %w", err)
		}

		for _, q := range m.Questions {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO questions
				(session_id, meeting_id, kind, question_id, topic_nl, topic_fr,
				 questioners, respondents, dossier_ids, discussion)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.SessionID, m.MeetingID, string(m.Kind), q.ID, q.TopicNL, q.TopicFR,
				jsonText(q.Questioners), jsonText(q.Respondents), jsonText(q.DossierIDs),
				jsonText(q.Discussion)); err != nil {
				return fmt.Errorf("insert question %d: %w", q.ID, err)
			}
		}

		for _, p := range m.Propositions {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO propositions
				(session_id, meeting_id, kind, proposition_id, title_nl, title_fr, dossier_id, document_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				m.SessionID, m.MeetingID, string(m.Kind), p.ID, p.TitleNL, p.TitleFR,
				p.DossierID, p.DocumentID); err != nil {
				return fmt.Errorf("insert proposition %d: %w", p.ID, err)
			}
		}

		for _, v := range m.Votes {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO votes
				(session_id, meeting_id, kind, vote_id, vote_index, title_nl, title_fr,
				 dossier_id, document_id, motion_id, yes, no, abstain,
				 yes_voters, no_voters, abstain_voters)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.SessionID, m.MeetingID, string(m.Kind), v.ID, v.Index, v.TitleNL, v.TitleFR,
				v.DossierID, v.DocumentID, v.MotionID, v.Yes, v.No, v.Abstain,
				jsonText(v.YesVoters), jsonText(v.NoVoters), jsonText(v.AbstainVoters)); err != nil {
				return fmt.Errorf("insert vote %d: %w", v.ID, err)
			}
		}

		return nil
	})
}

// WriteDossier replaces a dossier and its subdocuments
func (s *SQLiteSink) WriteDossier(ctx context.Context, d *model.Dossier) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM subdocuments WHERE session_id = ? AND dossier_id = ?", d.SessionID, d.ID); err != nil {
			return fmt.Errorf("clear subdocuments: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO dossiers
			(session_id, dossier_id, title, submission_date, vote_date, end_date, authors, document_type, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.SessionID, d.ID, d.Title, d.SubmissionDate, d.VoteDate, d.EndDate,
			jsonText(d.Authors), string(d.Type), string(d.Status)); err != nil {
			return fmt.Errorf("insert dossier: %w", err)
		}

		for _, sub := range d.Subdocuments {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO subdocuments
				(session_id, dossier_id, subdocument_id, date, document_type, authors)
				VALUES (?, ?, ?, ?, ?, ?)`,
				d.SessionID, d.ID, sub.ID, sub.Date, string(sub.Type), jsonText(sub.Authors)); err != nil {
				return fmt.Errorf("insert subdocument %s: %w", sub.ID, err)
			}
		}

		return nil
	})
}

func (s *SQLiteSink) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// jsonText encodes list columns; nil lists are stored as []
func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return "[]"
	}
	return string(data)
}
