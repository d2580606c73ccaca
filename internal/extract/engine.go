package extract

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// Result is the outcome of parsing one transcript
type Result struct {
	Meeting *model.Meeting
	Notes   []Note
}

// Engine extracts meetings from parsed transcripts. An Engine holds only
// configuration; every Parse call works on its own state, so one Engine may
// serve concurrent callers.
type Engine struct {
	corrections      Corrections
	questionRules    Chain
	propositionRules Chain
	voteRules        Chain
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithCorrections replaces the name corrections table
func WithCorrections(c Corrections) EngineOption {
	return func(e *Engine) { e.corrections = c }
}

// NewEngine creates an engine with the default rule chains
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		corrections:      DefaultCorrections(),
		questionRules:    QuestionRules(),
		propositionRules: PropositionRules(),
		voteRules:        VoteRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseReader parses an already decoded transcript
func (e *Engine) ParseReader(r io.Reader, ref model.MeetingRef) (*Result, error) {
	doc, err := ParseHTML(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return e.Parse(doc, ref)
}

// Parse extracts one meeting. Only missing meeting metadata fails the
// parse; anything missing inside the sections yields fewer records.
func (e *Engine) Parse(doc *html.Node, ref model.MeetingRef) (*Result, error) {
	meta, err := ParseMeetingMetadata(doc, ref.Kind)
	if err != nil {
		return nil, fmt.Errorf("meeting %d/%d: %w", ref.SessionID, ref.MeetingID, err)
	}

	meeting := &model.Meeting{
		MeetingRef:   ref,
		Date:         meta.Date,
		TimeOfDay:    meta.TimeOfDay,
		StartTime:    meta.StartTime,
		EndTime:      meta.EndTime,
		Committee:    meta.Committee,
		Chair:        meta.Chair,
		Questions:    []model.Question{},
		Propositions: []model.Proposition{},
		Votes:        []model.Vote{},
	}

	s := e.newScan(doc, meeting)
	s.run(blockNodes(doc))

	return &Result{Meeting: meeting, Notes: s.notes.notes}, nil
}

// scan is the state of one linear pass over a transcript
type scan struct {
	meeting  *model.Meeting
	scanner  *Scanner
	notes    *notebook
	accs     map[Section]*Accumulator
	question *questionBuilder
	proposal *propositionBuilder
	vote     *voteBuilder
}

func (e *Engine) newScan(doc *html.Node, m *model.Meeting) *scan {
	notes := &notebook{}

	var scanner *Scanner
	if m.Kind == model.KindCommittee {
		scanner = NewScanner(WithInitialSection(SectionQuestions), WithLockedSection())
	} else {
		scanner = NewScanner()
	}

	return &scan{
		meeting: m,
		scanner: scanner,
		notes:   notes,
		accs: map[Section]*Accumulator{
			SectionQuestions:    NewAccumulator(QuestionItemRules()),
			SectionPropositions: NewAccumulator(PropositionItemRules()),
			SectionVotes:        NewAccumulator(VoteItemRules()),
		},
		question: &questionBuilder{rules: e.questionRules, corrections: e.corrections, notes: notes},
		proposal: &propositionBuilder{rules: e.propositionRules, notes: notes},
		vote:     &voteBuilder{rules: e.voteRules, rosters: NewRosterResolver(doc), notes: notes},
	}
}

func (s *scan) run(nodes []*html.Node) {
	for _, n := range nodes {
		section, transition := s.scanner.Classify(n)
		if transition != nil {
			s.closeSection(transition.From)
			continue
		}

		acc := s.accs[section]
		if acc == nil {
			continue
		}

		switch {
		case IsElement(n, atom.H2):
			s.emit(section, acc.Heading(SplitHeading(n, acc.Rules().Language)))
		case IsElement(n, atom.P):
			acc.Paragraph(CollapseSpace(CleanText(Text(n))))
		case IsElement(n, atom.Table) && section == SectionVotes:
			s.tally(n, acc.Current())
		}
	}
	s.closeSection(s.scanner.Active())
}

// closeSection flushes whatever the section still buffers
func (s *scan) closeSection(section Section) {
	if acc := s.accs[section]; acc != nil {
		s.emit(section, acc.Flush())
	}
}

func (s *scan) emit(section Section, groups []Group) {
	for _, g := range groups {
		switch section {
		case SectionQuestions:
			for _, q := range s.question.build(g) {
				q.ID = len(s.meeting.Questions) + 1
				s.meeting.Questions = append(s.meeting.Questions, q)
			}
		case SectionPropositions:
			for _, p := range s.proposal.build(g) {
				p.ID = len(s.meeting.Propositions) + 1
				s.meeting.Propositions = append(s.meeting.Propositions, p)
			}
		}
	}
}

// tally records a vote for a results table; other tables are skipped
func (s *scan) tally(table *html.Node, g Group) {
	t, ok := ParseTally(table)
	if !ok {
		return
	}
	if t.Total() == 0 {
		s.notes.add(SectionVotes, "vote %s has no votes cast", t.Index)
		return
	}

	v := s.vote.build(g, t)
	v.ID = len(s.meeting.Votes) + 1
	s.meeting.Votes = append(s.meeting.Votes, v)
}
