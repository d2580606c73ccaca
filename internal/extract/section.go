package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Section is the topical part of a transcript a node belongs to
type Section int

const (
	SectionNone Section = iota
	SectionQuestions
	SectionPropositions
	SectionVotes
)

func (s Section) String() string {
	switch s {
	case SectionQuestions:
		return "questions"
	case SectionPropositions:
		return "propositions"
	case SectionVotes:
		return "votes"
	default:
		return "none"
	}
}

// SectionKeywords lists the heading phrases, in both languages, that open a
// section. They are matched case-insensitively as substrings of the heading.
// A heading matching the active section's own keywords is a translation
// duplicate and keeps the section open.
type SectionKeywords struct {
	Section  Section
	Keywords []string
}

// DefaultSectionKeywords is checked in order; the first table that matches a
// heading wins
func DefaultSectionKeywords() []SectionKeywords {
	return []SectionKeywords{
		{Section: SectionVotes, Keywords: []string{"naamstemming", "vote nominatif", "votes nominatifs"}},
		{Section: SectionQuestions, Keywords: []string{"mondelinge vragen", "vragen", "questions orales", "questions"}},
		{Section: SectionPropositions, Keywords: []string{"voorstel", "wetsontwerp", "proposition", "projet de loi", "projets de loi"}},
	}
}

// Transition is emitted by the scanner whenever the active section changes
type Transition struct {
	From Section
	To   Section
}

// Scanner classifies the block nodes of a transcript into sections. Only
// h1 headings move the scanner between sections.
type Scanner struct {
	keywords []SectionKeywords
	active   Section
	locked   bool
}

// ScannerOption configures a Scanner
type ScannerOption func(*Scanner)

// WithInitialSection starts the scan inside a section. Combined with
// WithLockedSection this serves committee reports, which have no section
// headings at all.
func WithInitialSection(s Section) ScannerOption {
	return func(sc *Scanner) { sc.active = s }
}

// WithLockedSection makes headings unable to change the active section
func WithLockedSection() ScannerOption {
	return func(sc *Scanner) { sc.locked = true }
}

// WithKeywords replaces the keyword tables
func WithKeywords(k []SectionKeywords) ScannerOption {
	return func(sc *Scanner) { sc.keywords = k }
}

// NewScanner creates a section scanner
func NewScanner(opts ...ScannerOption) *Scanner {
	sc := &Scanner{keywords: DefaultSectionKeywords()}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Active returns the current section
func (s *Scanner) Active() Section {
	return s.active
}

// Classify returns the section n belongs to. For a heading that changes the
// active section it also returns the transition; the heading itself belongs
// to the new section.
func (s *Scanner) Classify(n *html.Node) (Section, *Transition) {
	if s.locked || !IsElement(n, atom.H1) {
		return s.active, nil
	}

	heading := strings.ToLower(CollapseSpace(CleanText(Text(n))))
	if heading == "" {
		return s.active, nil
	}

	next := s.classifyHeading(heading)
	if next == s.active {
		return s.active, nil
	}

	t := &Transition{From: s.active, To: next}
	s.active = next
	return s.active, t
}

// classifyHeading decides which section a non-empty heading belongs to
func (s *Scanner) classifyHeading(heading string) Section {
	for _, kw := range s.keywords {
		if kw.Section == s.active && containsAny(heading, kw.Keywords) {
			return kw.Section
		}
	}
	for _, kw := range s.keywords {
		if containsAny(heading, kw.Keywords) {
			return kw.Section
		}
	}
	return SectionNone
}
