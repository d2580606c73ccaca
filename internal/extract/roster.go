package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tallyMarker  = regexp.MustCompile(`(?i)stemming\s*/\s*vote\s*\(?\s*(\d+)`)
	rosterAnchor = regexp.MustCompile(`(?i)(?:vote nominatif\s*-\s*naamstemming|naamstemming\s*-\s*vote nominatif)\s*:\s*(\d+)`)
)

// Tally is the result table of one roll-call vote
type Tally struct {
	Index   string
	Yes     int
	No      int
	Abstain int
}

// Total is the number of votes cast
func (t Tally) Total() int {
	return t.Yes + t.No + t.Abstain
}

// ParseTally reads a roll-call result table. The first row must carry the
// "Stemming/vote N" marker, otherwise the table is not a tally and ok is
// false. Counts that do not parse are read as zero.
func ParseTally(table *html.Node) (t Tally, ok bool) {
	rows := FindAll(table, func(n *html.Node) bool { return IsElement(n, atom.Tr) })
	if len(rows) == 0 {
		return t, false
	}

	marker := tallyMarker.FindStringSubmatch(CollapseSpace(CleanText(Text(rows[0]))))
	if marker == nil {
		return t, false
	}
	t.Index = marker[1]

	for _, row := range rows[1:] {
		cells := rowCells(row)
		if len(cells) < 2 {
			continue
		}
		label := strings.ToLower(CollapseSpace(CleanText(Text(cells[0]))))
		count := parseCount(Text(cells[1]))

		switch {
		case strings.HasPrefix(label, "ja"), strings.HasPrefix(label, "oui"):
			t.Yes = count
		case strings.HasPrefix(label, "nee"), strings.HasPrefix(label, "non"):
			t.No = count
		case strings.HasPrefix(label, "onthouding"), strings.HasPrefix(label, "abstention"):
			t.Abstain = count
		}
	}

	return t, true
}

// Rosters holds the normalized name lists of one vote
type Rosters struct {
	Yes     string
	No      string
	Abstain string
}

// RosterResolver finds the voter names printed in the annex of a transcript.
// Rosters are located through their anchor text, not through the position
// of the tally table, because the annex nests them differently every year.
type RosterResolver struct {
	doc   *html.Node
	scans int
}

// NewRosterResolver creates a resolver over a parsed transcript
func NewRosterResolver(doc *html.Node) *RosterResolver {
	return &RosterResolver{doc: doc}
}

// Scans returns how many name-block scans have run
func (r *RosterResolver) Scans() int {
	return r.scans
}

// Resolve returns the yes, no and abstain rosters of the vote with the given
// index. Missing anchors or tables yield empty rosters.
func (r *RosterResolver) Resolve(index string) Rosters {
	anchor := FindFirst(r.doc, func(n *html.Node) bool {
		if !IsElement(n, atom.Span) {
			return false
		}
		m := rosterAnchor.FindStringSubmatch(CollapseSpace(CleanText(Text(n))))
		return m != nil && sameIndex(m[1], index)
	})
	if anchor == nil {
		return Rosters{}
	}

	tables := r.rosterTables(anchor)
	names := make([]string, 3)
	for i, table := range tables {
		if parseCount(Text(secondCell(table))) == 0 {
			continue
		}
		names[i] = r.scanNames(table)
	}

	return Rosters{Yes: names[0], No: names[1], Abstain: names[2]}
}

// rosterTables walks forward from the anchor collecting up to three tables.
// When the anchor's block has no following tables the search climbs one
// level, so the result does not depend on how deep the anchor is nested.
func (r *RosterResolver) rosterTables(anchor *html.Node) []*html.Node {
	for node := anchor.Parent; node != nil && !IsElement(node, atom.Body); node = node.Parent {
		tables := WalkSiblings(node, containsRosterAnchor, isTable, 3)
		if len(tables) > 0 {
			return tables
		}
	}
	return nil
}

// scanNames returns the first plausible name list after a roster table,
// looking no further than the next table
func (r *RosterResolver) scanNames(table *html.Node) string {
	r.scans++

	paragraphs := WalkSiblings(table, isTable, func(n *html.Node) bool {
		return IsElement(n, atom.P) && plausibleNames(Text(n))
	}, 1)
	if len(paragraphs) == 0 {
		return ""
	}
	return NormalizeRoster(Text(paragraphs[0]))
}

// sameIndex compares vote numbers printed with and without leading zeros
func sameIndex(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return x == y
}

func containsRosterAnchor(n *html.Node) bool {
	return rosterAnchor.MatchString(CollapseSpace(CleanText(Text(n))))
}

func plausibleNames(text string) bool {
	text = strings.TrimSpace(strings.NewReplacer(softHyphen, "", nbsp, " ").Replace(text))
	if text == "" {
		return false
	}
	if !unicode.IsLetter([]rune(text)[0]) {
		return false
	}
	if strings.Contains(strings.ToLower(text), "vote nominatif") {
		return false
	}
	return strings.IndexFunc(text, unicode.IsLetter) >= 0
}

// NormalizeRoster removes line-wrapping from a roster: commas lose their
// trailing whitespace and other line breaks become spaces
func NormalizeRoster(raw string) string {
	raw = strings.NewReplacer(softHyphen, "", nbsp, " ", "\r", "").Replace(raw)
	parts := strings.Split(raw, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = CollapseSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}

// SplitRoster turns a normalized roster into display names
func SplitRoster(roster string) []string {
	names := []string{}
	if roster == "" {
		return names
	}
	for _, n := range strings.Split(roster, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, ConvertName(n))
		}
	}
	return names
}

// ConvertName reorders "Last First" into "First Last". Only the final token
// is taken as the first name, so compound surnames survive.
func ConvertName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return strings.TrimSpace(name)
	}
	last := len(tokens) - 1
	return tokens[last] + " " + strings.Join(tokens[:last], " ")
}

func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, atom.Td) || IsElement(c, atom.Th) {
			cells = append(cells, c)
		}
	}
	return cells
}

func secondCell(table *html.Node) *html.Node {
	cells := FindAll(table, func(n *html.Node) bool { return IsElement(n, atom.Td) })
	if len(cells) < 2 {
		return nil
	}
	return cells[1]
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.Join(strings.Fields(CleanText(s)), ""))
	if err != nil {
		return 0
	}
	return n
}
