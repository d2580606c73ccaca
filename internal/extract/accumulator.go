package extract

import "strings"

// Role is what a sub-heading does to the item being accumulated
type Role int

const (
	RoleOther Role = iota
	RoleGroupStart
	RoleSingleItem
	RoleContinuation
)

func (r Role) String() string {
	switch r {
	case RoleGroupStart:
		return "group-start"
	case RoleSingleItem:
		return "single-item"
	case RoleContinuation:
		return "continuation"
	default:
		return "other"
	}
}

// RoleRules classifies sub-headings. All phrases are lowercase.
type RoleRules struct {
	GroupPrefixes []string // Heading starts a joint group
	GroupMarkers  []string // Heading mentions a joint group anywhere
	ItemPrefixes  []string // Heading starts a single item
	AnyTextStarts bool     // Every non-dash heading starts an item
}

// Classify decides the role of a heading. A leading dash always marks a
// continuation line of the current group.
func (r RoleRules) Classify(h HeadingText) Role {
	nl := strings.ToLower(h.NL)
	fr := strings.ToLower(h.FR)

	switch {
	case h.Empty():
		return RoleOther
	case strings.HasPrefix(nl, "-") || strings.HasPrefix(fr, "-"):
		return RoleContinuation
	case hasAnyPrefix(nl, r.GroupPrefixes) || hasAnyPrefix(fr, r.GroupPrefixes),
		containsAny(nl, r.GroupMarkers) || containsAny(fr, r.GroupMarkers):
		return RoleGroupStart
	case hasAnyPrefix(nl, r.ItemPrefixes) || hasAnyPrefix(fr, r.ItemPrefixes):
		return RoleSingleItem
	case r.AnyTextStarts:
		return RoleSingleItem
	}
	return RoleOther
}

// ItemRules bundles the classifiers for one entity kind
type ItemRules struct {
	Language LanguageRules
	Roles    RoleRules
}

// QuestionItemRules classifies oral question headings
func QuestionItemRules() ItemRules {
	return ItemRules{
		Language: LanguageRules{
			French: []string{"questions jointes", "question de"},
			Dutch:  []string{"samengevoegde vragen", "toegevoegde vragen", "vraag van"},
		},
		Roles: RoleRules{
			GroupPrefixes: []string{"samengevoegde", "questions jointes"},
			GroupMarkers:  []string{"toegevoegde vragen", "jointes"},
			ItemPrefixes:  []string{"vraag van", "question de"},
		},
	}
}

// PropositionItemRules classifies proposition headings
func PropositionItemRules() ItemRules {
	return ItemRules{
		Language: LanguageRules{
			French: []string{" à ", "membre", "proposition de", "projet de loi"},
			Dutch:  []string{"oproep", "wetsvoorstel", "voorstel van", "wetsontwerp"},
		},
		Roles: RoleRules{AnyTextStarts: true},
	}
}

// VoteItemRules classifies roll-call vote headings
func VoteItemRules() ItemRules {
	return ItemRules{
		Language: LanguageRules{
			French: []string{"projet de loi", "proposition de", "motions déposées", "amendement réservé"},
			Dutch:  []string{"wetsontwerp", "wetsvoorstel", "moties ingediend", "aangehouden amendement"},
		},
		Roles: RoleRules{AnyTextStarts: true},
	}
}

// Group is one complete logical item: its heading lines in each language,
// kept apart because one item may be printed as a Dutch heading followed by
// a French one, and the paragraphs that followed it.
type Group struct {
	NL         []string
	FR         []string
	Paragraphs []string
}

// Empty reports whether the group holds no heading text at all
func (g Group) Empty() bool {
	return len(g.NL) == 0 && len(g.FR) == 0
}

// Lines pairs the Dutch and French lines of the group. Heading lines pair
// with heading lines and dash lines with dash lines, each in the order they
// appeared, so a label printed in one language only does not shift the
// sub-items of the other.
func (g Group) Lines() []HeadingText {
	nlHeads, nlItems := splitContinuations(g.NL)
	frHeads, frItems := splitContinuations(g.FR)
	return append(pairLines(nlHeads, frHeads), pairLines(nlItems, frItems)...)
}

func splitContinuations(lines []string) (heads, items []string) {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			items = append(items, line)
		} else {
			heads = append(heads, line)
		}
	}
	return heads, items
}

func pairLines(nl, fr []string) []HeadingText {
	n := max(len(nl), len(fr))
	lines := make([]HeadingText, 0, n)
	for i := 0; i < n; i++ {
		var h HeadingText
		if i < len(nl) {
			h.NL = nl[i]
		}
		if i < len(fr) {
			h.FR = fr[i]
		}
		lines = append(lines, h)
	}
	return lines
}

// Accumulator buffers sub-headings into complete groups. It is a small state
// machine: every call either extends the buffer or hands back the groups it
// completed.
type Accumulator struct {
	rules ItemRules
	cur   Group
	open  bool
}

// NewAccumulator creates an accumulator for one entity kind
func NewAccumulator(rules ItemRules) *Accumulator {
	return &Accumulator{rules: rules}
}

// Rules returns the classifiers in use
func (a *Accumulator) Rules() ItemRules {
	return a.rules
}

// Heading feeds one classified sub-heading and returns the groups it
// completed (zero or one). A start heading in a language the open group has
// no text for yet completes that group instead of starting a new one.
func (a *Accumulator) Heading(h HeadingText) []Group {
	switch a.rules.Roles.Classify(h) {
	case RoleGroupStart, RoleSingleItem:
		if a.open && a.fills(h) {
			a.add(h)
			return nil
		}
		flushed := a.Flush()
		a.start(h)
		return flushed
	case RoleContinuation:
		if !a.open {
			a.start(h)
			return nil
		}
		a.add(h)
		return nil
	default:
		a.reset()
		return nil
	}
}

// fills reports whether every language of h is still missing from the
// open group
func (a *Accumulator) fills(h HeadingText) bool {
	return (h.NL == "" || len(a.cur.NL) == 0) && (h.FR == "" || len(a.cur.FR) == 0)
}

func (a *Accumulator) add(h HeadingText) {
	if h.NL != "" {
		a.cur.NL = append(a.cur.NL, h.NL)
	}
	if h.FR != "" {
		a.cur.FR = append(a.cur.FR, h.FR)
	}
}

// Paragraph appends body text to the open group; without one it is ignored
func (a *Accumulator) Paragraph(text string) {
	if !a.open || text == "" {
		return
	}
	a.cur.Paragraphs = append(a.cur.Paragraphs, text)
}

// Current returns the group being accumulated without flushing it
func (a *Accumulator) Current() Group {
	return a.cur
}

// Flush completes the buffered group, if any. Flushing twice yields the
// group once.
func (a *Accumulator) Flush() []Group {
	if !a.open || a.cur.Empty() {
		a.reset()
		return nil
	}
	g := a.cur
	a.reset()
	return []Group{g}
}

func (a *Accumulator) start(h HeadingText) {
	a.cur = Group{}
	a.add(h)
	a.open = true
}

func (a *Accumulator) reset() {
	a.cur = Group{}
	a.open = false
}
