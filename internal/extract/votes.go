package extract

import (
	"strings"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// voteBuilder turns a tally table and the heading it follows into a Vote
type voteBuilder struct {
	rules   Chain
	rosters *RosterResolver
	notes   *notebook
}

// build names the vote after the most recent line of the current heading
// group, the sub-item the table was printed under
func (b *voteBuilder) build(g Group, t Tally) model.Vote {
	var line HeadingText
	if lines := g.Lines(); len(lines) > 0 {
		line = lines[len(lines)-1]
	}

	nl := b.match(line.NL)
	fr := b.match(line.FR)

	v := model.Vote{
		Index:   t.Index,
		TitleNL: firstNonEmpty(nl.Get(FieldTopic), stripDash(line.NL)),
		TitleFR: firstNonEmpty(fr.Get(FieldTopic), stripDash(line.FR)),
		Yes:     t.Yes,
		No:      t.No,
		Abstain: t.Abstain,
	}

	ids := nl
	if ids.Get(FieldDossier) == "" && ids.Get(FieldMotion) == "" {
		ids = fr
	}
	v.DossierID = ids.Get(FieldDossier)
	v.DocumentID = ids.Get(FieldDocument)
	v.MotionID = ids.Get(FieldMotion)

	r := b.rosters.Resolve(t.Index)
	v.YesVoters = SplitRoster(r.Yes)
	v.NoVoters = SplitRoster(r.No)
	v.AbstainVoters = SplitRoster(r.Abstain)

	return v
}

func (b *voteBuilder) match(text string) Match {
	if text == "" {
		return Match{}
	}
	m, ok := b.rules.Apply(text)
	if !ok {
		b.notes.add(SectionVotes, "no rule matched %q", text)
		return Match{}
	}
	return m
}

func stripDash(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "-"))
}
