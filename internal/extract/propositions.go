package extract

import "github.com/ppiankov/kamerwatch/internal/model"

// propositionBuilder turns accumulated proposition groups into records
type propositionBuilder struct {
	rules Chain
	notes *notebook
}

// build returns one Proposition per line. When a group has sub-items, a
// leading line without dossier numbers is the group title and is skipped.
func (b *propositionBuilder) build(g Group) []model.Proposition {
	lines := g.Lines()

	var props []model.Proposition
	for i, line := range lines {
		nl := b.match(line.NL)
		fr := b.match(line.FR)

		dossier := firstNonEmpty(nl.Get(FieldDossier), fr.Get(FieldDossier))
		if i == 0 && len(lines) > 1 && dossier == "" {
			continue
		}

		p := model.Proposition{
			TitleNL:   nl.Get(FieldTopic),
			TitleFR:   fr.Get(FieldTopic),
			DossierID: dossier,
		}
		if dossier != "" {
			if nl.Get(FieldDossier) != "" {
				p.DocumentID = nl.Get(FieldDocument)
			} else {
				p.DocumentID = fr.Get(FieldDocument)
			}
		}

		if p.TitleNL == "" && p.TitleFR == "" {
			continue
		}
		props = append(props, p)
	}

	return props
}

func (b *propositionBuilder) match(text string) Match {
	if text == "" {
		return Match{}
	}
	m, ok := b.rules.Apply(text)
	if !ok {
		b.notes.add(SectionPropositions, "no rule matched %q", text)
		return Match{}
	}
	return m
}
