package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/kamerwatch/internal/model"
)

var (
	// A heading line that only announces a joint group
	groupLabel = regexp.MustCompile(`(?i)^(?:samengevoegde vragen|toegevoegde vragen|questions jointes)(?:\s+(?:van|de))?\s*[-:]?$`)

	memberTitle = regexp.MustCompile(`(?i)^(?:-\s*)?(?:de heer|mevrouw|monsieur|madame|m\.|mme)\s+`)
)

// questionBuilder turns accumulated question groups into Question records
type questionBuilder struct {
	rules       Chain
	corrections Corrections
	notes       *notebook
}

// build returns one Question per sub-question line of the group. All of
// them share the discussion and the deduplicated respondents of the group.
func (b *questionBuilder) build(g Group) []model.Question {
	discussion := SegmentDiscussion(JoinParagraphs(g.Paragraphs))

	var questions []model.Question
	var respondents []string
	seen := make(map[string]bool)

	for _, line := range g.Lines() {
		if isGroupLabel(line) {
			continue
		}

		nl := b.match(line.NL)
		fr := b.match(line.FR)

		q := model.Question{
			TopicNL:     nl.Get(FieldTopic),
			TopicFR:     fr.Get(FieldTopic),
			Questioners: []string{},
			DossierIDs:  []string{},
		}

		if who := firstNonEmpty(nl.Get(FieldQuestioner), fr.Get(FieldQuestioner)); who != "" {
			q.Questioners = append(q.Questioners, b.member(who))
		}
		if ref := firstNonEmpty(nl.Get(FieldReference), fr.Get(FieldReference)); ref != "" {
			q.DossierIDs = append(q.DossierIDs, "Q"+ref)
		}
		if to := firstNonEmpty(nl.Get(FieldRespondent), fr.Get(FieldRespondent)); to != "" {
			to = b.member(to)
			if !seen[to] {
				seen[to] = true
				respondents = append(respondents, to)
			}
		}

		if q.TopicNL == "" && q.TopicFR == "" && len(q.Questioners) == 0 {
			b.notes.add(SectionQuestions, "no question in %q", line.NL+line.FR)
			continue
		}
		questions = append(questions, q)
	}

	if respondents == nil {
		respondents = []string{}
	}
	for i := range questions {
		questions[i].Respondents = append([]string{}, respondents...)
		questions[i].Discussion = append([]model.DiscussionTurn{}, discussion...)
	}

	return questions
}

func (b *questionBuilder) match(text string) Match {
	if text == "" {
		return Match{}
	}
	m, ok := b.rules.Apply(text)
	if !ok {
		b.notes.add(SectionQuestions, "no rule matched %q", text)
		return Match{}
	}
	if last := b.rules[len(b.rules)-1].Name; m.Rule == last {
		b.notes.add(SectionQuestions, "fallback rule %s for %q", last, text)
	}
	return m
}

// member strips titles and applies the corrections table
func (b *questionBuilder) member(name string) string {
	name = CollapseSpace(memberTitle.ReplaceAllString(strings.TrimSpace(name), ""))
	fixed, ok := b.corrections.Apply(name)
	if ok {
		b.notes.add(SectionQuestions, "corrected name %q to %q", name, fixed)
	}
	return fixed
}

// isGroupLabel reports whether every non-empty side of a line is a bare
// group announcement
func isGroupLabel(line HeadingText) bool {
	for _, text := range []string{line.NL, line.FR} {
		if text != "" && !groupLabel.MatchString(text) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
