package extract

import (
	"regexp"
	"strings"
)

// Field is a structured value pulled out of free text
type Field string

const (
	FieldQuestioner Field = "questioner"
	FieldRespondent Field = "respondent"
	FieldTopic      Field = "topic"
	FieldReference  Field = "reference" // Question reference code, e.g. 56000123P
	FieldDossier    Field = "dossier"
	FieldDocument   Field = "document"
	FieldMotion     Field = "motion"
)

// Rule is one extraction pattern. Fields maps each field to the named
// groups that may carry it; the first non-empty group wins, which lets one
// rule accept several quotation styles.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Fields  map[Field][]string
}

// Match is the result of applying a rule
type Match struct {
	Rule   string
	Values map[Field]string
}

// Get returns a field value, or "" when the rule did not capture it
func (m Match) Get(f Field) string {
	return m.Values[f]
}

// Apply runs the rule against text
func (r Rule) Apply(text string) (Match, bool) {
	sub := r.Pattern.FindStringSubmatch(text)
	if sub == nil {
		return Match{}, false
	}

	m := Match{Rule: r.Name, Values: make(map[Field]string, len(r.Fields))}
	for field, groups := range r.Fields {
		for _, g := range groups {
			idx := r.Pattern.SubexpIndex(g)
			if idx < 0 || idx >= len(sub) {
				continue
			}
			if v := strings.TrimSpace(sub[idx]); v != "" {
				m.Values[field] = v
				break
			}
		}
	}
	return m, true
}

// Chain is an ordered list of rules, most specific first
type Chain []Rule

// Apply returns the match of the first rule that matches text
func (c Chain) Apply(text string) (Match, bool) {
	for _, r := range c {
		if m, ok := r.Apply(text); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Names lists the rule names in priority order
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}

const (
	questionLead = `^(?:(?:Samengevoegde vragen van|Questions jointes de)\s*)?(?:-\s*)?(?:(?:Vraag van|Question de)\s+)?`
	questionWho  = `(?P<questioner>.+?)\s+(?:aan|à)\s+(?P<respondent>.+?)(?:\s*\([^()]*\))?`
	questionRef  = `(?:\s*\(\s*(?:(?:nr\.?|n°)\s*)?(?P<ref>\d{6,8}[A-Za-z])\s*\))?\s*$`
)

// QuestionRules extracts questioner, respondent, topic and reference from one
// question line
func QuestionRules() Chain {
	return Chain{
		{
			Name: "question-quoted",
			Pattern: regexp.MustCompile(questionLead + questionWho +
				`\s*(?:over|sur)\s*(?:"(?P<dq>[^"]+)"|“(?P<cq>[^”]+)”|«\s*(?P<gq>[^»]+?)\s*»|'(?P<sq>.+)'|‘(?P<csq>[^’]+)’)` +
				questionRef),
			Fields: map[Field][]string{
				FieldQuestioner: {"questioner"},
				FieldRespondent: {"respondent"},
				FieldTopic:      {"dq", "cq", "gq", "sq", "csq"},
				FieldReference:  {"ref"},
			},
		},
		{
			Name:    "question-unquoted",
			Pattern: regexp.MustCompile(questionLead + questionWho + `\s+(?:over|sur)\s+(?P<topic>.+?)` + questionRef),
			Fields: map[Field][]string{
				FieldQuestioner: {"questioner"},
				FieldRespondent: {"respondent"},
				FieldTopic:      {"topic"},
				FieldReference:  {"ref"},
			},
		},
		{
			Name:    "question-topic-only",
			Pattern: regexp.MustCompile(questionLead + `(?P<topic>[^(]*)`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}},
		},
	}
}

// PropositionRules extracts a title and its dossier/document numbers
func PropositionRules() Chain {
	return Chain{
		{
			Name:    "proposition-numbered",
			Pattern: regexp.MustCompile(`^(?:-\s*)?(?P<topic>.*?)\s*\((?P<dossier>\d+)/(?P<document>\d+(?:-\d+)?)\)\s*$`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}, FieldDossier: {"dossier"}, FieldDocument: {"document"}},
		},
		{
			Name:    "proposition-title",
			Pattern: regexp.MustCompile(`^(?:-\s*)?(?P<topic>.*)$`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}},
		},
	}
}

// VoteRules extracts a vote title and the ids it refers to
func VoteRules() Chain {
	return Chain{
		{
			Name:    "vote-dossier",
			Pattern: regexp.MustCompile(`^(?:-\s*)?(?P<topic>.*?)\s*\((?P<dossier>\d+)/(?P<document>\d+(?:-\d+)?)\)\s*$`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}, FieldDossier: {"dossier"}, FieldDocument: {"document"}},
		},
		{
			Name:    "vote-motion",
			Pattern: regexp.MustCompile(`^(?:-\s*)?(?P<topic>.*?)\s*\((?:nr\.|n°)\s*(?P<motion>\d+)\)\s*$`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}, FieldMotion: {"motion"}},
		},
		{
			Name:    "vote-title",
			Pattern: regexp.MustCompile(`^(?:-\s*)?(?P<topic>[^(]*)`),
			Fields:  map[Field][]string{FieldTopic: {"topic"}},
		},
	}
}
