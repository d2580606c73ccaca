package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteRules_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		title string
		rule  string
		want  map[Field]string
	}{
		{
			name:  "dossier and document",
			title: "Wetsontwerp XYZ (123/4)",
			rule:  "vote-dossier",
			want:  map[Field]string{FieldTopic: "Wetsontwerp XYZ", FieldDossier: "123", FieldDocument: "4"},
		},
		{
			name:  "motion number",
			title: "Wetsontwerp XYZ (nr. 7)",
			rule:  "vote-motion",
			want:  map[Field]string{FieldTopic: "Wetsontwerp XYZ", FieldMotion: "7"},
		},
		{
			name:  "french motion number",
			title: "Motions déposées (n° 12)",
			rule:  "vote-motion",
			want:  map[Field]string{FieldTopic: "Motions déposées", FieldMotion: "12"},
		},
		{
			name:  "bare title",
			title: "Wetsontwerp XYZ",
			rule:  "vote-title",
			want:  map[Field]string{FieldTopic: "Wetsontwerp XYZ"},
		},
		{
			name:  "document range",
			title: "- Amendement op artikel 2 (567/1-3)",
			rule:  "vote-dossier",
			want:  map[Field]string{FieldTopic: "Amendement op artikel 2", FieldDossier: "567", FieldDocument: "1-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := VoteRules().Apply(tt.title)
			require.True(t, ok)
			assert.Equal(t, tt.rule, m.Rule)
			assert.Equal(t, tt.want, m.Values)
		})
	}
}

func TestQuestionRules_QuotationStyles(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"straight", `Vraag van Jan Peeters aan Annelies Verlinden (Justitie) over "De gevangenissen" (56000123P)`},
		{"curly", `Vraag van Jan Peeters aan Annelies Verlinden (Justitie) over “De gevangenissen” (56000123P)`},
		{"single", `Vraag van Jan Peeters aan Annelies Verlinden (Justitie) over 'De gevangenissen' (56000123P)`},
		{"guillemets", `Vraag van Jan Peeters aan Annelies Verlinden (Justitie) over « De gevangenissen » (56000123P)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := QuestionRules().Apply(tt.text)
			require.True(t, ok)
			assert.Equal(t, "question-quoted", m.Rule)
			assert.Equal(t, "Jan Peeters", m.Get(FieldQuestioner))
			assert.Equal(t, "Annelies Verlinden", m.Get(FieldRespondent))
			assert.Equal(t, "De gevangenissen", m.Get(FieldTopic))
			assert.Equal(t, "56000123P", m.Get(FieldReference))
		})
	}
}

func TestQuestionRules_Variants(t *testing.T) {
	t.Run("apostrophe inside single quotes", func(t *testing.T) {
		m, ok := QuestionRules().Apply(`- Els Van Hoof aan Frank Vandenbroucke over 'De OCMW's'`)
		require.True(t, ok)
		assert.Equal(t, "De OCMW's", m.Get(FieldTopic))
		assert.Empty(t, m.Get(FieldReference))
	})

	t.Run("committee reference", func(t *testing.T) {
		m, ok := QuestionRules().Apply(`Question de Sophie Rohonyi à Vincent Van Quickenborne sur "La police" (nr. 56003263c)`)
		require.True(t, ok)
		assert.Equal(t, "Sophie Rohonyi", m.Get(FieldQuestioner))
		assert.Equal(t, "La police", m.Get(FieldTopic))
		assert.Equal(t, "56003263c", m.Get(FieldReference))
	})

	t.Run("unquoted topic", func(t *testing.T) {
		m, ok := QuestionRules().Apply(`Vraag van Jan Peeters aan de eerste minister over de begroting (56000200P)`)
		require.True(t, ok)
		assert.Equal(t, "question-unquoted", m.Rule)
		assert.Equal(t, "de begroting", m.Get(FieldTopic))
		assert.Equal(t, "56000200P", m.Get(FieldReference))
	})

	t.Run("topic before parenthesis", func(t *testing.T) {
		m, ok := QuestionRules().Apply(`Actualiteitsdebat over de energieprijzen (56000300P)`)
		require.True(t, ok)
		assert.Equal(t, "question-topic-only", m.Rule)
		assert.Equal(t, "Actualiteitsdebat over de energieprijzen", m.Get(FieldTopic))
		assert.Empty(t, m.Get(FieldQuestioner))
	})
}

func TestPropositionRules(t *testing.T) {
	m, ok := PropositionRules().Apply("Wetsvoorstel tot wijziging van de wet (0345/1)")
	require.True(t, ok)
	assert.Equal(t, "proposition-numbered", m.Rule)
	assert.Equal(t, "0345", m.Get(FieldDossier))
	assert.Equal(t, "1", m.Get(FieldDocument))

	m, ok = PropositionRules().Apply("Voorstel van de heer Dewulf (ingediend)")
	require.True(t, ok)
	assert.Equal(t, "proposition-title", m.Rule)
	assert.Equal(t, "Voorstel van de heer Dewulf (ingediend)", m.Get(FieldTopic))
}

func TestChain_Names(t *testing.T) {
	assert.Equal(t, []string{"vote-dossier", "vote-motion", "vote-title"}, VoteRules().Names())
	assert.Equal(t, []string{"question-quoted", "question-unquoted", "question-topic-only"}, QuestionRules().Names())
	assert.Equal(t, []string{"proposition-numbered", "proposition-title"}, PropositionRules().Names())
}

func TestCorrections(t *testing.T) {
	c := DefaultCorrections()

	name, ok := c.Apply("Ridouhane Chahid")
	assert.True(t, ok)
	assert.Equal(t, "Ridouane Chahid", name)

	name, ok = c.Apply("Jan Peeters")
	assert.False(t, ok)
	assert.Equal(t, "Jan Peeters", name)
}
