package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/kamerwatch/internal/model"
)

func TestSegmentDiscussion(t *testing.T) {
	turns := SegmentDiscussion("08.01 Jan Peeters: Hello.NEWPARAGRAPHDe voorzitter: Thank you.")

	assert.Equal(t, []model.DiscussionTurn{
		{Speaker: "Jan Peeters", Text: "Hello."},
		{Speaker: "Voorzitter", Text: "Thank you."},
	}, turns)
}

func TestSegmentDiscussion_Titles(t *testing.T) {
	text := JoinParagraphs([]string{
		"Inleiding zonder spreker.",
		"01.01 Jan Peeters (N-VA): Mevrouw de minister,",
		"de gevangenissen zitten vol.",
		"01.02 Minister Annelies Verlinden: Wij werken eraan.",
		"01.03 Le président: La parole est à M. Peeters.",
		"Het incident is gesloten.",
	})

	turns := SegmentDiscussion(text)
	require.Len(t, turns, 3)

	assert.Equal(t, "Jan Peeters", turns[0].Speaker)
	assert.Equal(t, "Mevrouw de minister,\nde gevangenissen zitten vol.", turns[0].Text)
	assert.Equal(t, "Annelies Verlinden", turns[1].Speaker)
	assert.Equal(t, "Voorzitter", turns[2].Speaker)
	assert.Equal(t, "La parole est à M. Peeters.", turns[2].Text)
}

func TestSegmentDiscussion_DropsEmptyTurns(t *testing.T) {
	turns := SegmentDiscussion(JoinParagraphs([]string{
		"02.01 Sofie Merckx (PVDA-PTB): Dank u.",
		"02.02 Jan Peeters: L'incident est clos.",
	}))

	require.Len(t, turns, 1)
	assert.Equal(t, "Sofie Merckx", turns[0].Speaker)
}

func TestSegmentDiscussion_LabelStaysInParagraph(t *testing.T) {
	turns := SegmentDiscussion(JoinParagraphs([]string{
		"01.01 Jan Peeters: Hallo.",
		"01.02 De vergadering wordt even geschorst.",
		"01.03 Sofie Merckx: Dank u.",
	}))

	assert.Equal(t, []model.DiscussionTurn{
		{Speaker: "Jan Peeters", Text: "Hallo.\n01.02 De vergadering wordt even geschorst."},
		{Speaker: "Sofie Merckx", Text: "Dank u."},
	}, turns)
}

func TestSegmentDiscussion_Empty(t *testing.T) {
	assert.Empty(t, SegmentDiscussion(""))
	assert.NotNil(t, SegmentDiscussion("Geen sprekers hier."))
}

func TestSpeakerName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Jan Peeters (N-VA)", "Jan Peeters"},
		{"Eerste minister Alexander De Croo", "Alexander De Croo"},
		{"Staatssecretaris Eva De Bleeker, belast met Begroting", "Eva De Bleeker"},
		{"La présidente", "Voorzitter"},
		{"  ", "Onbekend"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SpeakerName(tt.label))
		})
	}
}
