package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/kamerwatch/internal/model"
)

var plenaryRef = model.MeetingRef{Kind: model.KindPlenary, SessionID: 56, MeetingID: 12}

func TestEngine_JointQuestionAndVote(t *testing.T) {
	res, err := NewEngine().Parse(parseDoc(t, plenaryFixture), plenaryRef)
	require.NoError(t, err)
	m := res.Meeting

	assert.Equal(t, "2024-03-14", m.Date)
	assert.Equal(t, model.Afternoon, m.TimeOfDay)
	assert.Equal(t, "14h15", m.StartTime)
	assert.Equal(t, "18h02", m.EndTime)

	require.Len(t, m.Questions, 2)
	first, second := m.Questions[0], m.Questions[1]

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, []string{"Jan Peeters"}, first.Questioners)
	assert.Equal(t, []string{"Sofie Merckx"}, second.Questioners)
	assert.Equal(t, "Gevangenissen", first.TopicNL)
	assert.Equal(t, "Les prisons", first.TopicFR)
	assert.Equal(t, "Overbevolking", second.TopicNL)
	assert.Equal(t, "La surpopulation", second.TopicFR)
	assert.Equal(t, []string{"Q56000123P"}, first.DossierIDs)
	assert.Equal(t, []string{"Q56000124P"}, second.DossierIDs)
	assert.Equal(t, []string{"Annelies Verlinden"}, first.Respondents)

	assert.Equal(t, first.Discussion, second.Discussion)
	assert.Equal(t, []model.DiscussionTurn{
		{Speaker: "Jan Peeters", Text: "Mevrouw de minister, de gevangenissen zitten vol."},
		{Speaker: "Annelies Verlinden", Text: "Wij werken eraan."},
	}, first.Discussion)

	require.Len(t, m.Votes, 1)
	v := m.Votes[0]
	assert.Equal(t, "1", v.Index)
	assert.Equal(t, 80, v.Yes)
	assert.Equal(t, 40, v.No)
	assert.Equal(t, 5, v.Abstain)
	assert.Equal(t, "Wetsontwerp houdende diverse bepalingen", v.TitleNL)
	assert.Equal(t, "Projet de loi portant des dispositions diverses", v.TitleFR)
	assert.Equal(t, "1234", v.DossierID)
	assert.Equal(t, "5", v.DocumentID)
	assert.Empty(t, v.MotionID)
	assert.Equal(t, []string{"Jan Peeters", "Sofie Merckx", "Anja Van den Bossche"}, v.YesVoters)
	assert.Equal(t, []string{"An Janssens", "Pieter De Smet"}, v.NoVoters)
	assert.Equal(t, []string{"Bart Dewulf"}, v.AbstainVoters)

	assert.Empty(t, m.Propositions)
	assert.Equal(t, []string{"1234"}, m.DossierIDs())
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine()

	render := func() []byte {
		res, err := engine.Parse(parseDoc(t, plenaryFixture), plenaryRef)
		require.NoError(t, err)
		out, err := json.Marshal(res.Meeting)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, string(render()), string(render()))
}

func TestEngine_NoSections(t *testing.T) {
	src := `<html><body>` + headerTable + `
<h1><span>Regeling van de werkzaamheden</span></h1>
<h2><span lang="NL-BE">Vraag van Jan Peeters aan de minister over "Iets" (56000001P)</span></h2>
<p><span>01.01 Jan Peeters: Tekst.</span></p>
<h2><span lang="NL-BE">Wetsontwerp over iets (12/1)</span></h2>
<table><tr><td>(Stemming/vote 1)</td></tr><tr><td>Ja</td><td>3</td></tr></table>
` + closing + `</body></html>`

	res, err := NewEngine().Parse(parseDoc(t, src), plenaryRef)
	require.NoError(t, err)

	assert.Empty(t, res.Meeting.Questions)
	assert.Empty(t, res.Meeting.Propositions)
	assert.Empty(t, res.Meeting.Votes)
}

func TestEngine_Propositions(t *testing.T) {
	src := `<html><body>` + headerTable + `
<h1><span lang="NL-BE">Inoverwegingneming van voorstellen</span></h1>
<h1><span lang="FR-BE">Prise en considération de propositions</span></h1>
<h2><span lang="NL-BE">Wetsvoorstellen</span></h2>
<h2><span lang="NL-BE">- Wetsvoorstel tot wijziging van het Strafwetboek (0345/1)</span>
<span lang="FR-BE">- Proposition de loi modifiant le Code pénal (0345/1)</span></h2>
<h2><span lang="NL-BE">- Voorstel van resolutie over de landbouw (0346/1-3)</span>
<span lang="FR-BE">- Proposition de résolution relative à l'agriculture (0346/1-3)</span></h2>
<h2><span lang="NL-BE">Voorstel van de heer Dewulf over het verkeer</span></h2>
<h1><span>Agenda</span></h1>
` + closing + `</body></html>`

	res, err := NewEngine().Parse(parseDoc(t, src), plenaryRef)
	require.NoError(t, err)
	props := res.Meeting.Propositions

	require.Len(t, props, 3)
	assert.Equal(t, model.Proposition{
		ID:         1,
		TitleNL:    "Wetsvoorstel tot wijziging van het Strafwetboek",
		TitleFR:    "Proposition de loi modifiant le Code pénal",
		DossierID:  "0345",
		DocumentID: "1",
	}, props[0])
	assert.Equal(t, "0346", props[1].DossierID)
	assert.Equal(t, "1-3", props[1].DocumentID)
	assert.Equal(t, "Voorstel van de heer Dewulf over het verkeer", props[2].TitleNL)
	assert.Empty(t, props[2].DossierID)
}

func TestEngine_Committee(t *testing.T) {
	src := `<html><body>
<table><tr><td>
  <p><span>Commissie voor Justitie</span></p>
  <p><span>woensdag 3 april 2024</span></p>
  <p><span>Voormiddag</span></p>
</td></tr></table>
<p><span>De openbare commissievergadering wordt geopend om 10.17 uur en voorgezeten door de heer Ortwin Depoortere en mevrouw Kristien Van Vaerenbergh.</span></p>
<h2><span lang="NL-BE">Vraag van de heer Steven Coengrachts aan Paul Van Tigchelt (VEM Justitie) over "De wachtlijsten" (nr. 56041234c)</span>
<span lang="FR-BE">Question de Steven Coengrachts à Paul Van Tigchelt (VPM Justice) sur "Les listes d'attente" (n° 56041234c)</span></h2>
<p><span>01.01 Steven Coenegrachts (Open Vld): Mijnheer de minister.</span></p>
<p><span>De voorzitter: Het woord is aan de minister.</span></p>
<p><span>De openbare commissievergadering wordt gesloten om 11.40 uur.</span></p>
</body></html>`

	ref := model.MeetingRef{Kind: model.KindCommittee, SessionID: 56, MeetingID: 801}
	res, err := NewEngine().Parse(parseDoc(t, src), ref)
	require.NoError(t, err)
	m := res.Meeting

	assert.Equal(t, model.CommitteeJustice, m.Committee)
	assert.Equal(t, "Ortwin Depoortere, Kristien Van Vaerenbergh", m.Chair)
	assert.Equal(t, model.Morning, m.TimeOfDay)
	assert.Equal(t, "10h17", m.StartTime)
	assert.Equal(t, "11h40", m.EndTime)

	require.Len(t, m.Questions, 1)
	q := m.Questions[0]
	assert.Equal(t, []string{"Steven Coenegrachts"}, q.Questioners)
	assert.Equal(t, []string{"Paul Van Tigchelt"}, q.Respondents)
	assert.Equal(t, "De wachtlijsten", q.TopicNL)
	assert.Equal(t, []string{"Q56041234c"}, q.DossierIDs)
	require.Len(t, q.Discussion, 2)
	assert.Equal(t, "Voorzitter", q.Discussion[1].Speaker)

	var corrected bool
	for _, n := range res.Notes {
		if strings.Contains(n.Message, "corrected name") {
			corrected = true
		}
	}
	assert.True(t, corrected, "expected the name correction to be noted")
}

func TestEngine_MissingMetadata(t *testing.T) {
	src := `<html><body><h1>Mondelinge vragen</h1></body></html>`

	_, err := NewEngine().Parse(parseDoc(t, src), plenaryRef)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMeetingMetadata)
	assert.ErrorIs(t, err, ErrNoHeaderTable)
}

func TestEngine_HeadingsPerLanguage(t *testing.T) {
	src := `<html><body>` + headerTable + `
<h1><span lang="NL-BE">Mondelinge vragen</span></h1>
<h1><span lang="FR-BE">Questions orales</span></h1>
<h2><span lang="NL-BE">Vraag van Jan Peeters aan Annelies Verlinden (Justitie) over "Gevangenissen" (56000123P)</span></h2>
<h2><span lang="FR-BE">Question de Jan Peeters à Annelies Verlinden (Justice) sur "Les prisons" (56000123P)</span></h2>
<p><span>01.01 Jan Peeters (N-VA): Mevrouw de minister.</span></p>
<h1><span lang="NL-BE">Inoverwegingneming van voorstellen</span></h1>
<h2><span lang="NL-BE">Wetsvoorstel tot wijziging van het Strafwetboek (0345/1)</span></h2>
<h2><span lang="FR-BE">Proposition de loi modifiant le Code pénal (0345/1)</span></h2>
<h1><span lang="NL-BE">Naamstemmingen</span></h1>
<h2><span lang="NL-BE">Wetsontwerp houdende diverse bepalingen (1234/5)</span></h2>
<h2><span lang="FR-BE">Projet de loi portant des dispositions diverses (1234/5)</span></h2>
<table>
  <tr><td colspan="3">(Stemming/vote 1)</td></tr>
  <tr><td>Ja</td><td>80</td><td>Oui</td></tr>
  <tr><td>Nee</td><td>40</td><td>Non</td></tr>
  <tr><td>Onthoudingen</td><td>5</td><td>Abstentions</td></tr>
</table>
` + closing + `</body></html>`

	res, err := NewEngine().Parse(parseDoc(t, src), plenaryRef)
	require.NoError(t, err)
	m := res.Meeting

	require.Len(t, m.Questions, 1)
	q := m.Questions[0]
	assert.Equal(t, "Gevangenissen", q.TopicNL)
	assert.Equal(t, "Les prisons", q.TopicFR)
	assert.Equal(t, []string{"Jan Peeters"}, q.Questioners)
	assert.Equal(t, []string{"Annelies Verlinden"}, q.Respondents)
	require.Len(t, q.Discussion, 1)

	require.Len(t, m.Propositions, 1)
	assert.Equal(t, model.Proposition{
		ID:         1,
		TitleNL:    "Wetsvoorstel tot wijziging van het Strafwetboek",
		TitleFR:    "Proposition de loi modifiant le Code pénal",
		DossierID:  "0345",
		DocumentID: "1",
	}, m.Propositions[0])

	require.Len(t, m.Votes, 1)
	v := m.Votes[0]
	assert.Equal(t, "Wetsontwerp houdende diverse bepalingen", v.TitleNL)
	assert.Equal(t, "Projet de loi portant des dispositions diverses", v.TitleFR)
	assert.Equal(t, "1234", v.DossierID)
	assert.Equal(t, "5", v.DocumentID)
	assert.Equal(t, 80, v.Yes)
}
