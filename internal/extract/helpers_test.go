package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func firstOf(t *testing.T, doc *html.Node, a atom.Atom) *html.Node {
	t.Helper()
	n := FindFirst(doc, func(n *html.Node) bool { return IsElement(n, a) })
	require.NotNil(t, n, "no <%s> in document", a)
	return n
}

func allOf(doc *html.Node, a atom.Atom) []*html.Node {
	return FindAll(doc, func(n *html.Node) bool { return IsElement(n, a) })
}

const headerTable = `
<table>
  <tr><td>
    <p><span>KAMER VAN VOLKSVERTEGENWOORDIGERS</span></p>
    <p><span>Donderdag 14 maart 2024</span></p>
    <p><span>Namiddag</span></p>
  </td></tr>
</table>
<p><span>De vergadering wordt geopend om 14.15 uur en voorgezeten door mevrouw Eliane Tillieux.</span></p>
`

const closing = `<p><span>De vergadering wordt gesloten om 18.02 uur.</span></p>`

// plenaryFixture has one joint question group with two sub-questions and
// one roll-call vote with its annex rosters
const plenaryFixture = `<html><body>` + headerTable + `
<h1><span lang="NL-BE">Mondelinge vragen</span></h1>
<h1><span lang="FR-BE">Questions orales</span></h1>
<h2><span lang="NL-BE">Samengevoegde vragen van</span></h2>
<h2><span lang="NL-BE">- Jan Peeters aan Annelies Verlinden (Justitie) over "Gevangenissen" (56000123P)</span>
<span lang="FR-BE">- Jan Peeters à Annelies Verlinden (Justice) sur "Les prisons" (56000123P)</span></h2>
<h2><span lang="NL-BE">- Sofie Merckx aan Annelies Verlinden (Justitie) over “Overbevolking” (56000124P)</span>
<span lang="FR-BE">- Sofie Merckx à Annelies Verlinden (Justice) sur “La surpopulation” (56000124P)</span></h2>
<p><span>01.01 Jan Peeters (N-VA): Mevrouw de minister, de gevangenissen zitten vol.</span></p>
<p><span>01.02 Minister Annelies Verlinden: Wij werken eraan.</span></p>
<p><span>Het incident is gesloten.</span></p>
<h1><span lang="NL-BE">Naamstemmingen</span></h1>
<h2><span lang="NL-BE">Wetsontwerp houdende diverse bepalingen (1234/5)</span>
<span lang="FR-BE">Projet de loi portant des dispositions diverses (1234/5)</span></h2>
<table>
  <tr><td colspan="3">(Stemming/vote 1)</td></tr>
  <tr><td>Ja</td><td>80</td><td>Oui</td></tr>
  <tr><td>Nee</td><td>40</td><td>Non</td></tr>
  <tr><td>Onthoudingen</td><td>5</td><td>Abstentions</td></tr>
  <tr><td>Totaal</td><td>125</td><td>Total</td></tr>
</table>
` + closing + `
<h1><span>Bijlage</span></h1>
<p><span>Vote nominatif - Naamstemming: 001</span></p>
<table><tr><td>Oui</td><td>080</td><td>Ja</td></tr></table>
<p><span>Peeters Jan, Merckx Sofie,
Van den Bossche Anja</span></p>
<table><tr><td>Non</td><td>040</td><td>Nee</td></tr></table>
<p><span>Janssens An, De Smet Pieter</span></p>
<table><tr><td>Abstentions</td><td>005</td><td>Onthoudingen</td></tr></table>
<p><span>Dewulf Bart</span></p>
</body></html>`
