package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// ErrNoDossierTable is returned for a page without the dossier metadata table
var ErrNoDossierTable = errors.New("dossier: no metadata table")

var slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// documentTypes is checked in order; earlier entries shadow later ones
// ("advies van de raad van state" before "advies")
var documentTypes = []struct {
	keyword string
	docType model.DocumentType
}{
	{"voorstel van resolutie", model.DocResolutionProposal},
	{"amendement", model.DocAmendment},
	{"voorstel tot herziening", model.DocRevisionProposal},
	{"wetsvoorstel", model.DocLawProposal},
	{"wetsontwerp", model.DocLawDraft},
	{"overgezonden ontwerp", model.DocTransmittedDraft},
	{"verslag", model.DocReport},
	{"advies van de raad van state", model.DocCouncilOfStateOpinion},
	{"advies", model.DocOpinion},
	{"voorstel onderzoekscommissie", model.DocInquiryCommitteeProposal},
	{"voorstel reglement", model.DocRulesProposal},
	{"artikelen bij 1e stemming aangenomen", model.DocArticlesAdoptedFirstVote},
	{"aangenomen tekst", model.DocAdoptedText},
}

// ClassifyDocumentType maps a document type label to the closed enumeration
func ClassifyDocumentType(raw string) model.DocumentType {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range documentTypes {
		if strings.Contains(lower, t.keyword) {
			return t.docType
		}
	}
	return model.DocUnknown
}

// ClassifyStatus maps a dossier status label to the closed enumeration
func ClassifyStatus(raw string) model.DossierStatus {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "aangenomen"):
		return model.StatusAdopted
	case strings.Contains(lower, "verworpen"):
		return model.StatusRejected
	case strings.Contains(lower, "zonder voorwerp"):
		return model.StatusMoot
	}
	return model.StatusUnknown
}

// ParseDossier reads a dossier page: its label/value table and the nested
// table of subdocuments
func ParseDossier(sessionID int, dossierID string, root *html.Node) (*model.Dossier, error) {
	doc := goquery.NewDocumentFromNode(root)

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoDossierTable
	}

	d := &model.Dossier{
		SessionID:    sessionID,
		ID:           dossierID,
		Title:        CollapseSpace(CleanText(doc.Find("#story h4 center").First().Text())),
		Authors:      []string{},
		Type:         model.DocUnknown,
		Status:       model.StatusUnknown,
		Subdocuments: []model.Subdocument{},
	}

	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < 2 {
			return
		}
		label := cellLabel(cells.Eq(0))
		value := cells.Eq(1)

		switch {
		case strings.Contains(label, "indieningsdatum"):
			d.SubmissionDate = normalizeDate(value.Text())
		case strings.Contains(label, "stemming kamer"):
			d.VoteDate = normalizeDate(value.Text())
		case strings.Contains(label, "einddatum"):
			d.EndDate = normalizeDate(value.Text())
		case strings.Contains(label, "auteur(s)"):
			d.Authors = cellAuthors(value)
		case strings.Contains(label, "document type"):
			d.Type = ClassifyDocumentType(value.Text())
		case strings.Contains(label, "status"):
			d.Status = ClassifyStatus(value.Text())
		case strings.Contains(label, "subdocumenten"):
			d.Subdocuments = parseSubdocuments(dossierID, value.Find("table").First())
		}
	})

	return d, nil
}

// subdocumentGroup accumulates the rows of one subdocument
type subdocumentGroup struct {
	sub       model.Subdocument
	inAuthors bool
}

func (g *subdocumentGroup) complete() bool {
	return g.sub.ID != "" && g.sub.Date != ""
}

// parseSubdocuments groups the rows of the nested table. A row whose second
// cell is missing or blank ends the group; only groups with an id and a
// distribution date are kept.
func parseSubdocuments(dossierID string, table *goquery.Selection) []model.Subdocument {
	subs := []model.Subdocument{}
	g := newSubdocumentGroup(dossierID)

	emit := func() {
		if g.complete() {
			subs = append(subs, g.sub)
		}
		g = newSubdocumentGroup(dossierID)
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < 2 || CollapseSpace(CleanText(cells.Eq(1).Text())) == "" {
			emit()
			return
		}

		first, second := cells.Eq(0), cells.Eq(1)
		label := cellLabel(first)

		if link := first.Find("a").Last(); link.Length() > 0 {
			if id := CollapseSpace(CleanText(link.Text())); id != "" {
				g.sub.ID = id
			}
		}
		if font := second.Find("font").First(); font.Length() > 0 {
			g.sub.Type = ClassifyDocumentType(font.Text())
		}
		if strings.Contains(label, "datum ronddeling") {
			g.sub.Date = normalizeDate(second.Text())
		}
		if strings.Contains(label, "auteur(s)") {
			g.inAuthors = true
		}
		if g.inAuthors {
			if link := second.Find("a").First(); link.Length() > 0 {
				if name := authorName(link.Text()); name != "" {
					g.sub.Authors = append(g.sub.Authors, name)
				}
			}
		}
	})
	emit()

	return subs
}

func newSubdocumentGroup(dossierID string) *subdocumentGroup {
	return &subdocumentGroup{sub: model.Subdocument{DossierID: dossierID, Type: model.DocUnknown, Authors: []string{}}}
}

// cellAuthors reads authors from the links of a cell, falling back to its
// text nodes when it has no links
func cellAuthors(cell *goquery.Selection) []string {
	authors := []string{}
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		if name := authorName(a.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) > 0 {
		return authors
	}

	for _, n := range cell.Nodes {
		for _, t := range FindAll(n, func(x *html.Node) bool { return x.Type == html.TextNode }) {
			if name := CollapseSpace(CleanText(t.Data)); name != "" {
				authors = append(authors, name)
			}
		}
	}
	return authors
}

// authorName drops the comma of "Last, First" listings
func authorName(raw string) string {
	return CollapseSpace(CleanText(strings.ReplaceAll(raw, ",", "")))
}

func cellLabel(cell *goquery.Selection) string {
	return strings.ToLower(CollapseSpace(CleanText(cell.Text())))
}

// normalizeDate turns dd/mm/yyyy into YYYY-MM-DD; other values are kept
func normalizeDate(raw string) string {
	value := CollapseSpace(CleanText(raw))
	m := slashDate.FindStringSubmatch(value)
	if m == nil {
		return strings.ToLower(value)
	}
	return m[3] + "-" + leftPad(m[2]) + "-" + leftPad(m[1])
}

func leftPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
