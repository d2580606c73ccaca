package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// ParagraphSeparator joins the paragraphs of a discussion into one text
const ParagraphSeparator = "NEWPARAGRAPH"

const (
	chairSpeaker   = "Voorzitter"
	unknownSpeaker = "Onbekend"
)

var (
	// A turn opens with a timestamp and a speaker label at the start of a
	// paragraph, or with the chair marker anywhere. Paragraphs are separated
	// by newlines when this runs, so a label never spans two paragraphs.
	turnBoundary = regexp.MustCompile(`(?:^|\n)\s*(?P<time>\d{2}\.\d{2})\s+(?P<label>[^:\n]{1,200}):|(?P<chair>Le\s+président|De\s+voorzitter)\s*:`)

	speakerTitle = regexp.MustCompile(`^(?:Eerste minister|Premier ministre|Vice-eersteminister|Vice-premier ministre|Minister|Staatssecretaris|Secrétaire d'État|De heer|Mevrouw|Le ministre|La ministre|Monsieur|Madame)\s+`)
	speakerName  = regexp.MustCompile(`^[^(,:\n\r]+`)

	chairLabels = []string{"de voorzitter", "le président", "la présidente", "voorzitter", "président"}

	closingPhrases = strings.NewReplacer(
		"Het incident is gesloten.", "",
		"L'incident est clos.", "",
		"L’incident est clos.", "",
	)
)

// SegmentDiscussion splits a discussion into speaker turns. Text before the
// first turn boundary has no speaker and is dropped, as are turns left empty
// once closing boilerplate is removed.
func SegmentDiscussion(text string) []model.DiscussionTurn {
	turns := []model.DiscussionTurn{}
	text = strings.ReplaceAll(text, ParagraphSeparator, "\n")

	bounds := turnBoundary.FindAllStringSubmatchIndex(text, -1)
	labelIdx := turnBoundary.SubexpIndex("label")
	chairIdx := turnBoundary.SubexpIndex("chair")

	for i, b := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}

		body := turnText(text[b[1]:end])
		if body == "" {
			continue
		}

		var speaker string
		if b[2*chairIdx] >= 0 {
			speaker = chairSpeaker
		} else {
			speaker = SpeakerName(text[b[2*labelIdx]:b[2*labelIdx+1]])
		}

		turns = append(turns, model.DiscussionTurn{Speaker: speaker, Text: body})
	}

	return turns
}

// JoinParagraphs builds the input of SegmentDiscussion
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, ParagraphSeparator)
}

// SpeakerName strips a title from a speaker label and keeps the text up to
// the first comma, colon, parenthesis or line break
func SpeakerName(label string) string {
	label = CollapseSpace(label)
	for _, chair := range chairLabels {
		if strings.EqualFold(label, chair) {
			return chairSpeaker
		}
	}

	label = speakerTitle.ReplaceAllString(label, "")
	name := strings.TrimSpace(speakerName.FindString(label))
	if name == "" {
		return unknownSpeaker
	}
	return name
}

func turnText(raw string) string {
	lines := strings.Split(closingPhrases.Replace(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
