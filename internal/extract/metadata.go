package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ppiankov/kamerwatch/internal/model"
)

var (
	// ErrMeetingMetadata is wrapped by every metadata failure. A meeting
	// whose date or times cannot be read is skipped, the run continues.
	ErrMeetingMetadata = errors.New("meeting metadata")

	ErrNoHeaderTable = fmt.Errorf("%w: no header table", ErrMeetingMetadata)
	ErrNoDate        = fmt.Errorf("%w: no date", ErrMeetingMetadata)
	ErrNoTimeOfDay   = fmt.Errorf("%w: no time of day", ErrMeetingMetadata)
	ErrNoStartTime   = fmt.Errorf("%w: no start time", ErrMeetingMetadata)
	ErrNoEndTime     = fmt.Errorf("%w: no end time", ErrMeetingMetadata)
)

var (
	datePattern  = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)
	clockPattern = regexp.MustCompile(`(\d{1,2})\.(\d{2})\s*0?uur`)
	chairPattern = regexp.MustCompile(`(?i)voorgezeten\s+door\s+([^.]+?)\s*(?:\.|$)`)
	chairTitles  = regexp.MustCompile(`(?i)\b(?:de\s+)?(?:mevrouwen|mevrouw|heren|heer)\b`)

	months = map[string]int{
		"januari": 1, "februari": 2, "maart": 3, "april": 4, "mei": 5, "juni": 6,
		"juli": 7, "augustus": 8, "september": 9, "oktober": 10, "november": 11, "december": 12,
		"janvier": 1, "février": 2, "mars": 3, "avril": 4, "mai": 5, "juin": 6,
		"juillet": 7, "août": 8, "septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12,
	}

	timesOfDay = map[string]model.TimeOfDay{
		"voormiddag": model.Morning,
		"namiddag":   model.Afternoon,
		"avond":      model.Evening,
		"matin":      model.Morning,
		"après-midi": model.Afternoon,
		"soir":       model.Evening,
	}
)

// ClockPhrases are the sentences that announce the opening and closing of a
// meeting. Phrases are tried in order; the first one found wins.
type ClockPhrases struct {
	Start []string
	End   []string
}

// PlenaryClockPhrases are used for plenary transcripts
func PlenaryClockPhrases() ClockPhrases {
	return ClockPhrases{
		Start: []string{"De vergadering wordt geopend", "De vergadering wordt hervat"},
		End:   []string{"De vergadering wordt gesloten", "De vergadering wordt geschorst"},
	}
}

// CommitteeClockPhrases are used for committee transcripts
func CommitteeClockPhrases() ClockPhrases {
	return ClockPhrases{
		Start: []string{
			"De openbare commissievergadering wordt geopend",
			"De vergadering wordt geopend",
			"De behandeling van de vragen en interpellaties vangt aan",
			"De behandeling van de vragen en de interpellatie vangt aan",
			"De behandeling van de vragen en van de interpellatie vangt aan",
			"De behandeling van de vragen vangt aan",
			"De behandeling van de interpellatie vangt aan",
			"De gedachtewisseling vangt aan",
		},
		End: []string{
			"De openbare commissievergadering wordt gesloten",
			"De vergadering wordt gesloten",
			"De gedachtewisseling met de ministers eindigt",
			"De behandeling van de vragen eindigt",
			"De behandeling van de interpellaties eindigt",
			"De behandeling van de interpellatie eindigt",
			"De gedachtewisseling eindigt",
		},
	}
}

// committeeKeywords maps title fragments to committees, checked in order
var committeeKeywords = []struct {
	keyword   string
	committee model.Committee
}{
	{"binnenlandse", model.CommitteeInterior},
	{"justitie", model.CommitteeJustice},
	{"gezondheid", model.CommitteeHealth},
	{"economie", model.CommitteeEconomy},
	{"buitenlandse", model.CommitteeForeignRelation},
	{"mobiliteit", model.CommitteeMobility},
	{"landsverdediging", model.CommitteeDefence},
	{"energie", model.CommitteeEnergy},
	{"sociale", model.CommitteeSocialAffairs},
	{"begroting", model.CommitteeFinance},
	{"klimaatdialoog", model.CommitteeClimateDialogue},
}

// MeetingMetadata is what the header and the opening and closing sentences
// of a transcript tell about the meeting
type MeetingMetadata struct {
	Date      string
	TimeOfDay model.TimeOfDay
	StartTime string
	EndTime   string
	Committee model.Committee
	Chair     string
}

// ParseMeetingMetadata reads the date, time of day and clock times of a
// meeting, plus committee and chair for committee meetings. Missing date or
// times are reported as errors wrapping ErrMeetingMetadata.
func ParseMeetingMetadata(root *html.Node, kind model.MeetingKind) (*MeetingMetadata, error) {
	doc := goquery.NewDocumentFromNode(root)

	header := doc.Find("table").First()
	if header.Length() == 0 {
		return nil, ErrNoHeaderTable
	}

	meta := &MeetingMetadata{}

	date, ok := parseDate(header)
	if !ok {
		return nil, ErrNoDate
	}
	meta.Date = date

	if meta.TimeOfDay, ok = parseTimeOfDay(doc); !ok {
		return nil, ErrNoTimeOfDay
	}

	phrases := PlenaryClockPhrases()
	if kind == model.KindCommittee {
		phrases = CommitteeClockPhrases()
	}

	if meta.StartTime, ok = findClock(doc, phrases.Start); !ok {
		return nil, ErrNoStartTime
	}
	if meta.EndTime, ok = findClock(doc, phrases.End); !ok {
		return nil, ErrNoEndTime
	}

	if kind == model.KindCommittee {
		meta.Committee = ClassifyCommittee(header.Find("span").First().Text())
		meta.Chair = ParseChair(doc)
	}

	return meta, nil
}

func parseDate(header *goquery.Selection) (string, bool) {
	var parts []string
	header.Find("span").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, CleanText(s.Text()))
	})

	for _, m := range datePattern.FindAllStringSubmatch(strings.Join(parts, " "), -1) {
		month, ok := months[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
	}
	return "", false
}

func parseTimeOfDay(doc *goquery.Document) (model.TimeOfDay, bool) {
	var tod model.TimeOfDay
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t, ok := timesOfDay[strings.ToLower(CollapseSpace(CleanText(s.Text())))]; ok {
			tod = t
			return false
		}
		return true
	})
	return tod, tod != ""
}

// findClock returns the time announced by the first phrase that occurs in
// the document. When a phrase occurs several times, its last occurrence with
// a time wins.
func findClock(doc *goquery.Document, phrases []string) (string, bool) {
	nodes := doc.Find("span, p")
	for _, phrase := range phrases {
		var clock string
		nodes.Each(func(_ int, s *goquery.Selection) {
			text := CollapseSpace(CleanText(s.Text()))
			if !strings.Contains(text, phrase) {
				return
			}
			if m := clockPattern.FindStringSubmatch(text); m != nil {
				hour, _ := strconv.Atoi(m[1])
				clock = fmt.Sprintf("%02dh%s", hour, m[2])
			}
		})
		if clock != "" {
			return clock, true
		}
	}
	return "", false
}

// ClassifyCommittee maps a committee title to its committee
func ClassifyCommittee(title string) model.Committee {
	lower := strings.ToLower(title)
	for _, k := range committeeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.committee
		}
	}
	return model.CommitteeUnknown
}

// ParseChair returns the chair names after "voorgezeten door", titles
// stripped and joined with ", "
func ParseChair(doc *goquery.Document) string {
	var chair string
	doc.Find("span, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := chairPattern.FindStringSubmatch(CleanText(s.Text()))
		if m == nil {
			return true
		}

		var names []string
		for _, part := range strings.Split(m[1], " en ") {
			if name := CollapseSpace(chairTitles.ReplaceAllString(part, "")); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return true
		}
		chair = strings.Join(names, ", ")
		return false
	})
	return chair
}
