package model

// MeetingKind distinguishes plenary sessions from committee meetings
type MeetingKind string

const (
	KindPlenary   MeetingKind = "plenary"
	KindCommittee MeetingKind = "committee"
)

// Valid reports whether k is a known meeting kind
func (k MeetingKind) Valid() bool {
	return k == KindPlenary || k == KindCommittee
}

// TimeOfDay is the part of the day a meeting took place in
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// Committee identifies the standing committee that held a meeting
type Committee string

const (
	CommitteeJustice         Committee = "justice"
	CommitteeInterior        Committee = "interior"
	CommitteeHealth          Committee = "health"
	CommitteeEconomy         Committee = "economy"
	CommitteeForeignRelation Committee = "foreign_relations"
	CommitteeMobility        Committee = "mobility"
	CommitteeDefence         Committee = "defence"
	CommitteeEnergy          Committee = "energy"
	CommitteeSocialAffairs   Committee = "social_affairs"
	CommitteeFinance         Committee = "finance"
	CommitteeClimateDialogue Committee = "climate_dialogue"
	CommitteeUnknown         Committee = "unknown"
)

// MeetingRef identifies a transcript before it is parsed
type MeetingRef struct {
	Kind      MeetingKind `json:"kind"`
	SessionID int         `json:"session_id"` // Legislative term, e.g. 56
	MeetingID int         `json:"meeting_id"` // Sequence number within the term
}

// Meeting is one parsed transcript with everything extracted from it
type Meeting struct {
	MeetingRef

	Date      string    `json:"date"` // YYYY-MM-DD
	TimeOfDay TimeOfDay `json:"time_of_day"`
	StartTime string    `json:"start_time"` // e.g. 14h15
	EndTime   string    `json:"end_time"`
	Committee Committee `json:"committee,omitempty"`
	Chair     string    `json:"chair,omitempty"`

	Questions    []Question    `json:"questions"`
	Propositions []Proposition `json:"propositions"`
	Votes        []Vote        `json:"votes"`
}

// DossierIDs returns the distinct legislative dossier ids referenced by
// propositions and votes, in first-seen order
func (m *Meeting) DossierIDs() []string {
	seen := make(map[string]bool)
	var ids []string

	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	for _, p := range m.Propositions {
		add(p.DossierID)
	}
	for _, v := range m.Votes {
		add(v.DossierID)
	}

	return ids
}

// Question is one oral question, possibly part of a joint group
type Question struct {
	ID          int              `json:"id"`
	TopicNL     string           `json:"topic_nl"`
	TopicFR     string           `json:"topic_fr"`
	Questioners []string         `json:"questioners"`
	Respondents []string         `json:"respondents"` // Deduplicated
	DossierIDs  []string         `json:"dossier_ids"` // Question references, e.g. Q56000123P
	Discussion  []DiscussionTurn `json:"discussion"`
}

// DiscussionTurn is one speaker's contribution to a debate
type DiscussionTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Proposition is a bill or resolution put on the agenda
type Proposition struct {
	ID         int    `json:"id"`
	TitleNL    string `json:"title_nl"`
	TitleFR    string `json:"title_fr"`
	DossierID  string `json:"dossier_id,omitempty"`
	DocumentID string `json:"document_id,omitempty"` // May be a range, e.g. 1-3
}

// Vote is a roll-call vote with its tally and named voters
type Vote struct {
	ID         int    `json:"id"`
	Index      string `json:"index"` // Roll-call number as printed in the transcript
	TitleNL    string `json:"title_nl"`
	TitleFR    string `json:"title_fr"`
	DossierID  string `json:"dossier_id,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
	MotionID   string `json:"motion_id,omitempty"`

	Yes     int `json:"yes"`
	No      int `json:"no"`
	Abstain int `json:"abstain"`

	YesVoters     []string `json:"yes_voters"`
	NoVoters      []string `json:"no_voters"`
	AbstainVoters []string `json:"abstain_voters"`
}
