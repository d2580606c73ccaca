package model

// DocumentType classifies a parliamentary document
type DocumentType string

const (
	DocResolutionProposal       DocumentType = "resolution_proposal"
	DocAmendment                DocumentType = "amendment"
	DocRevisionProposal         DocumentType = "revision_proposal"
	DocLawProposal              DocumentType = "law_proposal"
	DocLawDraft                 DocumentType = "law_draft"
	DocTransmittedDraft         DocumentType = "transmitted_draft"
	DocReport                   DocumentType = "report"
	DocCouncilOfStateOpinion    DocumentType = "council_of_state_opinion"
	DocOpinion                  DocumentType = "opinion"
	DocInquiryCommitteeProposal DocumentType = "inquiry_committee_proposal"
	DocRulesProposal            DocumentType = "rules_proposal"
	DocArticlesAdoptedFirstVote DocumentType = "articles_adopted_first_vote"
	DocAdoptedText              DocumentType = "adopted_text"
	DocUnknown                  DocumentType = "unknown"
)

// DossierStatus is the final outcome of a legislative dossier
type DossierStatus string

const (
	StatusAdopted  DossierStatus = "adopted"
	StatusRejected DossierStatus = "rejected"
	StatusMoot     DossierStatus = "moot" // zonder voorwerp
	StatusUnknown  DossierStatus = "unknown"
)

// Dossier is a legislative file with its documents
type Dossier struct {
	SessionID      int           `json:"session_id"`
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	SubmissionDate string        `json:"submission_date,omitempty"`
	VoteDate       string        `json:"vote_date,omitempty"`
	EndDate        string        `json:"end_date,omitempty"`
	Authors        []string      `json:"authors"`
	Type           DocumentType  `json:"type"`
	Status         DossierStatus `json:"status"`
	Subdocuments   []Subdocument `json:"subdocuments"`
}

// Subdocument is one numbered document inside a dossier
type Subdocument struct {
	DossierID string       `json:"dossier_id"`
	ID        string       `json:"id"`
	Date      string       `json:"date"` // Distribution date
	Type      DocumentType `json:"type"`
	Authors   []string     `json:"authors"`
}
