package constant

// CandidateStatus defines the pipeline stage of a candidate.
type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "applied"
	CandidateScreening CandidateStatus = "screening"
	CandidateOffer     CandidateStatus = "offer"
	// CandidateApproved is set whenever an interview is scheduled or cancelled.
	CandidateApproved CandidateStatus = "approved"
	CandidateRejected CandidateStatus = "rejected"
	CandidateHired    CandidateStatus = "hired"
	CandidatePending  CandidateStatus = "pending"
	CandidateWaitlist CandidateStatus = "waitlist"
)

// Valid reports whether s is one of the known statuses.
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateApplied, CandidateScreening, CandidateOffer, CandidateApproved,
		CandidateRejected, CandidateHired, CandidatePending, CandidateWaitlist:
		return true
	}
	return false
}

func (s CandidateStatus) String() string {
	return string(s)
}

// InterviewState is the derived display state of an interview on the agenda.
type InterviewState string

const (
	InterviewScheduled InterviewState = "scheduled"
	InterviewCompleted InterviewState = "completed"
	InterviewNoShow    InterviewState = "no_show"
)

// AgendaMode selects which side of today the agenda lists.
type AgendaMode string

const (
	AgendaUpcoming AgendaMode = "upcoming"
	AgendaPast     AgendaMode = "past"
)
