package entity

// Stage is a lead's position in the lifecycle state machine.
type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageCustomer  Stage = "customer"

	StageNotInterestedTiming     Stage = "not_interested_timing"
	StageNotInterestedCompetitor Stage = "not_interested_competitor"
	StageNotInterestedNoNeed     Stage = "not_interested_no_need"
	StageNotInterestedOther      Stage = "not_interested_other"
)

// legalTransitions is the full transition table. Terminal stages have no
// outgoing edges.
var legalTransitions = map[Stage][]Stage{
	StageNew: {StageContacted},
	StageContacted: {
		StageCustomer,
		StageNotInterestedTiming,
		StageNotInterestedCompetitor,
		StageNotInterestedNoNeed,
		StageNotInterestedOther,
	},
}

func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageCustomer,
		StageNotInterestedTiming, StageNotInterestedCompetitor,
		StageNotInterestedNoNeed, StageNotInterestedOther:
		return true
	}
	return false
}

// Terminal reports whether no transition leads out of s.
func (s Stage) Terminal() bool {
	return s.Valid() && len(legalTransitions[s]) == 0
}

// CanTransition reports whether s -> to is a legal lifecycle transition.
func (s Stage) CanTransition(to Stage) bool {
	for _, t := range legalTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// declineStages maps survey reason codes to decline stages. Unrecognized
// reasons are rejected by the caller, never defaulted.
var declineStages = map[string]Stage{
	"timing":     StageNotInterestedTiming,
	"competitor": StageNotInterestedCompetitor,
	"no_need":    StageNotInterestedNoNeed,
	"other":      StageNotInterestedOther,
}

// StageForDeclineReason resolves a survey reason code to its decline stage.
func StageForDeclineReason(reason string) (Stage, bool) {
	s, ok := declineStages[reason]
	return s, ok
}
