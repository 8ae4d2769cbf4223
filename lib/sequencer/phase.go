package sequencer

import (
	"sort"
	"strings"
)

type Phase uint8

// Phases always run in this order.
const (
	PhaseBind Phase = iota
	PhaseMint
	PhaseDelegate
	PhaseVote
	PhaseTally
	PhasePower
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseBind:     "bind",
	PhaseMint:     "mint",
	PhaseDelegate: "delegate",
	PhaseVote:     "vote",
	PhaseTally:    "tally",
	PhasePower:    "power",
	PhaseDone:     "done",
}

func (p Phase) String() string {
	if name, found := phaseNames[p]; found {
		return name
	}

	return "unknown"
}

// Writes is true for the phases which submit transactions; Bind only does
// in deploy mode.
func (p Phase) Writes() bool {
	switch p {
	case PhaseMint, PhaseDelegate, PhaseVote:
		return true
	default:
		return false
	}
}

// Phases is a set of phases. Bind is always part of it.
type Phases map[Phase]struct{}

func NewPhases(ps ...Phase) Phases {
	phases := Phases{PhaseBind: struct{}{}}
	for _, p := range ps {
		if p == PhaseDone {
			continue
		}
		phases[p] = struct{}{}
	}

	return phases
}

// predefined phase sets of the commands
var (
	DeployPhases    = NewPhases()
	MintPhases      = NewPhases(PhaseMint)
	OperatePhases   = NewPhases(PhaseMint, PhaseDelegate, PhaseVote, PhaseTally, PhasePower)
	ProposalsPhases = NewPhases(PhaseTally)
)

func (ps Phases) Has(p Phase) bool {
	_, found := ps[p]
	return found
}

// Ordered returns the phases in the order they run.
func (ps Phases) Ordered() []Phase {
	ordered := make([]Phase, 0, len(ps))
	for p := range ps {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	return ordered
}

func (ps Phases) NeedsToken() bool {
	return ps.Has(PhaseMint) || ps.Has(PhaseDelegate) || ps.Has(PhasePower)
}

func (ps Phases) NeedsBallot() bool {
	return ps.Has(PhaseVote) || ps.Has(PhaseTally)
}

func (ps Phases) NeedsParticipants() bool {
	return ps.Has(PhaseMint) || ps.Has(PhaseDelegate) || ps.Has(PhaseVote) || ps.Has(PhasePower)
}

func (ps Phases) String() string {
	var names []string
	for _, p := range ps.Ordered() {
		names = append(names, p.String())
	}

	return strings.Join(names, ",")
}
