// Package adversary implements the self-driven maze actors: their
// Normal/Frightened/Defeated state machine, the random direction-choice rule,
// and the return-to-home transit after defeat.
package adversary

// State is the behavior state of an adversary.
type State int

const (
	Normal State = iota
	Frightened
	Defeated
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Frightened:
		return "frightened"
	case Defeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// allowed is the transition table for externally requested state changes.
// Defeated -> Normal is absent: it only happens when the return-to-home
// transit completes.
var allowed = map[State]map[State]bool{
	Normal:     {Frightened: true},
	Frightened: {Normal: true, Defeated: true},
	Defeated:   {},
}

// CanTransition reports whether a request from -> to is legal.
func CanTransition(from, to State) bool {
	return allowed[from][to]
}
