package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a run phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Run. It is called from
// the goroutine that called Run.
type PhaseObserver func(PhaseEvent)

// Phase names, in the order Run goes through them.
const (
	PhaseProcess    = "process"
	PhasePopulation = "population"
	PhaseValidate   = "validate"
	PhaseResolve    = "resolve"
	PhaseQuantities = "quantities"
)

// Phases lists every phase Run reports.
var Phases = []string{PhaseProcess, PhasePopulation, PhaseValidate, PhaseResolve, PhaseQuantities}

// ChannelObserver forwards events to ch. The send blocks while ch is full.
func ChannelObserver(ch chan<- PhaseEvent) PhaseObserver {
	return func(ev PhaseEvent) { ch <- ev }
}
