package morph

import (
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

const (
	stateInitialized = "initialized"
	stateIterating   = "iterating"
	stateConverged   = "converged"

	eventStep   = "step"
	eventSettle = "settle"
)

//go:generate sh -c "go run ../../cmd/morph -dump-fsm | dot -s144 -Tsvg /dev/stdin -o reconstruction.svg"

// NewReconstructionFSM returns the state machine tracking one reconstruction:
// the marker is stepped until a pass leaves every pixel unchanged.
func NewReconstructionFSM(log *logrus.Entry) *fsm.FSM {
	return fsm.NewFSM(
		stateInitialized,
		fsm.Events{
			{Name: eventStep, Src: []string{stateInitialized, stateIterating}, Dst: stateIterating},
			{Name: eventSettle, Src: []string{stateIterating}, Dst: stateConverged},
		},
		fsm.Callbacks{
			"after_event": func(e *fsm.Event) {
				if e.Src != e.Dst {
					log.Tracef("[%s -> %s] %s", e.Src, e.Dst, e.Event)
				}
			},
		},
	)
}

func pushEvent(log *logrus.Entry, f *fsm.FSM, event string) {
	err := f.Event(event)
	if _, ok := err.(fsm.NoTransitionError); err != nil && !ok {
		log.WithError(err).WithField("state", f.Current()).Error("reconstruction fsm")
	}
}
