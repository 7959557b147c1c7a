package networkroute

import (
	"errors"
	"fmt"
)

var (
	ErrRouteLoop    = errors.New("route likely has a loop")
	ErrNoRoute      = errors.New("no network route found at point")
	ErrSpatialIndex = errors.New("spatial route context failure")
)

type LoopReason uint8

const (
	// growth was still succeeding when the iteration cap was reached
	LoopIterationCap LoopReason = iota
	// a fragment already in the chain matched again
	LoopRevisit
	// the opposite end of the chain matched, the route closes on itself
	LoopClosedRing
)

func (r LoopReason) String() string {
	switch r {
	case LoopIterationCap:
		return "iteration cap reached"
	case LoopRevisit:
		return "fragment revisited"
	case LoopClosedRing:
		return "closed ring"
	default:
		return fmt.Sprintf("LoopReason(%d)", uint8(r))
	}
}

// RouteLoopError reports a route whose assembly was abandoned. Tail holds the ids
// of the last fragments of the chain at the moment of failure.
type RouteLoopError struct {
	Key       RouteKey
	SeedID    FragmentID
	Direction Direction
	Reason    LoopReason
	Tail      []FragmentID
}

func (e *RouteLoopError) Error() string {
	return fmt.Sprintf("%v: seed %d, %s while growing %s, %s, last fragments %v",
		ErrRouteLoop, e.SeedID, e.Reason, e.Direction, e.Key, e.Tail)
}

func (e *RouteLoopError) Unwrap() error {
	return ErrRouteLoop
}
