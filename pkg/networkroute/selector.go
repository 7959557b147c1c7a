package networkroute

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/trailnet/pkg/util"
	"go.uber.org/zap"
)

// Selector reconstructs full network routes from the fragments around a point by
// growing a chain from every seed fragment, first towards its start then towards its end.
type Selector struct {
	rCtx SpatialRouteContext
	cfg  Config
	log  *zap.Logger
}

func NewSelector(rCtx SpatialRouteContext, cfg Config, log *zap.Logger) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid route selector config")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{
		rCtx: rCtx,
		cfg:  cfg,
		log:  log,
	}, nil
}

func (s *Selector) Config() Config {
	return s.cfg
}

// FindRoutes returns one route per fragment indexed in the tile containing (x31, y31).
// an empty tile gives an empty result.
func (s *Selector) FindRoutes(ctx context.Context, x31, y31 int32) (*Result, error) {
	return s.FindRoutesFiltered(ctx, x31, y31, nil)
}

// FindRoutesFiltered is FindRoutes with seeds whose key fails filter dropped before
// growth. a nil filter keeps every seed.
func (s *Selector) FindRoutesFiltered(ctx context.Context, x31, y31 int32, filter *Filter) (*Result, error) {
	seeds, err := s.routeSegments(ctx, x31, y31)
	if err != nil {
		return nil, err
	}

	res := newResult()
	for _, seed := range seeds {
		if !filter.Accept(seed.Key()) {
			continue
		}
		route, err := s.assemble(ctx, seed)
		if err != nil {
			var loopErr *RouteLoopError
			if errors.As(err, &loopErr) && s.cfg.FailurePolicy == IsolateRoute {
				s.log.Warn("skipping looped network route",
					zap.Int64("seed", int64(seed.ID())),
					zap.String("key", seed.Key().String()),
					zap.Error(err))
				res.Failures = append(res.Failures, err)
				continue
			}
			return nil, err
		}
		res.Routes = append(res.Routes, route)
	}

	s.log.Debug("network routes found",
		zap.Int32("x31", x31), zap.Int32("y31", y31),
		zap.Int("seeds", len(seeds)),
		zap.Int("routes", len(res.Routes)),
		zap.Int("failures", len(res.Failures)))
	return res, nil
}

// FindNearestRoute grows only the seed fragment whose endpoints are closest to (x31, y31).
func (s *Selector) FindNearestRoute(ctx context.Context, x31, y31 int32) (Route, error) {
	seeds, err := s.routeSegments(ctx, x31, y31)
	if err != nil {
		return Route{}, err
	}
	nearest, ok := NearestFragment(seeds, x31, y31)
	if !ok {
		return Route{}, util.WrapErrorf(ErrNoRoute, util.ErrNotFound, "no network route near %d,%d", x31, y31)
	}
	return s.assemble(ctx, nearest)
}

// FindRoutesInBBox. search by bbox
func (s *Selector) FindRoutesInBBox(ctx context.Context, minX31, minY31, maxX31, maxY31 int32) (*Result, error) {
	return nil, util.WrapErrorf(util.ErrNotImplemented, util.ErrNotImplemented,
		"route search in bbox [%d,%d,%d,%d]", minX31, minY31, maxX31, maxY31)
}

func (s *Selector) routeSegments(ctx context.Context, x31, y31 int32) ([]FragmentView, error) {
	seeds, err := s.rCtx.FragmentsAtTile(ctx, x31, y31)
	if err != nil {
		return nil, util.WrapErrorf(fmt.Errorf("%w: %w", ErrSpatialIndex, err), util.ErrInternalServerError,
			"load route segments at %d,%d", x31, y31)
	}
	return seeds, nil
}

func (s *Selector) assemble(ctx context.Context, seed FragmentView) (Route, error) {
	chain := NewChain(seed)
	for _, dir := range []Direction{Prepend, Append} {
		if err := s.growAll(ctx, chain, dir, seed.ID()); err != nil {
			return Route{}, err
		}
	}
	return newRoute(seed, chain), nil
}

// growAll grows the chain in one direction until a step fails. reaching
// MaxIterations successful steps is reported as a loop.
func (s *Selector) growAll(ctx context.Context, chain *Chain, dir Direction, seedID FragmentID) error {
	for it := 0; it < s.cfg.MaxIterations; it++ {
		if util.StopConcurrentOperation(ctx) {
			return ctx.Err()
		}
		grown, err := s.grow(ctx, chain, dir, seedID)
		if err != nil {
			return err
		}
		if !grown {
			return nil
		}
	}
	return newLoopError(chain, dir, seedID, LoopIterationCap)
}

// grow attaches the first fragment at the growing end's connection point that has
// the same route key and is neither end of the chain.
func (s *Selector) grow(ctx context.Context, chain *Chain, dir Direction, seedID FragmentID) (bool, error) {
	anchor, opposite := chain.First(), chain.Last()
	pnt := anchor.StartPoint()
	if dir == Append {
		anchor, opposite = chain.Last(), chain.First()
		pnt = anchor.EndPoint()
	}

	candidates, err := s.rCtx.FragmentsAtPoint(ctx, pnt)
	if err != nil {
		return false, util.WrapErrorf(fmt.Errorf("%w: %w", ErrSpatialIndex, err), util.ErrInternalServerError,
			"load route segments at point %d", pnt)
	}

	for _, cand := range candidates {
		if cand.Key() != anchor.Key() || cand.ID() == anchor.ID() {
			continue
		}
		matchStart := cand.StartPoint() == pnt
		matchEnd := cand.EndPoint() == pnt
		if !matchStart && !matchEnd {
			continue
		}
		if cand.ID() == opposite.ID() {
			if s.cfg.AllowClosedRings {
				continue
			}
			return false, newLoopError(chain, dir, seedID, LoopClosedRing)
		}
		if chain.Contains(cand.ID()) {
			return false, newLoopError(chain, dir, seedID, LoopRevisit)
		}

		if matchEnd != (dir == Prepend) {
			cand = cand.Inverse()
		}
		if dir == Prepend {
			chain.PushFront(cand)
		} else {
			chain.PushBack(cand)
		}
		return true, nil
	}
	return false, nil
}

func newLoopError(chain *Chain, dir Direction, seedID FragmentID, reason LoopReason) error {
	return &RouteLoopError{
		Key:       chain.First().Key(),
		SeedID:    seedID,
		Direction: dir,
		Reason:    reason,
		Tail:      chain.Tail(loopTailSize),
	}
}
