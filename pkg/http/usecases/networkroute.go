package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/trailnet/pkg/concurrent"
	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/track"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"go.uber.org/zap"
)

// NetworkRoutes. routes found around one point, in seed order
type NetworkRoutes struct {
	Tracks   []track.Track
	Failures []error
}

type BatchItem struct {
	Routes NetworkRoutes
	Err    error
}

type NetworkRouteService struct {
	log          *zap.Logger
	selector     RouteSelector
	batchWorkers int
}

func NewNetworkRouteService(log *zap.Logger, selector RouteSelector, batchWorkers int) *NetworkRouteService {
	return &NetworkRouteService{
		log:          log,
		selector:     selector,
		batchWorkers: batchWorkers,
	}
}

// FindRoutes returns the network routes passing through the tile of (lat, lon).
// types restricts the route types, nil means every type.
func (rs *NetworkRouteService) FindRoutes(ctx context.Context, lat, lon float64, types []nr.RouteType) (NetworkRoutes, error) {
	x31, y31 := geo.Get31TileNumberX(lon), geo.Get31TileNumberY(lat)
	res, err := rs.selector.FindRoutesFiltered(ctx, x31, y31, nr.NewFilter(nil, types))
	if err != nil {
		return NetworkRoutes{}, translateSelectorError(err, lat, lon)
	}

	return NetworkRoutes{
		Tracks:   track.FromResult(res),
		Failures: res.Failures,
	}, nil
}

// FindNearestRoute returns the route grown from the fragment nearest to (lat, lon).
func (rs *NetworkRouteService) FindNearestRoute(ctx context.Context, lat, lon float64) (track.Track, error) {
	route, err := rs.selector.FindNearestRoute(ctx, geo.Get31TileNumberX(lon), geo.Get31TileNumberY(lat))
	if err != nil {
		return track.Track{}, translateSelectorError(err, lat, lon)
	}
	return track.FromRoute(route), nil
}

// FindRoutesBatch looks up every point on the worker pool, results keep the input order.
func (rs *NetworkRouteService) FindRoutesBatch(ctx context.Context, points []geo.Coordinate, types []nr.RouteType) []BatchItem {
	items := concurrent.RunOrdered(ctx, rs.batchWorkers, points, func(ctx context.Context, p geo.Coordinate) BatchItem {
		if util.StopConcurrentOperation(ctx) {
			return BatchItem{Err: ctx.Err()}
		}
		routes, err := rs.FindRoutes(ctx, p.Lat, p.Lon, types)
		return BatchItem{Routes: routes, Err: err}
	})
	rs.log.Debug("network route batch done", zap.Int("points", len(points)))
	return items
}

func translateSelectorError(err error, lat, lon float64) error {
	if errors.Is(err, nr.ErrRouteLoop) {
		return util.WrapErrorf(err, util.ErrConflict, "network route at %f,%f has a loop", lat, lon)
	}
	return err
}
