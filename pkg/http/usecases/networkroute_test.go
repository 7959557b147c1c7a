package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/spatialindex"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSelector struct {
	routes  []nr.Route
	err     error
	queries [][2]int32
}

func (s *stubSelector) FindRoutesFiltered(ctx context.Context, x31, y31 int32, filter *nr.Filter) (*nr.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	routes := make([]nr.Route, 0, len(s.routes))
	for _, r := range s.routes {
		if filter.Accept(r.Key) {
			routes = append(routes, r)
		}
	}
	return &nr.Result{Routes: routes, Failures: []error{}}, nil
}

func (s *stubSelector) FindNearestRoute(ctx context.Context, x31, y31 int32) (nr.Route, error) {
	s.queries = append(s.queries, [2]int32{x31, y31})
	if s.err != nil {
		return nr.Route{}, s.err
	}
	return s.routes[0], nil
}

func stubRoutes() []nr.Route {
	seg := []nr.Point31{nr.NewPoint31(10, 10), nr.NewPoint31(20, 20)}
	return []nr.Route{
		{Key: nr.NewRouteKey(nr.HIKING, "route_hiking_"), SeedID: 1, Segments: [][]nr.Point31{seg}},
		{Key: nr.NewRouteKey(nr.BICYCLE, "route_bicycle_"), SeedID: 2, Segments: [][]nr.Point31{seg}},
		{Key: nr.NewRouteKey(nr.HIKING, "route_hiking__ref__X"), SeedID: 3, Segments: [][]nr.Point31{seg}},
	}
}

func TestFindRoutesTypeFilter(t *testing.T) {
	tests := []struct {
		name  string
		types []nr.RouteType
		want  []nr.FragmentID
	}{
		{name: "all types", types: nil, want: []nr.FragmentID{1, 2, 3}},
		{name: "hiking only", types: []nr.RouteType{nr.HIKING}, want: []nr.FragmentID{1, 3}},
		{name: "no match", types: []nr.RouteType{nr.HORSE}, want: []nr.FragmentID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewNetworkRouteService(zap.NewNop(), &stubSelector{routes: stubRoutes()}, 2)
			routes, err := svc.FindRoutes(context.Background(), 50, 7, tt.types)
			require.NoError(t, err)

			got := make([]nr.FragmentID, 0)
			for _, tr := range routes.Tracks {
				got = append(got, tr.SeedID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindRoutesErrors(t *testing.T) {
	loopErr := &nr.RouteLoopError{Reason: nr.LoopClosedRing}
	svc := NewNetworkRouteService(zap.NewNop(), &stubSelector{err: loopErr}, 1)
	_, err := svc.FindRoutes(context.Background(), 50, 7, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, nr.ErrRouteLoop)
	assert.Equal(t, util.ErrConflict, util.ErrorCode(err))

	ioErr := util.WrapErrorf(errors.New("disk"), util.ErrInternalServerError, "load")
	svc = NewNetworkRouteService(zap.NewNop(), &stubSelector{err: ioErr}, 1)
	_, err = svc.FindRoutes(context.Background(), 50, 7, nil)
	assert.Equal(t, util.ErrInternalServerError, util.ErrorCode(err))
}

func TestFindNearestRouteConvertsCoordinates(t *testing.T) {
	sel := &stubSelector{routes: stubRoutes()}
	svc := NewNetworkRouteService(zap.NewNop(), sel, 1)
	tr, err := svc.FindNearestRoute(context.Background(), 50.5, 7.25)
	require.NoError(t, err)

	assert.Equal(t, nr.FragmentID(1), tr.SeedID)
	require.Len(t, sel.queries, 1)
	assert.Equal(t, geo.Get31TileNumberX(7.25), sel.queries[0][0])
	assert.Equal(t, geo.Get31TileNumberY(50.5), sel.queries[0][1])
}

func TestFindRoutesBatchKeepsOrder(t *testing.T) {
	svc := NewNetworkRouteService(zap.NewNop(), &stubSelector{routes: stubRoutes()}, 3)
	points := []geo.Coordinate{
		geo.NewCoordinate(50, 7), geo.NewCoordinate(51, 8), geo.NewCoordinate(52, 9), geo.NewCoordinate(53, 10),
	}
	items := svc.FindRoutesBatch(context.Background(), points, []nr.RouteType{nr.BICYCLE})
	require.Len(t, items, len(points))
	for _, it := range items {
		require.NoError(t, it.Err)
		require.Len(t, it.Routes.Tracks, 1)
		assert.Equal(t, nr.FragmentID(2), it.Routes.Tracks[0].SeedID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items = svc.FindRoutesBatch(ctx, points, nil)
	for _, it := range items {
		assert.ErrorIs(t, it.Err, context.Canceled)
	}
}

func TestFindRoutesTypeFilterIgnoresLoopsOfOtherTypes(t *testing.T) {
	tx, ty := geo.TileNumber(geo.Get31TileNumberX(7.0), geo.Get31TileNumberY(50.0), spatialindex.DefaultTileZoom)
	minX, minY, _, _ := geo.TileBounds(tx, ty, spatialindex.DefaultTileZoom)
	pt := func(dx, dy int32) nr.Point31 { return nr.NewPoint31(minX+dx, minY+dy) }

	hiking := nr.NewRouteKey(nr.HIKING, "route_hiking_")
	bicycle := nr.NewRouteKey(nr.BICYCLE, "route_bicycle_")
	frags := []*nr.RouteFragment{}
	for _, f := range []struct {
		id  nr.FragmentID
		key nr.RouteKey
		pts []nr.Point31
	}{
		{id: 1, key: hiking, pts: []nr.Point31{pt(1000, 1000), pt(1100, 1000)}},
		{id: 2, key: bicycle, pts: []nr.Point31{pt(2000, 2000), pt(2100, 2000)}},
		{id: 3, key: bicycle, pts: []nr.Point31{pt(2100, 2000), pt(2100, 2100)}},
		{id: 4, key: bicycle, pts: []nr.Point31{pt(2100, 2100), pt(2000, 2000)}},
	} {
		frag, err := nr.NewRouteFragment(f.id, f.key, f.pts)
		require.NoError(t, err)
		frags = append(frags, frag)
	}

	index, err := spatialindex.NewRouteIndex(spatialindex.DefaultTileZoom, 16, zap.NewNop())
	require.NoError(t, err)
	index.Build(frags)

	lat, lon := geo.Get31LatitudeY(minY+500), geo.Get31LongitudeX(minX+500)

	for _, policy := range []nr.FailurePolicy{nr.AbortAll, nr.IsolateRoute} {
		t.Run(policy.String(), func(t *testing.T) {
			cfg := nr.DefaultConfig()
			cfg.FailurePolicy = policy
			selector, err := nr.NewSelector(index, cfg, zap.NewNop())
			require.NoError(t, err)
			svc := NewNetworkRouteService(zap.NewNop(), selector, 1)

			routes, err := svc.FindRoutes(context.Background(), lat, lon, []nr.RouteType{nr.HIKING})
			require.NoError(t, err)
			require.Len(t, routes.Tracks, 1)
			assert.Equal(t, nr.FragmentID(1), routes.Tracks[0].SeedID)
			assert.Empty(t, routes.Failures)

			_, err = svc.FindRoutes(context.Background(), lat, lon, nil)
			if policy == nr.AbortAll {
				assert.Equal(t, util.ErrConflict, util.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
