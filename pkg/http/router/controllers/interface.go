package controllers

import (
	"context"

	"github.com/lintang-b-s/trailnet/pkg/geo"
	"github.com/lintang-b-s/trailnet/pkg/http/usecases"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/track"
)

type NetworkRouteService interface {
	FindRoutes(ctx context.Context, lat, lon float64, types []nr.RouteType) (usecases.NetworkRoutes, error)
	FindNearestRoute(ctx context.Context, lat, lon float64) (track.Track, error)
	FindRoutesBatch(ctx context.Context, points []geo.Coordinate, types []nr.RouteType) []usecases.BatchItem
}
