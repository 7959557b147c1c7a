package usecases

import (
	"context"

	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
)

type RouteSelector interface {
	FindRoutesFiltered(ctx context.Context, x31, y31 int32, filter *nr.Filter) (*nr.Result, error)
	FindNearestRoute(ctx context.Context, x31, y31 int32) (nr.Route, error)
}
