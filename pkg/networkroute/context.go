package networkroute

import "context"

// SpatialRouteContext is the spatial index of route fragments the selector grows
// routes from. returned views belong to the caller.
type SpatialRouteContext interface {
	// FragmentsAtTile returns every fragment indexed in the tile containing the
	// 31-bit point (x31, y31).
	FragmentsAtTile(ctx context.Context, x31, y31 int32) ([]FragmentView, error)
	// FragmentsAtPoint returns every fragment with a connection endpoint at the
	// encoded point.
	FragmentsAtPoint(ctx context.Context, point int64) ([]FragmentView, error)
}
