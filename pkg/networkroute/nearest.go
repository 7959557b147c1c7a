package networkroute

import (
	"math"

	"github.com/lintang-b-s/trailnet/pkg/geo"
)

// NearestFragment picks the candidate whose first or last point is closest to
// (x, y). ties go to the earliest candidate.
func NearestFragment(candidates []FragmentView, x, y int32) (FragmentView, bool) {
	if len(candidates) == 0 {
		return FragmentView{}, false
	}
	nearest := candidates[0]
	minDistance := minEndpointDistance(x, y, nearest)
	for _, c := range candidates[1:] {
		d := minEndpointDistance(x, y, c)
		if d < minDistance {
			minDistance = d
			nearest = c
		}
	}
	return nearest, true
}

func minEndpointDistance(x, y int32, v FragmentView) float64 {
	first, last := v.FirstPoint(), v.LastPoint()
	return math.Min(geo.SquareDist31TileMetric(x, y, first.X, first.Y),
		geo.SquareDist31TileMetric(x, y, last.X, last.Y))
}
