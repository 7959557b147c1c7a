package track

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
)

// Track is a network route in degrees: one coordinate segment per route fragment.
type Track struct {
	Key      nr.RouteKey
	SeedID   nr.FragmentID
	Segments [][]geo.Coordinate
}

func FromRoute(route nr.Route) Track {
	segments := make([][]geo.Coordinate, 0, len(route.Segments))
	for _, seg := range route.Segments {
		coords := make([]geo.Coordinate, 0, len(seg))
		for _, p := range seg {
			coords = append(coords, geo.NewCoordinateFrom31(p.X, p.Y))
		}
		segments = append(segments, coords)
	}
	return Track{
		Key:      route.Key,
		SeedID:   route.SeedID,
		Segments: segments,
	}
}

func FromResult(res *nr.Result) []Track {
	tracks := make([]Track, 0, len(res.Routes))
	for _, route := range res.Routes {
		tracks = append(tracks, FromRoute(route))
	}
	return tracks
}

// Name. the route's name, falling back to its ref and then to the seed fragment id.
func (t Track) Name() string {
	if name, ok := t.Key.Value("name"); ok && name != "" {
		return name
	}
	if ref, ok := t.Key.Value("ref"); ok && ref != "" {
		return ref
	}
	return fmt.Sprintf("%s route %d", t.Key.Type(), t.SeedID)
}

// Length. total length of the track in km
func (t Track) Length() float64 {
	length := 0.0
	for _, seg := range t.Segments {
		length += geo.PolylineLength(seg)
	}
	return length
}

func (t Track) PointCount() int {
	n := 0
	for _, seg := range t.Segments {
		n += len(seg)
	}
	return n
}

// DistanceTo. smallest distance in meters from c to the track
func (t Track) DistanceTo(c geo.Coordinate) float64 {
	best := math.Inf(1)
	for _, seg := range t.Segments {
		best = math.Min(best, geo.PointPolylineDistance(seg, c))
	}
	return best
}
