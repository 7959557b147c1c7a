package track

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkrajina/gpxgo/gpx"
	"github.com/twpayne/go-polyline"
)

func pt(lat, lon float64) nr.Point31 {
	return nr.NewPoint31(geo.Get31TileNumberX(lon), geo.Get31TileNumberY(lat))
}

func testRoute(key nr.RouteKey) nr.Route {
	return nr.Route{
		Key:    key,
		SeedID: 42,
		Segments: [][]nr.Point31{
			{pt(50.0, 7.0), pt(50.001, 7.001)},
			{pt(50.001, 7.001), pt(50.002, 7.002), pt(50.003, 7.003)},
		},
	}
}

func TestFromRoute(t *testing.T) {
	key := nr.NewRouteKey(nr.HIKING, "route_hiking_", "route_hiking__name__Rheinsteig")
	tr := FromRoute(testRoute(key))

	require.Len(t, tr.Segments, 2)
	assert.Equal(t, 5, tr.PointCount())
	assert.InDelta(t, 50.0, tr.Segments[0][0].Lat, 1e-6)
	assert.InDelta(t, 7.0, tr.Segments[0][0].Lon, 1e-6)
	assert.InDelta(t, 50.003, tr.Segments[1][2].Lat, 1e-6)

	// three 0.001 degree diagonal steps at 50N
	assert.InDelta(t, 3*geo.CalculateHaversineDistance(50.0, 7.0, 50.001, 7.001), tr.Length(), 1e-3)
}

func TestDistanceTo(t *testing.T) {
	tr := FromRoute(testRoute(nr.NewRouteKey(nr.HIKING)))

	assert.InDelta(t, 0, tr.DistanceTo(geo.NewCoordinate(50.0015, 7.0015)), 1.0)
	// west of the first point, the track heads north east
	d := tr.DistanceTo(geo.NewCoordinate(50.0, 6.999))
	assert.Greater(t, d, 40.0)
	assert.Less(t, d, 80.0)

	assert.True(t, math.IsInf(Track{}.DistanceTo(geo.NewCoordinate(0, 0)), 1))
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		key  nr.RouteKey
		want string
	}{
		{
			name: "name attribute",
			key:  nr.NewRouteKey(nr.HIKING, "route_hiking__name__Rheinsteig", "route_hiking__ref__RS"),
			want: "Rheinsteig",
		},
		{
			name: "ref fallback",
			key:  nr.NewRouteKey(nr.BICYCLE, "route_bicycle__ref__R8"),
			want: "R8",
		},
		{
			name: "seed id fallback",
			key:  nr.NewRouteKey(nr.MTB, "route_mtb_"),
			want: "mtb route 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromRoute(testRoute(tt.key)).Name())
		})
	}
}

func TestToGPX(t *testing.T) {
	key := nr.NewRouteKey(nr.HIKING, "route_hiking__name__Rheinsteig")
	data, err := ToGPX([]Track{FromRoute(testRoute(key))})
	require.NoError(t, err)

	doc, err := gpx.ParseBytes(data)
	require.NoError(t, err)
	require.Len(t, doc.Tracks, 1)
	assert.Equal(t, "Rheinsteig", doc.Tracks[0].Name)
	require.Len(t, doc.Tracks[0].Segments, 2)
	assert.Len(t, doc.Tracks[0].Segments[1].Points, 3)
	assert.InDelta(t, 50.001, doc.Tracks[0].Segments[1].Points[0].Latitude, 1e-6)
}

func TestToGeoJSON(t *testing.T) {
	key := nr.NewRouteKey(nr.HORSE, "route_horse__name__Reitweg")
	fc := ToGeoJSON([]Track{FromRoute(testRoute(key)), FromRoute(testRoute(key))})
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	mls, ok := f.Geometry.(orb.MultiLineString)
	require.True(t, ok)
	require.Len(t, mls, 2)
	assert.InDelta(t, 7.0, mls[0][0].Lon(), 1e-6)
	assert.InDelta(t, 50.0, mls[0][0].Lat(), 1e-6)
	assert.Equal(t, "horse", f.Properties["type"])
	assert.Equal(t, "Reitweg", f.Properties["name"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, decoded.Features, 2)
}

func TestEncodePolylines(t *testing.T) {
	tr := FromRoute(testRoute(nr.NewRouteKey(nr.BICYCLE)))
	encoded := EncodePolylines(tr)
	require.Len(t, encoded, 2)

	coords, _, err := polyline.DecodeCoords([]byte(encoded[1]))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 50.002, coords[1][0], 1e-5)
	assert.InDelta(t, 7.002, coords[1][1], 1e-5)
}
