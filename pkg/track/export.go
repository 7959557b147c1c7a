package track

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
	"github.com/twpayne/go-polyline"
)

const gpxCreator = "trailnet"

// ToGPX writes one gpx track per route with one trkseg per fragment.
func ToGPX(tracks []Track) ([]byte, error) {
	doc := gpx.GPX{
		Version: "1.1",
		Creator: gpxCreator,
		Tracks:  make([]gpx.GPXTrack, 0, len(tracks)),
	}
	for _, t := range tracks {
		gpxTrack := gpx.GPXTrack{
			Name:     t.Name(),
			Type:     t.Key.Type().String(),
			Segments: make([]gpx.GPXTrackSegment, 0, len(t.Segments)),
		}
		for _, seg := range t.Segments {
			points := make([]gpx.GPXPoint, 0, len(seg))
			for _, c := range seg {
				points = append(points, gpx.GPXPoint{
					Point: gpx.Point{
						Latitude:  c.Lat,
						Longitude: c.Lon,
					},
				})
			}
			gpxTrack.Segments = append(gpxTrack.Segments, gpx.GPXTrackSegment{Points: points})
		}
		doc.Tracks = append(doc.Tracks, gpxTrack)
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

// ToGeoJSON builds a FeatureCollection with a MultiLineString feature per route.
func ToGeoJSON(tracks []Track) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, t := range tracks {
		mls := make(orb.MultiLineString, 0, len(t.Segments))
		for _, seg := range t.Segments {
			ls := make(orb.LineString, 0, len(seg))
			for _, c := range seg {
				ls = append(ls, orb.Point{c.Lon, c.Lat})
			}
			mls = append(mls, ls)
		}

		f := geojson.NewFeature(mls)
		f.Properties["name"] = t.Name()
		f.Properties["type"] = t.Key.Type().String()
		f.Properties["attributes"] = t.Key.Attributes()
		f.Properties["seed_id"] = int64(t.SeedID)
		f.Properties["length_km"] = t.Length()
		fc.Append(f)
	}
	return fc
}

// EncodePolylines encodes every segment of the track as a google polyline.
func EncodePolylines(t Track) []string {
	encoded := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		coords := make([][]float64, 0, len(seg))
		for _, c := range seg {
			coords = append(coords, []float64{c.Lat, c.Lon})
		}
		encoded = append(encoded, string(polyline.EncodeCoords(coords)))
	}
	return encoded
}
