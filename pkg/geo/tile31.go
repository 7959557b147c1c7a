package geo

import (
	"math"

	"github.com/lintang-b-s/trailnet/pkg/util"
)

// 31-bit tile coordinates: the whole web-mercator world is a 2^31 x 2^31 grid,
// x grows eastwards from -180 and y grows southwards from the north pole limit.

const (
	tile31Size      = float64(1 << 31)
	maxMercatorLat  = 85.0511
	earthRadiusM    = 6378137.0
	earthCircumfM   = 2 * math.Pi * earthRadiusM
	metersPerUnitEq = earthCircumfM / tile31Size
)

func checkLatitude(lat float64) float64 {
	return math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
}

func checkLongitude(lon float64) float64 {
	for lon < -180 || lon > 180 {
		if lon < 0 {
			lon += 360
		} else {
			lon -= 360
		}
	}
	return lon
}

func Get31TileNumberX(lon float64) int32 {
	lon = checkLongitude(lon)
	x := (lon + 180.0) / 360.0 * tile31Size
	if x >= tile31Size {
		x = tile31Size - 1
	}
	return int32(x)
}

func Get31TileNumberY(lat float64) int32 {
	lat = checkLatitude(lat)
	latRad := util.DegreeToRadians(lat)
	eval := math.Log(math.Tan(latRad) + 1/math.Cos(latRad))
	if eval > math.Pi {
		eval = math.Pi
	}
	y := (1 - eval/math.Pi) / 2 * tile31Size
	if y >= tile31Size {
		y = tile31Size - 1
	}
	return int32(y)
}

func Get31LongitudeX(x int32) float64 {
	return float64(x)/tile31Size*360.0 - 180.0
}

func Get31LatitudeY(y int32) float64 {
	n := math.Pi - 2.0*math.Pi*float64(y)/tile31Size
	return util.RadiansToDegree(math.Atan(math.Sinh(n)))
}

// TileNumber returns the tile (at zoom) containing the 31-bit point.
func TileNumber(x31, y31 int32, zoom int) (int32, int32) {
	shift := uint(31 - zoom)
	return x31 >> shift, y31 >> shift
}

// TileBounds returns the inclusive 31-bit bounds of tile (tx, ty) at zoom.
func TileBounds(tx, ty int32, zoom int) (minX, minY, maxX, maxY int32) {
	shift := uint(31 - zoom)
	minX = tx << shift
	minY = ty << shift
	maxX = minX + (1 << shift) - 1
	maxY = minY + (1 << shift) - 1
	return
}

// SquareDist31TileMetric. squared ground distance in m^2 between two 31-bit points,
// scaled with the mercator factor at the latitude of the first point.
// only meant for comparisons.
func SquareDist31TileMetric(x1, y1, x2, y2 int32) float64 {
	scale := metersPerUnitEq * math.Cos(util.DegreeToRadians(Get31LatitudeY(y1)))
	dx := float64(x1-x2) * scale
	dy := float64(y1-y2) * scale
	return dx*dx + dy*dy
}
