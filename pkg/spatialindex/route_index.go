package spatialindex

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/trailnet/pkg/geo"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	DefaultTileZoom      = 15
	DefaultTileCacheSize = 4096
)

// RouteIndex is an in-memory spatial route context. fragments are indexed in an
// r-tree by bounding box (31-bit coords) for tile queries and by their two connection
// points for point queries. results keep insertion order.
//
// Insert is not safe to call concurrently with queries; build the index first.
type RouteIndex struct {
	zoom      int
	tr        *rtree.RTreeG[indexedFragment]
	points    map[int64][]indexedFragment
	count     int
	tileCache *lru.Cache[int64, []indexedFragment]
	log       *zap.Logger
}

type indexedFragment struct {
	seq  int
	frag *nr.RouteFragment
}

func NewRouteIndex(zoom, tileCacheSize int, log *zap.Logger) (*RouteIndex, error) {
	if zoom < 1 || zoom > 31 {
		return nil, fmt.Errorf("tile zoom must be within [1, 31], got %d", zoom)
	}
	tileCache, err := lru.New[int64, []indexedFragment](tileCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create tile cache: %w", err)
	}
	var tr rtree.RTreeG[indexedFragment]
	return &RouteIndex{
		zoom:      zoom,
		tr:        &tr,
		points:    make(map[int64][]indexedFragment),
		tileCache: tileCache,
		log:       log,
	}, nil
}

func (ri *RouteIndex) Zoom() int {
	return ri.zoom
}

func (ri *RouteIndex) Len() int {
	return ri.count
}

func (ri *RouteIndex) Insert(frag *nr.RouteFragment) {
	item := indexedFragment{seq: ri.count, frag: frag}
	ri.count++

	minX, minY, maxX, maxY := fragmentBounds(frag)
	ri.tr.Insert([2]float64{float64(minX), float64(minY)}, [2]float64{float64(maxX), float64(maxY)}, item)

	view := frag.View()
	start, end := view.StartPoint(), view.EndPoint()
	ri.points[start] = append(ri.points[start], item)
	if end != start {
		ri.points[end] = append(ri.points[end], item)
	}
	ri.tileCache.Purge()
}

// Build. insert every fragment, logging progress every 10%
func (ri *RouteIndex) Build(frags []*nr.RouteFragment) {
	ri.log.Info("Building network route spatial index...", zap.Int("fragments", len(frags)))
	step := len(frags) / 10
	for i, frag := range frags {
		ri.Insert(frag)
		if step > 0 && (i+1)%step == 0 {
			ri.log.Info("Building network route spatial index...",
				zap.Float64("progress", float64(i+1)/float64(len(frags))*100))
		}
	}
	ri.log.Info("Network route spatial index built.", zap.Int("fragments", ri.count),
		zap.Int("connectionPoints", len(ri.points)))
}

// FragmentsAtTile returns every fragment with at least one point inside the tile
// (at the index zoom) that contains (x31, y31).
func (ri *RouteIndex) FragmentsAtTile(ctx context.Context, x31, y31 int32) ([]nr.FragmentView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, ty := geo.TileNumber(x31, y31, ri.zoom)
	tileKey := nr.EncodePoint(tx, ty)

	items, ok := ri.tileCache.Get(tileKey)
	if !ok {
		items = ri.searchTile(tx, ty)
		ri.tileCache.Add(tileKey, items)
	}
	return toViews(items), nil
}

func (ri *RouteIndex) searchTile(tx, ty int32) []indexedFragment {
	minX, minY, maxX, maxY := geo.TileBounds(tx, ty, ri.zoom)
	items := make([]indexedFragment, 0)
	ri.tr.Search([2]float64{float64(minX), float64(minY)}, [2]float64{float64(maxX), float64(maxY)},
		func(min, max [2]float64, data indexedFragment) bool {
			if hasPointInside(data.frag, minX, minY, maxX, maxY) {
				items = append(items, data)
			}
			return true
		})
	sort.Slice(items, func(i, j int) bool {
		return items[i].seq < items[j].seq
	})
	return items
}

// FragmentsAtPoint returns every fragment that starts or ends at the encoded point.
func (ri *RouteIndex) FragmentsAtPoint(ctx context.Context, point int64) ([]nr.FragmentView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toViews(ri.points[point]), nil
}

func toViews(items []indexedFragment) []nr.FragmentView {
	views := make([]nr.FragmentView, len(items))
	for i, it := range items {
		views[i] = it.frag.View()
	}
	return views
}

func fragmentBounds(frag *nr.RouteFragment) (minX, minY, maxX, maxY int32) {
	p := frag.Point(0)
	minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
	for i := 1; i < frag.PointsLength(); i++ {
		p = frag.Point(i)
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return
}

func hasPointInside(frag *nr.RouteFragment, minX, minY, maxX, maxY int32) bool {
	for i := 0; i < frag.PointsLength(); i++ {
		p := frag.Point(i)
		if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
			return true
		}
	}
	return false
}
