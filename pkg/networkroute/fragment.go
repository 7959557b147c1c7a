package networkroute

import (
	"errors"
	"fmt"
)

type FragmentID int64

// Point31. point in 31-bit tile coordinates
type Point31 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func NewPoint31(x, y int32) Point31 {
	return Point31{X: x, Y: y}
}

// Encode packs the point into a single comparable connection-point key.
func (p Point31) Encode() int64 {
	return EncodePoint(p.X, p.Y)
}

func EncodePoint(x, y int32) int64 {
	return int64(x)<<31 + int64(y)
}

func DecodePoint(pnt int64) Point31 {
	return Point31{X: int32(pnt >> 31), Y: int32(pnt & (1<<31 - 1))}
}

// RouteFragment is one indexed polyline of a logical route. it is never mutated
// after construction and can be shared freely between queries.
type RouteFragment struct {
	id     FragmentID
	key    RouteKey
	points []Point31
}

var errEmptyFragment = errors.New("route fragment must have at least one point")

func NewRouteFragment(id FragmentID, key RouteKey, points []Point31) (*RouteFragment, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("fragment %d: %w", id, errEmptyFragment)
	}
	pts := make([]Point31, len(points))
	copy(pts, points)
	return &RouteFragment{
		id:     id,
		key:    key,
		points: pts,
	}, nil
}

func (f *RouteFragment) ID() FragmentID {
	return f.id
}

func (f *RouteFragment) Key() RouteKey {
	return f.key
}

func (f *RouteFragment) PointsLength() int {
	return len(f.points)
}

func (f *RouteFragment) Point(i int) Point31 {
	return f.points[i]
}

// View returns a forward traversal view over the whole fragment.
func (f *RouteFragment) View() FragmentView {
	return FragmentView{
		frag:  f,
		start: 0,
		end:   len(f.points) - 1,
	}
}

// FragmentView is a traversal of a fragment's active range [start, end]; start may be
// greater than end for a backward traversal. views are values: inverting one never
// affects another view of the same fragment.
type FragmentView struct {
	frag       *RouteFragment
	start, end int
}

func (v FragmentView) Fragment() *RouteFragment {
	return v.frag
}

func (v FragmentView) ID() FragmentID {
	return v.frag.id
}

func (v FragmentView) Key() RouteKey {
	return v.frag.key
}

func (v FragmentView) Start() int {
	return v.start
}

func (v FragmentView) End() int {
	return v.end
}

func (v FragmentView) Reversed() bool {
	return v.start > v.end
}

// Inverse returns the same active range traversed in the opposite direction.
func (v FragmentView) Inverse() FragmentView {
	return FragmentView{
		frag:  v.frag,
		start: v.end,
		end:   v.start,
	}
}

func (v FragmentView) FirstPoint() Point31 {
	return v.frag.points[v.start]
}

func (v FragmentView) LastPoint() Point31 {
	return v.frag.points[v.end]
}

// StartPoint is the encoded connection point of the first active point.
func (v FragmentView) StartPoint() int64 {
	return v.FirstPoint().Encode()
}

// EndPoint is the encoded connection point of the last active point.
func (v FragmentView) EndPoint() int64 {
	return v.LastPoint().Encode()
}

// Len. number of points in the active range, both ends included
func (v FragmentView) Len() int {
	if v.start > v.end {
		return v.start - v.end + 1
	}
	return v.end - v.start + 1
}

func (v FragmentView) ForEachPoint(fn func(p Point31)) {
	inc := 1
	if v.start > v.end {
		inc = -1
	}
	for i := v.start; ; i += inc {
		fn(v.frag.points[i])
		if i == v.end {
			break
		}
	}
}

// Points materializes the active range in traversal order.
func (v FragmentView) Points() []Point31 {
	pts := make([]Point31, 0, v.Len())
	v.ForEachPoint(func(p Point31) {
		pts = append(pts, p)
	})
	return pts
}

func (v FragmentView) String() string {
	return fmt.Sprintf("Fragment [id=%d, range=%d..%d, key=%s]", v.frag.id, v.start, v.end, v.frag.key)
}
