package networkroute

import "errors"

// Route is one assembled route: its fragments head to tail and one point segment
// per fragment in traversal order.
type Route struct {
	Key       RouteKey
	SeedID    FragmentID
	Fragments []FragmentView
	Segments  [][]Point31
}

func newRoute(seed FragmentView, chain *Chain) Route {
	views := chain.Views()
	segments := make([][]Point31, 0, len(views))
	for _, v := range views {
		segments = append(segments, v.Points())
	}
	return Route{
		Key:       seed.Key(),
		SeedID:    seed.ID(),
		Fragments: views,
		Segments:  segments,
	}
}

func (r Route) FragmentIDs() []FragmentID {
	ids := make([]FragmentID, len(r.Fragments))
	for i, v := range r.Fragments {
		ids[i] = v.ID()
	}
	return ids
}

func (r Route) PointCount() int {
	n := 0
	for _, seg := range r.Segments {
		n += len(seg)
	}
	return n
}

type Result struct {
	// Routes in seed order. several routes may share a key.
	Routes []Route
	// Failures holds the *RouteLoopError of every route dropped under IsolateRoute.
	Failures []error
}

func newResult() *Result {
	return &Result{
		Routes:   make([]Route, 0),
		Failures: make([]error, 0),
	}
}

func (r *Result) ByKey() map[RouteKey][]Route {
	byKey := make(map[RouteKey][]Route, len(r.Routes))
	for _, route := range r.Routes {
		byKey[route.Key] = append(byKey[route.Key], route)
	}
	return byKey
}

// Keys returns the distinct route keys in first-seen order.
func (r *Result) Keys() []RouteKey {
	seen := make(map[RouteKey]struct{}, len(r.Routes))
	keys := make([]RouteKey, 0)
	for _, route := range r.Routes {
		if _, ok := seen[route.Key]; ok {
			continue
		}
		seen[route.Key] = struct{}{}
		keys = append(keys, route.Key)
	}
	return keys
}

// Err joins the recorded failures, nil when there are none.
func (r *Result) Err() error {
	return errors.Join(r.Failures...)
}
