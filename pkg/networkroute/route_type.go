package networkroute

import (
	"fmt"
	"strings"
)

// RouteType. enum of waymarked network route types
type RouteType uint8

const (
	HIKING RouteType = iota
	BICYCLE
	MTB
	HORSE
)

var routeTypeNames = [...]string{
	HIKING:  "hiking",
	BICYCLE: "bicycle",
	MTB:     "mtb",
	HORSE:   "horse",
}

// AllRouteTypes returns every route type in enumeration order.
func AllRouteTypes() []RouteType {
	return []RouteType{HIKING, BICYCLE, MTB, HORSE}
}

func (rt RouteType) String() string {
	if int(rt) < len(routeTypeNames) {
		return routeTypeNames[rt]
	}
	return fmt.Sprintf("RouteType(%d)", uint8(rt))
}

// TagPrefix is the tag-group prefix of the route type, e.g. "route_hiking_".
func (rt RouteType) TagPrefix() string {
	return "route_" + rt.String() + "_"
}

func ParseRouteType(s string) (RouteType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range routeTypeNames {
		if name == s {
			return RouteType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown route type %q", s)
}

// ParseRouteTypes parses a list of route type names. nil input gives nil output.
func ParseRouteTypes(names []string) ([]RouteType, error) {
	if names == nil {
		return nil, nil
	}
	types := make([]RouteType, 0, len(names))
	for _, name := range names {
		rt, err := ParseRouteType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, nil
}
