package networkroute

// Filter narrows route keys by an allow-set of keys and an allow-set of types.
// a nil set means no restriction; both sets must pass.
type Filter struct {
	keyFilter  map[RouteKey]struct{}
	typeFilter map[RouteType]struct{}
}

// NewFilter. nil keys or nil types disable that restriction; an empty non-nil
// slice allows nothing.
func NewFilter(keys []RouteKey, types []RouteType) *Filter {
	f := &Filter{}
	if keys != nil {
		f.keyFilter = make(map[RouteKey]struct{}, len(keys))
		for _, k := range keys {
			f.keyFilter[k] = struct{}{}
		}
	}
	if types != nil {
		f.typeFilter = make(map[RouteType]struct{}, len(types))
		for _, t := range types {
			f.typeFilter[t] = struct{}{}
		}
	}
	return f
}

func (f *Filter) Accept(key RouteKey) bool {
	if f == nil {
		return true
	}
	if f.keyFilter != nil {
		if _, ok := f.keyFilter[key]; !ok {
			return false
		}
	}
	if f.typeFilter != nil {
		if _, ok := f.typeFilter[key.Type()]; !ok {
			return false
		}
	}
	return true
}

// Apply returns the keys that pass the filter, keeping their order.
func (f *Filter) Apply(keys []RouteKey) []RouteKey {
	if f == nil || (f.keyFilter == nil && f.typeFilter == nil) {
		return keys
	}
	filtered := make([]RouteKey, 0, len(keys))
	for _, k := range keys {
		if f.Accept(k) {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

// Convert decodes the route keys of a merged tag map and filters them.
func (f *Filter) Convert(tags map[string]string) []RouteKey {
	return f.Apply(DecodeRouteKeys(tags))
}
