package networkroute

import (
	"strconv"
	"strings"
)

const routeKeyValueSeparator = "__"

// MergeTags flattens tag layers into one map. later layers win per key.
func MergeTags(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// TagDecoder turns a feature's merged tags into route keys.
type TagDecoder struct {
	// ExactGroups keeps group N from collecting the tags of groups whose number
	// starts with N (route_hiking_1 vs route_hiking_12_name). Off by default:
	// group N takes every tag starting with prefix<N>.
	ExactGroups bool
}

// DecodeRouteKeys decodes with the default prefix scan, see TagDecoder.
func DecodeRouteKeys(tags map[string]string) []RouteKey {
	return TagDecoder{}.Decode(tags)
}

// Decode extracts the route keys carried by a feature's merged tags,
// ordered by route type then by ascending group index.
func (d TagDecoder) Decode(tags map[string]string) []RouteKey {
	keys := make([]RouteKey, 0)
	for _, routeType := range AllRouteTypes() {
		quantity := routeQuantity(tags, routeType)
		for routeIdx := 1; routeIdx <= quantity; routeIdx++ {
			keys = append(keys, d.decodeRouteGroup(tags, routeType, routeIdx))
		}
	}
	return keys
}

// routeQuantity. highest N of an exact "prefix<N>" tag.
func routeQuantity(tags map[string]string, routeType RouteType) int {
	prefix := routeType.TagPrefix()
	q := 0
	for tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		if num, ok := parseGroupNumber(tag[len(prefix):]); ok && num > q {
			q = num
		}
	}
	return q
}

func parseGroupNumber(s string) (int, bool) {
	num, err := strconv.Atoi(s)
	if err != nil || num <= 0 || strconv.Itoa(num) != s {
		return 0, false
	}
	return num, true
}

func (d TagDecoder) decodeRouteGroup(tags map[string]string, routeType RouteType, routeIdx int) RouteKey {
	tagPrefix := routeType.TagPrefix()
	groupPrefix := tagPrefix + strconv.Itoa(routeIdx)

	attrs := make([]string, 0)
	for tag, value := range tags {
		if !strings.HasPrefix(tag, groupPrefix) {
			continue
		}
		rest := tag[len(groupPrefix):]
		if d.ExactGroups && rest != "" && isDigit(rest[0]) {
			continue
		}
		tagPart := tagPrefix + rest
		if value == "" {
			attrs = append(attrs, tagPart)
		} else {
			attrs = append(attrs, tagPart+routeKeyValueSeparator+value)
		}
	}
	return NewRouteKey(routeType, attrs...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
