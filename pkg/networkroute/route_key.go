package networkroute

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// RouteKey identifies one logical route: its type plus the relation-level attributes
// of its tag group. the attribute set is stored in canonical (sorted, deduplicated) form,
// each attribute length-prefixed ("<len>:<attr>"), so two keys are equal with == iff
// type and attribute sets are equal whatever bytes the attributes hold.
type RouteKey struct {
	routeType  RouteType
	attributes string
}

func NewRouteKey(routeType RouteType, attributes ...string) RouteKey {
	attrs := make([]string, len(attributes))
	copy(attrs, attributes)
	slices.Sort(attrs)
	attrs = slices.Compact(attrs)
	return RouteKey{
		routeType:  routeType,
		attributes: encodeAttributes(attrs),
	}
}

func (k RouteKey) Type() RouteType {
	return k.routeType
}

// Attributes returns a sorted copy of the attribute set.
func (k RouteKey) Attributes() []string {
	return decodeAttributes(k.attributes)
}

func encodeAttributes(attrs []string) string {
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString(strconv.Itoa(len(a)))
		sb.WriteByte(':')
		sb.WriteString(a)
	}
	return sb.String()
}

func decodeAttributes(enc string) []string {
	attrs := make([]string, 0)
	for len(enc) > 0 {
		colon := strings.IndexByte(enc, ':')
		n, _ := strconv.Atoi(enc[:colon])
		enc = enc[colon+1:]
		attrs = append(attrs, enc[:n])
		enc = enc[n:]
	}
	return attrs
}

func (k RouteKey) Contains(attribute string) bool {
	_, found := slices.BinarySearch(k.Attributes(), attribute)
	return found
}

// Value returns the value of the "prefix + tag" attribute, e.g. Value("name").
func (k RouteKey) Value(tag string) (string, bool) {
	prefix := k.routeType.TagPrefix() + "_" + tag + routeKeyValueSeparator
	for _, attr := range k.Attributes() {
		if strings.HasPrefix(attr, prefix) {
			return attr[len(prefix):], true
		}
	}
	return "", false
}

func (k RouteKey) Equal(other RouteKey) bool {
	return k == other
}

func (k RouteKey) String() string {
	return fmt.Sprintf("Route [type=%s, set=[%s]]", k.routeType, strings.Join(k.Attributes(), ", "))
}
