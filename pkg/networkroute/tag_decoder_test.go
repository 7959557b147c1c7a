package networkroute

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRouteKeys(t *testing.T) {
	testCases := []struct {
		name string
		tags map[string]string
		want []RouteKey
	}{
		{
			name: "no route groups",
			tags: map[string]string{"highway": "path", "name": "Waldweg", "route_hiking_name": "x"},
			want: []RouteKey{},
		},
		{
			name: "three hiking groups stay scoped",
			tags: map[string]string{
				"route_hiking_1":      "",
				"route_hiking_1_name": "Rheinsteig",
				"route_hiking_2":      "",
				"route_hiking_2_name": "Westerwaldsteig",
				"route_hiking_2_ref":  "WW",
				"route_hiking_3":      "",
				"route_hiking_3_osmc": "red:white:red_bar",
			},
			want: []RouteKey{
				NewRouteKey(HIKING, "route_hiking_", "route_hiking__name__Rheinsteig"),
				NewRouteKey(HIKING, "route_hiking_", "route_hiking__name__Westerwaldsteig", "route_hiking__ref__WW"),
				NewRouteKey(HIKING, "route_hiking_", "route_hiking__osmc__red:white:red_bar"),
			},
		},
		{
			name: "non-empty group value becomes a pair",
			tags: map[string]string{"route_mtb_1": "yes"},
			want: []RouteKey{NewRouteKey(MTB, "route_mtb___yes")},
		},
		{
			name: "only exact numbered tags count",
			tags: map[string]string{
				"route_hiking_12extra": "x",
				"route_hiking_0":       "",
				"route_hiking_01":      "",
				"route_hiking_-1":      "",
				"route_hiking_":        "",
			},
			want: []RouteKey{},
		},
		{
			name: "missing lower group gives an empty key",
			tags: map[string]string{"route_horse_2": "", "route_horse_2_name": "Reitweg"},
			want: []RouteKey{
				NewRouteKey(HORSE),
				NewRouteKey(HORSE, "route_horse_", "route_horse__name__Reitweg"),
			},
		},
		{
			name: "type order then group order",
			tags: map[string]string{
				"route_bicycle_1":     "",
				"route_bicycle_1_ref": "D9",
				"route_hiking_1":      "",
				"route_hiking_1_ref":  "E1",
			},
			want: []RouteKey{
				NewRouteKey(HIKING, "route_hiking_", "route_hiking__ref__E1"),
				NewRouteKey(BICYCLE, "route_bicycle_", "route_bicycle__ref__D9"),
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeRouteKeys(tt.tags))
		})
	}
}

func TestDecodeRouteKeysTwoDigitGroups(t *testing.T) {
	tags := map[string]string{}
	for i := 1; i <= 12; i++ {
		tags[HIKING.TagPrefix()+strconv.Itoa(i)] = ""
	}
	tags["route_hiking_1_name"] = "one"
	tags["route_hiking_10_name"] = "ten"
	tags["route_hiking_12_name"] = "twelve"

	testCases := []struct {
		name    string
		decoder TagDecoder
		group1  RouteKey
	}{
		{
			name:    "prefix scan collects groups 10 and 12 into group 1",
			decoder: TagDecoder{},
			group1: NewRouteKey(HIKING, "route_hiking_", "route_hiking_0", "route_hiking_1", "route_hiking_2",
				"route_hiking__name__one", "route_hiking_0_name__ten", "route_hiking_2_name__twelve"),
		},
		{
			name:    "exact groups",
			decoder: TagDecoder{ExactGroups: true},
			group1:  NewRouteKey(HIKING, "route_hiking_", "route_hiking__name__one"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			keys := tc.decoder.Decode(tags)
			require.Len(t, keys, 12)
			assert.Equal(t, tc.group1, keys[0])
			assert.Equal(t, NewRouteKey(HIKING, "route_hiking_", "route_hiking__name__ten"), keys[9])
			assert.Equal(t, NewRouteKey(HIKING, "route_hiking_", "route_hiking__name__twelve"), keys[11])
		})
	}

	assert.Equal(t, TagDecoder{}.Decode(tags), DecodeRouteKeys(tags))
}

func TestMergeTags(t *testing.T) {
	names := map[string]string{"route_hiking_1_name": "old", "name": "Weg"}
	additional := map[string]string{"route_hiking_1": ""}
	direct := map[string]string{"route_hiking_1_name": "new"}

	merged := MergeTags(names, additional, direct)
	assert.Equal(t, map[string]string{
		"route_hiking_1_name": "new",
		"name":                "Weg",
		"route_hiking_1":      "",
	}, merged)
	assert.Equal(t, "old", names["route_hiking_1_name"])
}
