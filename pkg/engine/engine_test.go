package engine

import (
	"context"
	"testing"

	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/spatialindex"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigFromViper(t *testing.T) {
	testCases := []struct {
		name    string
		set     map[string]any
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				Selector:      nr.Config{MaxIterations: 8192, FailurePolicy: nr.IsolateRoute},
				TileZoom:      15,
				TileCacheSize: 4096,
			},
		},
		{
			name: "overrides",
			set: map[string]any{
				"ROUTE_FAILURE_POLICY":     "abort",
				"ROUTE_TYPES":              "hiking, horse",
				"ROUTE_ALLOW_CLOSED_RINGS": true,
				"TILE_ZOOM":                14,
			},
			want: Config{
				Selector:      nr.Config{MaxIterations: 8192, FailurePolicy: nr.AbortAll, AllowClosedRings: true},
				Types:         []nr.RouteType{nr.HIKING, nr.HORSE},
				TileZoom:      14,
				TileCacheSize: 4096,
			},
		},
		{name: "bad policy", set: map[string]any{"ROUTE_FAILURE_POLICY": "retry"}, wantErr: true},
		{name: "bad type", set: map[string]any{"ROUTE_TYPES": "car"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			util.SetConfigDefaults()
			for k, v := range tc.set {
				viper.Set(k, v)
			}

			got, err := ConfigFromViper()
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewEngineFromFragments(t *testing.T) {
	key := nr.NewRouteKey(nr.HIKING, "route_hiking_")
	a := nr.NewPoint31(1000, 1000)
	b := nr.NewPoint31(1000+1<<16, 1000)
	c := nr.NewPoint31(1000+2<<16, 1000)
	f1, err := nr.NewRouteFragment(1, key, []nr.Point31{a, b})
	require.NoError(t, err)
	f2, err := nr.NewRouteFragment(2, key, []nr.Point31{b, c})
	require.NoError(t, err)

	cfg := Config{Selector: nr.DefaultConfig(), TileZoom: spatialindex.DefaultTileZoom, TileCacheSize: 16}
	e, err := NewEngineFromFragments([]*nr.RouteFragment{f1, f2}, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, e.GetRouteIndex().Len())

	res, err := e.GetSelector().FindRoutes(context.Background(), a.X, a.Y)
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, []nr.FragmentID{1, 2}, res.Routes[0].FragmentIDs())

	_, err = NewEngineFromFragments(nil, Config{Selector: nr.DefaultConfig(), TileZoom: 0}, zap.NewNop())
	assert.Error(t, err)
}
