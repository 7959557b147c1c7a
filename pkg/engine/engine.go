package engine

import (
	"context"
	"fmt"

	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/osmparser"
	"github.com/lintang-b-s/trailnet/pkg/spatialindex"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Engine owns the route index built from an osm extract and the selector querying it.
type Engine struct {
	index    *spatialindex.RouteIndex
	selector *nr.Selector
}

func (e *Engine) GetRouteIndex() *spatialindex.RouteIndex {
	return e.index
}

func (e *Engine) GetSelector() *nr.Selector {
	return e.selector
}

type Config struct {
	Selector      nr.Config
	Types         []nr.RouteType
	TileZoom      int
	TileCacheSize int
}

// ConfigFromViper reads the ROUTE_* and TILE_* keys.
func ConfigFromViper() (Config, error) {
	policy, err := nr.ParseFailurePolicy(viper.GetString("ROUTE_FAILURE_POLICY"))
	if err != nil {
		return Config{}, util.WrapErrorf(err, util.ErrBadParamInput, "ROUTE_FAILURE_POLICY")
	}
	var types []nr.RouteType
	if names := util.SplitList(viper.GetString("ROUTE_TYPES")); len(names) > 0 {
		types, err = nr.ParseRouteTypes(names)
		if err != nil {
			return Config{}, util.WrapErrorf(err, util.ErrBadParamInput, "ROUTE_TYPES")
		}
	}
	return Config{
		Selector: nr.Config{
			MaxIterations:    viper.GetInt("ROUTE_MAX_ITERATIONS"),
			FailurePolicy:    policy,
			AllowClosedRings: viper.GetBool("ROUTE_ALLOW_CLOSED_RINGS"),
		},
		Types:         types,
		TileZoom:      viper.GetInt("TILE_ZOOM"),
		TileCacheSize: viper.GetInt("TILE_CACHE_SIZE"),
	}, nil
}

func NewEngine(ctx context.Context, mapFile string, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading network routes from ", zap.String("mapFile", mapFile))
	parser := osmparser.NewRouteParser(nr.NewFilter(nil, cfg.Types), logger)
	frags, err := parser.Parse(ctx, mapFile)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", mapFile, err)
	}
	return NewEngineFromFragments(frags, cfg, logger)
}

func NewEngineFromFragments(frags []*nr.RouteFragment, cfg Config, logger *zap.Logger) (*Engine, error) {
	index, err := spatialindex.NewRouteIndex(cfg.TileZoom, cfg.TileCacheSize, logger)
	if err != nil {
		return nil, err
	}
	index.Build(frags)

	selector, err := nr.NewSelector(index, cfg.Selector, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		index:    index,
		selector: selector,
	}, nil
}
