package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/trailnet/pkg/engine"
	"github.com/lintang-b-s/trailnet/pkg/geo"
	"github.com/lintang-b-s/trailnet/pkg/logger"
	nr "github.com/lintang-b-s/trailnet/pkg/networkroute"
	"github.com/lintang-b-s/trailnet/pkg/track"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	mapFile    = flag.String("osm", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf, .osm or .osm.bz2)")
	lat        = flag.Float64("lat", 0, "latitude of the query point")
	lon        = flag.Float64("lon", 0, "longitude of the query point")
	outDir     = flag.String("out", "./gpx", "output directory for gpx files")
	types      = flag.String("types", "", "comma separated route types (hiking,bicycle,mtb,horse), empty for all")
	configPath = flag.String("config", ".", "directory holding config.yaml")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configPath); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("route selection failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg, err := engine.ConfigFromViper()
	if err != nil {
		return err
	}
	if *types != "" {
		cfg.Types, err = nr.ParseRouteTypes(util.SplitList(*types))
		if err != nil {
			return err
		}
	}

	routeEngine, err := engine.NewEngine(ctx, *mapFile, cfg, logger)
	if err != nil {
		return err
	}

	res, err := routeEngine.GetSelector().FindRoutes(ctx, geo.Get31TileNumberX(*lon), geo.Get31TileNumberY(*lat))
	if err != nil {
		return err
	}
	for _, f := range res.Failures {
		logger.Warn("route skipped", zap.Error(f))
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	for i, t := range track.FromResult(res) {
		i, t := i, t
		g.Go(func() error {
			data, err := track.ToGPX([]track.Track{t})
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%02d_%s_%s.gpx", i+1, t.Key.Type(), fileSafe(t.Name()))
			logger.Info("writing route",
				zap.String("file", name),
				zap.Int("fragments", len(t.Segments)),
				zap.Float64("length_km", util.RoundFloat(t.Length(), 3)))
			return os.WriteFile(filepath.Join(*outDir, name), data, 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("network routes exported", zap.Int("routes", len(res.Routes)), zap.String("out", *outDir))
	return nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
