package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/trailnet/pkg/engine"
	"github.com/lintang-b-s/trailnet/pkg/http"
	"github.com/lintang-b-s/trailnet/pkg/http/usecases"
	"github.com/lintang-b-s/trailnet/pkg/logger"
	"github.com/lintang-b-s/trailnet/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile    = flag.String("osm", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf, .osm or .osm.bz2)")
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := engine.ConfigFromViper()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	routeEngine, err := engine.NewEngine(ctx, *mapFile, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build network route engine", zap.Error(err))
	}

	networkRouteService := usecases.NewNetworkRouteService(logger, routeEngine.GetSelector(), viper.GetInt("BATCH_WORKERS"))

	api := http.NewServer(logger)
	if err := api.Use(ctx, networkRouteService); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Trailnet Network Route Server Stopped")
}
