package http

import (
	"context"

	http_router "github.com/lintang-b-s/trailnet/pkg/http/router"
	"github.com/lintang-b-s/trailnet/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/trailnet/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use runs the api until ctx is canceled or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	networkRouteService controllers.NetworkRouteService,
) error {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimitConfig{
		Enabled: viper.GetBool("USE_RATE_LIMIT"),
		RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst:   viper.GetInt("RATE_LIMIT_BURST"),
	}

	api := http_router.NewAPI(s.Log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gCtx, config, rateLimit, networkRouteService)
	})
	return g.Wait()
}
