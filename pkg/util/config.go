package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig loads config.yaml from configPath (if present), then lets environment
// variables override every key.
func ReadConfig(configPath string) error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetConfigDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("ROUTE_MAX_ITERATIONS", 8192)
	viper.SetDefault("ROUTE_FAILURE_POLICY", "isolate")
	viper.SetDefault("ROUTE_ALLOW_CLOSED_RINGS", false)
	viper.SetDefault("ROUTE_TYPES", "")

	viper.SetDefault("TILE_ZOOM", 15)
	viper.SetDefault("TILE_CACHE_SIZE", 4096)
	viper.SetDefault("BATCH_WORKERS", 4)
}

// SplitList splits a comma separated config value, dropping empty items.
func SplitList(s string) []string {
	items := make([]string, 0)
	for _, it := range strings.Split(s, ",") {
		it = strings.TrimSpace(it)
		if it != "" {
			items = append(items, it)
		}
	}
	return items
}
