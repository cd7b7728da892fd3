// Package env loads runtime configuration for the simulation binaries,
// optionally seeded from a .env file.
package env

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment holds the runtime configuration of the harbor simulation.
type Environment struct {
	// TickInterval is how often the net is ticked.
	TickInterval time.Duration
	// RunFor bounds the simulation runtime; zero means run until
	// interrupted.
	RunFor time.Duration
	// ArrivalEvery is how often new ships try to dock.
	ArrivalEvery time.Duration
}

// LoadEnv reads the environment, falling back to defaults for unset keys.
// Malformed values are fatal.
func LoadEnv(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}
	return &Environment{
		TickInterval: durationEnv(logger, "HARBOR_TICK_INTERVAL", time.Second),
		RunFor:       durationEnv(logger, "HARBOR_RUN_FOR", 30*time.Second),
		ArrivalEvery: durationEnv(logger, "HARBOR_ARRIVAL_EVERY", time.Second),
	}
}

func durationEnv(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Fatal("invalid duration", zap.String("key", key), zap.Error(err))
	}
	return d
}
