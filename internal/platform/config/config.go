package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the deployment-provided configuration of the trip proxy.
type Config struct {
	Port string

	UpstreamURL     string
	UpstreamTimeout time.Duration

	CacheTTL time.Duration

	// ServeFreshOnSuccess and CacheOnSuccess default to off, reproducing
	// the source service's observed behavior (fallback served and cache
	// write skipped even on a successful upstream call).
	ServeFreshOnSuccess bool
	CacheOnSuccess      bool
	CoalesceRequests    bool

	// StorageBackend selects the fallback document store: "file" or "postgres".
	StorageBackend string
	FallbackPath   string
	PlacesPath     string
	DatabaseURL    string
}

func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "5005"),
		UpstreamURL:     getenv("UPSTREAM_URL", "http://127.0.0.1:5000/trip"),
		UpstreamTimeout: 210 * time.Second,
		CacheTTL:        600 * time.Second,
		StorageBackend:  getenv("STORAGE_BACKEND", "file"),
		FallbackPath:    getenv("FALLBACK_PATH", "data/tempData.json"),
		PlacesPath:      getenv("PLACES_PATH", "data/himachal_places.json"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be a duration (e.g. 210s): %w", err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CACHE_TTL must be a duration (e.g. 600s): %w", err)
		}
		cfg.CacheTTL = d
	}

	var err error
	if cfg.ServeFreshOnSuccess, err = getenvBool("SERVE_FRESH_ON_SUCCESS", false); err != nil {
		return Config{}, err
	}
	if cfg.CacheOnSuccess, err = getenvBool("CACHE_ON_SUCCESS", false); err != nil {
		return Config{}, err
	}
	if cfg.CoalesceRequests, err = getenvBool("COALESCE_REQUESTS", false); err != nil {
		return Config{}, err
	}

	switch cfg.StorageBackend {
	case "file", "postgres":
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be \"file\" or \"postgres\", got %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", k, err)
	}
	return b, nil
}
