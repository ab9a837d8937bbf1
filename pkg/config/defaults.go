package config

import (
	"time"

	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/verify"
)

// Default values.
const (
	DefaultServerAddr    = ":8080"
	DefaultReadTimeout   = 30 * time.Second
	DefaultMaxBodyBytes  = 4 << 20
	DefaultCacheTTL      = 24 * time.Hour
	DefaultMongoDatabase = "placard"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Radius:    layout.DefaultCornerRadius,
			FontMin:   layout.DefaultFontRange.Min,
			FontMax:   layout.DefaultFontRange.Max,
			FontStep:  layout.DefaultFontRange.Step,
			FontFloor: verify.DefaultFontFloor,
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			MongoDatabase: DefaultMongoDatabase,
			TTL:           Duration{DefaultCacheTTL},
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			ReadTimeout:  Duration{DefaultReadTimeout},
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}
