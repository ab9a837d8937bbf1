// Package config loads placard.toml.
//
// A configuration file is optional. When none is found every field takes
// its default; when one is found its values are layered over the defaults,
// then PLACARD_* environment variables are applied and the result is
// validated.
//
//	[layout]
//	canvas = "widescreen"
//	radius = 120000
//	font_min = 800
//	font_max = 1800
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/geom"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/verify"
)

const (
	// FileName is the configuration file name.
	FileName = "placard.toml"

	// DirName is the directory below the user config dir.
	DirName = "placard"
)

// Environment overrides.
const (
	EnvCacheBackend = "PLACARD_CACHE_BACKEND"
	EnvCacheDir     = "PLACARD_CACHE_DIR"
	EnvRedisAddr    = "PLACARD_REDIS_ADDR"
	EnvMongoURI     = "PLACARD_MONGO_URI"
	EnvServerAddr   = "PLACARD_SERVER_ADDR"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendNull  = "null"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Canvas presets accepted in [layout].
const (
	CanvasStandard   = "standard"
	CanvasWidescreen = "widescreen"
)

// Config is the full configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig tunes the layout engine and the layout validator.
type LayoutConfig struct {
	// Canvas forces a canvas preset. Empty keeps the definition's canvas.
	Canvas    string `toml:"canvas"`
	Radius    int    `toml:"radius"`
	FontMin   int    `toml:"font_min"`
	FontMax   int    `toml:"font_max"`
	FontStep  int    `toml:"font_step"`
	FontFloor int    `toml:"font_floor"`
	NoShadow  bool   `toml:"no_shadow"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `placard serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as "30s" or "24h" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/placard/placard.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Load reads the configuration from path. An empty path looks in
// DefaultPath and falls back to defaults when no file exists there; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return finish(DefaultConfig())
		}
		path = p
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
			return finish(DefaultConfig())
		}
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	ApplyEnv(cfg, os.LookupEnv)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath decodes the file at path over DefaultConfig. It does not
// apply environment overrides or validate.
func LoadFromPath(path string) (*Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data over DefaultConfig. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys").WithSubjects(keys...)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with PLACARD_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Cache.Backend, EnvCacheBackend)
	set(&cfg.Cache.Dir, EnvCacheDir)
	set(&cfg.Cache.RedisAddr, EnvRedisAddr)
	set(&cfg.Cache.MongoURI, EnvMongoURI)
	set(&cfg.Server.Addr, EnvServerAddr)
}

// Validate checks cfg for consistency.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config is nil")
	}

	l := cfg.Layout
	switch l.Canvas {
	case "", CanvasStandard, CanvasWidescreen:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "layout.canvas must be %q or %q", CanvasStandard, CanvasWidescreen).WithSubjects(l.Canvas)
	}
	if l.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.radius must be non-negative")
	}
	if l.FontMin <= 0 || l.FontMax <= 0 || l.FontStep <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout font sizes must be positive")
	}
	if l.FontMin > l.FontMax {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.font_min (%d) exceeds layout.font_max (%d)", l.FontMin, l.FontMax)
	}
	if l.FontFloor < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.font_floor must be non-negative")
	}

	c := cfg.Cache
	switch c.Backend {
	case BackendFile, BackendNull:
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend").WithSubjects(c.Backend)
	}
	if c.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be non-negative")
	}

	if cfg.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// LayoutOptions converts the [layout] section to engine options.
func (l LayoutConfig) LayoutOptions() layout.Options {
	opts := layout.Options{
		CornerRadius: l.Radius,
		Font:         layout.FontRange{Min: l.FontMin, Max: l.FontMax, Step: l.FontStep},
		NoShadow:     l.NoShadow,
	}
	switch l.Canvas {
	case CanvasStandard:
		opts.Canvas = geom.CanvasStandard
	case CanvasWidescreen:
		opts.Canvas = geom.CanvasWidescreen
	}
	opts.SetDefaults()
	return opts
}

// VerifyOptions converts the [layout] section to layout validator options.
func (l LayoutConfig) VerifyOptions() verify.Options {
	return verify.Options{FontFloor: l.FontFloor}
}
