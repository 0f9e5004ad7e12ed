package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	ferrors "github.com/hotelzululima/flashback/pkg/errors"
	"github.com/hotelzululima/flashback/pkg/pipeline"
)

// Cache backends accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the optional TOML configuration. Command-line flags override it.
type Config struct {
	// Mode is the default output mode: "svg" or "js".
	Mode  string      `toml:"mode"`
	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	MongoURI  string        `toml:"mongo_uri"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
	// MaxBody limits request bodies, in bytes.
	MaxBody int64 `toml:"max_body"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Mode: pipeline.DefaultMode,
		Cache: CacheConfig{
			Backend:   backendFile,
			TTL:       7 * 24 * time.Hour,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Serve: ServeConfig{
			Addr:    ":8080",
			MaxBody: 32 << 20,
		},
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// selects the default location, which may be missing.
func LoadConfig(path string, logger *log.Logger) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configFile(); err != nil {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String(), "file", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("loaded config", "file", path, "mode", cfg.Mode, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if err := ferrors.ValidateMode(c.Mode); err != nil {
		return err
	}
	c.Mode = strings.ToLower(c.Mode)
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendMongo, backendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid cache ttl: %s", c.Cache.TTL)
	}
	return nil
}
