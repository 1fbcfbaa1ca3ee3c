package cli

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/xui/pkg/cache"
	"github.com/matzehuels/xui/pkg/errors"
)

// configFile is read from the working directory when --config is not given.
const configFile = "xui.toml"

// Cache backends accepted in [cache] backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the contents of xui.toml. Zero values mean "use the default".
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Styles   StylesConfig   `toml:"styles"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// ViewportConfig sets the default viewport.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// StylesConfig lists stylesheets applied before the ones given with -s.
type StylesConfig struct {
	Base   []string `toml:"base"`
	NoBase bool     `toml:"no_base"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
	Scope     string `toml:"scope"`
}

// ServerConfig configures xui serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads path, or ./xui.toml when path is empty. A missing default
// file yields an empty config; a missing explicit file is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport must not be negative")
	}
	switch c.Cache.Backend {
	case "", backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if _, err := c.Cache.ttl(); err != nil {
		return err
	}
	return nil
}

// ttl returns the configured cache TTL, or zero for the defaults.
func (c CacheConfig) ttl() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache ttl %q must be a positive duration", c.TTL)
	}
	return d, nil
}

// open creates the configured cache. noCache wins over the config.
func (c CacheConfig) open(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		if strings.HasPrefix(c.RedisAddr, "redis://") || strings.HasPrefix(c.RedisAddr, "rediss://") {
			return cache.NewRedisCache(c.RedisAddr)
		}
		return cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: c.RedisAddr})), nil
	}
	dir, err := c.dir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// dir returns the file cache directory.
func (c CacheConfig) dir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return cache.DefaultDir()
}

// keyer returns the key scheme, prefixed with Scope when one is set.
func (c CacheConfig) keyer() cache.Keyer {
	if c.Scope == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Scope+":")
}
