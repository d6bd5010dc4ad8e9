package config

import (
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vango-dev/ssrgoods/internal/errors"
	"github.com/vango-dev/ssrgoods/internal/logging"
	"github.com/vango-dev/ssrgoods/pkg/assets"
	"github.com/vango-dev/ssrgoods/pkg/loader"
)

const (
	// ConfigName is the config file base name; .json, .yaml and .yml are found.
	ConfigName = "ssrgoods"

	// EnvPrefix prefixes every environment variable, e.g. SSR_SERVER_PORT.
	EnvPrefix = "SSR"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultEndpoint is the demo data source.
	DefaultEndpoint = "https://www.easy-mock.com/mock/5b10ebe6b0cb5c4510cddf25/ssr/goods"

	// DefaultBundle is the client bundle name.
	DefaultBundle = "bundle.js"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Source  SourceConfig  `mapstructure:"source"`
	Page    PageConfig    `mapstructure:"page"`
	Static  StaticConfig  `mapstructure:"static"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`

	// configPath stores the file the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// Host is the interface to bind ("" binds all).
	Host string `mapstructure:"host"`

	// Port is the TCP port (default: 3000).
	Port int `mapstructure:"port"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
}

// SourceConfig contains remote data source settings.
type SourceConfig struct {
	// Endpoint is the absolute URL answering {"data":{"list":[...]}}.
	Endpoint string `mapstructure:"endpoint"`

	// Timeout bounds one fetch. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxBodyBytes is the largest response body accepted.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// PageConfig contains page document settings.
type PageConfig struct {
	Title  string `mapstructure:"title"`
	Bundle string `mapstructure:"bundle"`
}

// StaticConfig contains asset serving settings.
// The bundle is served from S3 when S3.Bucket is set, else from Dir when
// set, else from the bundle compiled into the binary.
type StaticConfig struct {
	Dir          string   `mapstructure:"dir"`
	Prefix       string   `mapstructure:"prefix"`
	CacheControl string   `mapstructure:"cache_control"`
	S3           S3Config `mapstructure:"s3"`
}

// S3Config contains S3 asset source settings.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Name    string `mapstructure:"name"`
}

// defaults lists every key with its default value.
var defaults = map[string]any{
	"server.host":                "",
	"server.port":                DefaultPort,
	"server.shutdown_timeout":    10 * time.Second,
	"server.read_header_timeout": 5 * time.Second,

	"source.endpoint":       DefaultEndpoint,
	"source.timeout":        time.Duration(0),
	"source.max_body_bytes": loader.DefaultMaxBodyBytes,

	"page.title":  "Goods",
	"page.bundle": DefaultBundle,

	"static.dir":           "",
	"static.prefix":        "/",
	"static.cache_control": assets.CacheControlNone,
	"static.s3.bucket":     "",
	"static.s3.region":     "us-east-1",
	"static.s3.endpoint":   "",
	"static.s3.prefix":     "",
	"static.s3.path_style": false,

	"log.level":  "info",
	"log.format": "auto",

	"metrics.enabled":   true,
	"metrics.namespace": "ssr",

	"tracing.enabled": true,
	"tracing.name":    "ssrgoods",
}

// FlagKeys maps CLI flag names to config keys.
var FlagKeys = map[string]string{
	"host":          "server.host",
	"port":          "server.port",
	"endpoint":      "source.endpoint",
	"fetch-timeout": "source.timeout",
	"title":         "page.title",
	"bundle":        "page.bundle",
	"static-dir":    "static.dir",
	"cache-control": "static.cache_control",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string

	// Dir is searched for ssrgoods.{json,yaml,yml} when ConfigFile is empty
	// (default: ".").
	Dir string

	// EnvFiles are loaded into the environment before reading it.
	// Earlier files win. Missing files are skipped.
	// Default: .env.local, .env in Dir.
	EnvFiles []string

	// Flags are bound by name through FlagKeys. Only changed flags override.
	Flags *pflag.FlagSet
}

// New creates a Config with default values.
func New() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration from, lowest to highest precedence: defaults,
// the config file, .env files, SSR_* environment variables and flags.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{filepath.Join(dir, ".env.local"), filepath.Join(dir, ".env")}
	}
	loadEnvFiles(envFiles)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.New(errors.CodeConfigFile).WithDetail(opts.ConfigFile).Wrap(err)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(errors.CodeConfigParse).WithDetail(opts.ConfigFile).Wrap(err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.New(errors.CodeConfigParse).WithDetail(v.ConfigFileUsed()).Wrap(err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.New(errors.CodeConfigParse).WithDetailf("flag --%s", name).Wrap(err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set.
func loadEnvFiles(files []string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Path returns the config file that was loaded, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New(errors.CodeInvalidPort).
			WithDetailf("server.port %d", c.Server.Port)
	}
	if err := loader.ValidateEndpoint(c.Source.Endpoint); err != nil {
		return err
	}
	if c.Source.Timeout < 0 {
		return invalid("source.timeout must not be negative")
	}
	if c.Source.MaxBodyBytes <= 0 {
		return invalid("source.max_body_bytes must be positive")
	}
	if c.Server.ShutdownTimeout < 0 || c.Server.ReadHeaderTimeout < 0 {
		return invalid("server timeouts must not be negative")
	}
	if strings.TrimSpace(c.Page.Bundle) == "" {
		return invalid("page.bundle must not be empty")
	}
	if !assets.ValidCacheControl(c.Static.CacheControl) {
		return invalid(`static.cache_control must be "none" or "production", got %q`, c.Static.CacheControl)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return invalid("log.level %q is not a level", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return invalid(`log.format must be "auto", "console" or "json", got %q`, c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.CodeInvalidOption).WithDetailf(format, args...)
}

// Address returns the listen address, e.g. ":3000".
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
