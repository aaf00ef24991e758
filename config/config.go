// config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/emailaddr/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment variable, e.g. EMAILADDR_LOG_LEVEL.
const EnvPrefix = "EMAILADDR"

// DBConfig groups connection settings for the optional database hosts.
// Empty values mean "not configured".
type DBConfig struct {
	PostgresDSN      string        `mapstructure:"postgres_dsn" json:"postgres_dsn"`
	SQLitePath       string        `mapstructure:"sqlite_path" json:"sqlite_path"`
	MongoURI         string        `mapstructure:"mongo_uri" json:"mongo_uri"`
	DBConnectTimeout time.Duration `mapstructure:"-" json:"db_connect_timeout"`
}

// Config holds emailctl settings.
type Config struct {
	Env      string `mapstructure:"env" json:"env"`             // "dev" | "prod"
	LogLevel string `mapstructure:"log_level" json:"log_level"` // debug, info, warn, error …

	// Strict turns on the stricter address grammar.
	Strict bool `mapstructure:"strict" json:"strict"`

	// Output is the result format: "text", "json", or "yaml".
	Output string `mapstructure:"output" json:"output"`

	DB DBConfig `mapstructure:",squash" json:"db"`
}

// Dump returns a pretty, redacted JSON string of the config for debugging.
func (c Config) Dump() string {
	b, _ := json.MarshalIndent(c.redactedCopy(), "", "  ")
	return string(b)
}

func (c Config) redactedCopy() Config {
	cp := c
	cp.DB.PostgresDSN = redact(cp.DB.PostgresDSN)
	cp.DB.MongoURI = redact(cp.DB.MongoURI)
	return cp
}

// redact hides everything between "://" and "@" (the userinfo of a URL).
func redact(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "REDACTED" + uri[at:]
}

// DefineFlags adds every config key to fs. Only flags the user sets
// override other sources.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String("env", "dev", `Runtime environment "dev"|"prod"`)
	fs.String("log_level", "warn", "Log level")
	fs.Bool("strict", false, "Apply the strict address grammar")
	fs.StringP("output", "o", "text", `Output format "text"|"json"|"yaml"`)
	fs.String("postgres_dsn", "", "PostgreSQL connection string (for pgcheck)")
	fs.String("sqlite_path", "", "SQLite database path")
	fs.String("mongo_uri", "", "MongoDB connection URI")
	fs.String("db_connect_timeout", "10s", `Timeout for database connections (e.g., "10s", "30")`)
}

// Load merges defaults → config.* file(s) → env vars → explicitly set flags
// from fs into one Config. fs must already be parsed and carry DefineFlags.
// Final precedence (highest wins): flags(explicit) > env > config > defaults.
func Load(logger *zap.Logger, fs *pflag.FlagSet) (*Config, error) {
	logger = logging.OrNop(logger)

	// .env never overrides the real environment
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range allKeys() {
		_ = v.BindEnv(k)
	}

	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "config." + ext
		b, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		v.SetConfigType(ext)
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			logger.Warn("cannot decode config file", zap.String("file", file), zap.Error(err))
			continue
		}
		logger.Debug("loaded config file", zap.String("file", file))
	}

	setDefaults(v)

	if fs != nil {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = v.BindPFlag(f.Name, f)
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	dur, err := parseDurationFlexible(v.Get("db_connect_timeout"), 10*time.Second)
	if err != nil {
		logger.Warn("invalid db_connect_timeout; using default 10s",
			zap.Any("value", v.Get("db_connect_timeout")), zap.Error(err))
	}
	cfg.DB.DBConnectTimeout = dur

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func allKeys() []string {
	return []string{
		"env", "log_level", "strict", "output",
		"postgres_dsn", "sqlite_path", "mongo_uri", "db_connect_timeout",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "warn")
	v.SetDefault("strict", false)
	v.SetDefault("output", "text")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("db_connect_timeout", "10s")
}

// ValidOutputs lists the accepted output formats.
var ValidOutputs = []string{"text", "json", "yaml"}

func validate(cfg Config) error {
	var invalid []string

	if cfg.Env != "dev" && cfg.Env != "prod" {
		invalid = append(invalid, `env must be "dev" or "prod"`)
	}
	if !logging.IsValidLogLevel(cfg.LogLevel) {
		invalid = append(invalid, "log_level must be one of "+strings.Join(logging.ValidLogLevels, ", "))
	}
	ok := false
	for _, o := range ValidOutputs {
		if cfg.Output == o {
			ok = true
			break
		}
	}
	if !ok {
		invalid = append(invalid, "output must be one of "+strings.Join(ValidOutputs, ", "))
	}
	if cfg.DB.DBConnectTimeout <= 0 {
		invalid = append(invalid, "db_connect_timeout must be > 0")
	}

	if len(invalid) == 0 {
		return nil
	}
	return fmt.Errorf("configuration errors: invalid: %s", strings.Join(invalid, ", "))
}
