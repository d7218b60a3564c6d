package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Normalize NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`
	Merge     MergeConfig     `yaml:"merge" mapstructure:"merge"`
	Load      LoadConfig      `yaml:"load" mapstructure:"load"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// ExtractConfig configures the field extractor.
type ExtractConfig struct {
	// PatternsFile replaces the embedded rules when set.
	PatternsFile string `yaml:"patterns_file" mapstructure:"patterns_file" validate:"omitempty,file"`
}

// NormalizeConfig configures record normalization.
type NormalizeConfig struct {
	Workers      int      `yaml:"workers" mapstructure:"workers" validate:"min=1,max=256"`
	Placeholders []string `yaml:"placeholders" mapstructure:"placeholders"`
}

// MergeConfig configures collection merging.
type MergeConfig struct {
	Policy                string `yaml:"policy" mapstructure:"policy" validate:"oneof=first_seen_wins fill_blanks"`
	NearDuplicateDistance int    `yaml:"near_duplicate_distance" mapstructure:"near_duplicate_distance" validate:"min=0,max=10"`
}

// LoadConfig configures tabular input.
type LoadConfig struct {
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
	Delimiter  string `yaml:"delimiter" mapstructure:"delimiter" validate:"max=3"` // one character or "tab"
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
	SheetIndex int    `yaml:"sheet_index" mapstructure:"sheet_index" validate:"min=0"`
}

// DelimiterRune returns the configured CSV delimiter, or 0 for the default.
func (c LoadConfig) DelimiterRune() rune {
	if c.Delimiter == "tab" || c.Delimiter == `\t` {
		return '\t'
	}
	for _, r := range c.Delimiter {
		return r
	}
	return 0
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port                int      `yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	CORSOrigins         []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	ShutdownTimeoutSecs int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs" validate:"min=1"`
	MaxBodyBytes        int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"min=1024"`
}

// Load reads configuration from .env, the config file and the environment.
func Load() (*Config, error) {
	// .env is optional and never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("extract.patterns_file", "")
	v.SetDefault("normalize.workers", 8)
	v.SetDefault("normalize.placeholders", []string{})
	v.SetDefault("merge.policy", "first_seen_wins")
	v.SetDefault("merge.near_duplicate_distance", 0)
	v.SetDefault("load.encoding", "utf-8")
	v.SetDefault("load.delimiter", "")
	v.SetDefault("load.sheet", "")
	v.SetDefault("load.sheet_index", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("server.max_body_bytes", 10<<20)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

// Validate checks value ranges. Messages name keys the way they appear in
// config.yaml ("normalize.workers").
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return eris.Wrap(err, "config: validate")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", key, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", key, fe.Tag(), fe.Value()))
		}
	}
	return eris.Errorf("config: %s", strings.Join(msgs, "; "))
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
