package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	SourceFile  = "file"
	SourceMinIO = "minio"
)

// DefaultModelPath is where the artifact is looked up when nothing overrides it.
const DefaultModelPath = "penguin_classifier.json"

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	Environment     string `mapstructure:"environment"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

type ModelConfig struct {
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	LoadTimeout string `mapstructure:"load_timeout"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Model   ModelConfig   `mapstructure:"model"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load reads config.yaml from ./config or the working directory when present,
// applies environment overrides (MODEL_PATH, SERVER_ADDRESS, ...) and validates
// the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "0.0.0.0:8080")
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("model.source", SourceFile)
	v.SetDefault("model.path", DefaultModelPath)
	v.SetDefault("model.load_timeout", "30s")
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.file", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.ShutdownTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Model,
			validation.Required,
			validation.By(func(value interface{}) error {
				mc, ok := value.(ModelConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ModelConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.Source,
						validation.Required,
						validation.In(SourceFile, SourceMinIO),
					),
					validation.Field(&mc.Path,
						validation.Required,
						validation.When(mc.Source == SourceMinIO, validation.By(validateObjectPath)),
					),
					validation.Field(&mc.LoadTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.MinIO,
			validation.When(c.Model.Source == SourceMinIO,
				validation.By(func(value interface{}) error {
					mc, ok := value.(MinIOConfig)
					if !ok {
						return validation.NewError("validation_invalid_type", "must be a MinIOConfig")
					}
					return validation.ValidateStruct(&mc,
						validation.Field(&mc.Endpoint, validation.Required, validation.By(validateHostPort)),
						validation.Field(&mc.AccessKey, validation.Required),
						validation.Field(&mc.SecretKey, validation.Required),
					)
				}),
			),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
	)
}

// ShutdownTimeout returns the parsed graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// LoadTimeout returns the parsed deadline for fetching the model artifact.
func (c *Config) LoadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Model.LoadTimeout)
	return d
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}
	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be positive")
	}

	return nil
}

func validateObjectPath(value interface{}) error {
	path, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	bucket, object, found := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if !found || bucket == "" || object == "" {
		return validation.NewError("validation_invalid_object_path", "must be in bucket/path/to/object format")
	}

	return nil
}
