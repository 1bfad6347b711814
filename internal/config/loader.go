package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "GDM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.grpc_port", 0)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("artifacts.dir", "./artifacts")
	v.SetDefault("artifacts.watch", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", constants.DefaultAssessmentTopic)
	v.SetDefault("kafka.consumer_group", "gdm-admin")
	v.SetDefault("kafka.write_timeout", "5s")
	v.SetDefault("kafka.batch_size", 1)
	v.SetDefault("kafka.batch_timeout", "10ms")
	v.SetDefault("kafka.required_acks", 1)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", constants.DefaultRateLimitPerMinute)

	v.SetDefault("log.level", "info")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.sampling_rate", 1.0)
}

// LoadConfig loads the configuration from defaults, an optional config file,
// a .env file and GDM_* environment variables, in increasing precedence.
// An explicit configFile must exist; otherwise the standard paths are searched.
func LoadConfig(configFile string, log logger.Logger) (*Config, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	ctx := context.Background()

	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		log.Warn(ctx, "Failed to read .env file", logger.Fields{"error": err.Error()})
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/gdmrisk/")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.ErrInvalidConfig("failed to read config file").WithCause(err)
		}
		log.Debug(ctx, "No config file found, using defaults and environment")
	} else {
		log.Info(ctx, "Loaded config file", logger.Fields{"path": v.ConfigFileUsed()})
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrInvalidConfig("failed to unmarshal config").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
