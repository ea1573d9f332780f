package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hotelbooker/pkg/client"
	"hotelbooker/pkg/logger"
)

type Config struct {
	Store string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SeedDemoData bool

	KafkaEnabled              bool
	KafkaBrokers              []string
	KafkaBookingsTopic        string
	KafkaRoomsTopic           string
	KafkaDLQTopic             string
	KafkaProducerMaxAttempts  int
	KafkaProducerBatchTimeout time.Duration
	KafkaProducerRequireAcks  int
	KafkaProducerCompression  string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	brokers := strings.Split(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers), ",")
	for i, broker := range brokers {
		brokers[i] = strings.TrimSpace(broker)
	}

	cfg := &Config{
		Store: getEnvStr(EnvStore, DefaultStore),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SeedDemoData: getEnvBool(EnvSeedDemoData, DefaultSeedDemoData),

		KafkaEnabled:              getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaBrokers:              brokers,
		KafkaBookingsTopic:        getEnvStr(EnvKafkaBookingsTopic, DefaultKafkaBookingsTopic),
		KafkaRoomsTopic:           getEnvStr(EnvKafkaRoomsTopic, DefaultKafkaRoomsTopic),
		KafkaDLQTopic:             getEnvStr(EnvKafkaDLQTopic, DefaultKafkaDLQTopic),
		KafkaProducerMaxAttempts:  getEnvNum(EnvKafkaProducerMaxAttempts, DefaultKafkaProducerMaxAttempts),
		KafkaProducerBatchTimeout: getEnvDuration(EnvKafkaProducerBatchTimeout, DefaultKafkaProducerBatchTimeout),
		KafkaProducerRequireAcks:  getEnvNum(EnvKafkaProducerRequireAcks, DefaultKafkaProducerRequireAcks),
		KafkaProducerCompression:  getEnvStr(EnvKafkaProducerCompression, DefaultKafkaProducerCompression),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if cfg.Store != StoreMemory && cfg.Store != StoreMongo {
		errors = append(errors, fmt.Sprintf("Store must be %q or %q, got: %s", StoreMemory, StoreMongo, cfg.Store))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.Store == StoreMongo {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			errors = append(errors, "At least one Kafka broker is required when Kafka is enabled")
		}
		for i, broker := range cfg.KafkaBrokers {
			if broker == "" {
				errors = append(errors, fmt.Sprintf("Kafka broker %d cannot be empty", i))
			}
		}
		if cfg.KafkaBookingsTopic == "" {
			errors = append(errors, "KafkaBookingsTopic cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaRoomsTopic == "" {
			errors = append(errors, "KafkaRoomsTopic cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaProducerMaxAttempts <= 0 {
			errors = append(errors, fmt.Sprintf("KafkaProducerMaxAttempts must be positive, got: %d", cfg.KafkaProducerMaxAttempts))
		}
		if cfg.KafkaProducerBatchTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("KafkaProducerBatchTimeout must be positive, got: %s", cfg.KafkaProducerBatchTimeout))
		}
		if acks := cfg.KafkaProducerRequireAcks; acks != -1 && acks != 0 && acks != 1 {
			errors = append(errors, fmt.Sprintf("KafkaProducerRequireAcks must be -1, 0, or 1, got: %d", acks))
		}
		switch cfg.KafkaProducerCompression {
		case "none", "gzip", "snappy", "lz4", "zstd":
		default:
			errors = append(errors, fmt.Sprintf("KafkaProducerCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.KafkaProducerCompression))
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"store", cfg.Store,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"seed_demo_data", cfg.SeedDemoData,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_bookings_topic", cfg.KafkaBookingsTopic,
		"kafka_rooms_topic", cfg.KafkaRoomsTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
