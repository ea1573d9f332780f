package config

import "time"

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	DefaultStore = StoreMemory

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelbooker"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedDemoData = true

	DefaultKafkaEnabled              = false
	DefaultKafkaBrokers              = "localhost:9092"
	DefaultKafkaBookingsTopic        = "hotel.bookings"
	DefaultKafkaRoomsTopic           = "hotel.rooms"
	DefaultKafkaDLQTopic             = ""
	DefaultKafkaProducerMaxAttempts  = 3
	DefaultKafkaProducerBatchTimeout = 100 * time.Millisecond
	DefaultKafkaProducerRequireAcks  = -1
	DefaultKafkaProducerCompression  = "snappy"

	DefaultPaginationLimit = 100
)
