package main

import (
	"context"

	bookingshandler "hotelbooker/internal/bookings/handler"
	bookingsrepo "hotelbooker/internal/bookings/repository"
	bookingsservice "hotelbooker/internal/bookings/service"
	bookingsvalidator "hotelbooker/internal/bookings/validator"
	calendarhandler "hotelbooker/internal/calendar/handler"
	calendarservice "hotelbooker/internal/calendar/service"
	"hotelbooker/internal/events"
	roomshandler "hotelbooker/internal/rooms/handler"
	roomsrepo "hotelbooker/internal/rooms/repository"
	roomsservice "hotelbooker/internal/rooms/service"
	roomsvalidator "hotelbooker/internal/rooms/validator"
	"hotelbooker/internal/seed"
	"hotelbooker/pkg/app"
	"hotelbooker/pkg/config"
	"hotelbooker/pkg/kafka"
)

const ServiceName = "calendar"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting room calendar service")

	bookingRepo, roomRepo := initStores(cfg)
	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	if cfg.SeedDemoData && cfg.Store == config.StoreMemory {
		if err := seed.Load(context.Background(), roomRepo, bookingRepo, cfg.Log); err != nil {
			cfg.Log.Fatal("Failed to load demo dataset", "error", err)
		}
	}

	roomService := roomsservice.NewRoomService(
		roomRepo,
		roomsvalidator.NewRoomValidator(cfg.Log),
		publisher,
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	calendarService := calendarservice.NewCalendarService(bookingRepo, roomService, cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		calendarhandler.NewCalendarHandler(calendarService, cfg.Log),
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	)
	defer cfg.GracefulShutdown()
	serverApp.Run()
}

func initStores(cfg *config.Config) (bookingsrepo.BookingRepository, roomsrepo.RoomRepository) {
	if cfg.Store == config.StoreMongo {
		cfg.SetMongo()
		cfg.Log.Info("Using MongoDB store", "database", cfg.MongoDatabaseName)
		return bookingsrepo.NewMongoBookingRepository(cfg), roomsrepo.NewMongoRoomRepository(cfg)
	}

	cfg.Log.Info("Using in-memory store")
	return bookingsrepo.NewOccupancyIndex(), roomsrepo.NewMemoryRoomRepository()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published")
		return events.NopPublisher{}
	}

	bookings, err := kafka.NewProducer(producerOptions(cfg, cfg.KafkaBookingsTopic))
	if err != nil {
		cfg.Log.Fatal("Failed to create bookings producer", "error", err)
	}
	rooms, err := kafka.NewProducer(producerOptions(cfg, cfg.KafkaRoomsTopic))
	if err != nil {
		cfg.Log.Fatal("Failed to create rooms producer", "error", err)
	}

	cfg.Log.Info("Kafka event publisher initialized",
		"bookings_topic", cfg.KafkaBookingsTopic,
		"rooms_topic", cfg.KafkaRoomsTopic,
	)
	return events.NewKafkaPublisher(bookings, rooms, cfg.Log)
}

func producerOptions(cfg *config.Config, topic string) kafka.ProducerOptions {
	return kafka.ProducerOptions{
		Brokers:      cfg.KafkaBrokers,
		Topic:        topic,
		DLQTopic:     cfg.KafkaDLQTopic,
		MaxAttempts:  cfg.KafkaProducerMaxAttempts,
		BatchTimeout: cfg.KafkaProducerBatchTimeout,
		RequireAcks:  cfg.KafkaProducerRequireAcks,
		Compression:  cfg.KafkaProducerCompression,
	}
}
