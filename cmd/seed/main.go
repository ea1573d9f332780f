package main

import (
	"context"

	bookingsrepo "hotelbooker/internal/bookings/repository"
	roomsrepo "hotelbooker/internal/rooms/repository"
	"hotelbooker/internal/seed"
	"hotelbooker/pkg/config"
)

const ServiceName = "seed"

// Loads the demo dataset into MongoDB. The calendar service seeds its
// in-memory store by itself; this binary exists for Mongo-backed setups.
func main() {
	cfg := config.Load(ServiceName)
	if cfg.Store != config.StoreMongo {
		cfg.Log.Fatal("Seeder requires the mongo store", "store", cfg.Store)
	}

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	rooms := roomsrepo.NewMongoRoomRepository(cfg)
	bookings := bookingsrepo.NewMongoBookingRepository(cfg)

	if err := seed.Load(context.Background(), rooms, bookings, cfg.Log); err != nil {
		cfg.Log.Fatal("Failed to load demo dataset", "error", err)
	}
	cfg.Log.Info("Demo dataset loaded", "database", cfg.MongoDatabaseName)
}
