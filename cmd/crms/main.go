package main

import (
	"crms/internal/bookings/events"
	bookingshandler "crms/internal/bookings/handler"
	bookingsrepository "crms/internal/bookings/repository"
	bookingsservice "crms/internal/bookings/service"
	bookingsvalidator "crms/internal/bookings/validator"
	directoryhandler "crms/internal/directory/handler"
	directoryrepository "crms/internal/directory/repository"
	directoryservice "crms/internal/directory/service"
	directoryvalidator "crms/internal/directory/validator"
	"crms/pkg/app"
	"crms/pkg/config"
	"crms/pkg/kafka"
	kafka_config "crms/pkg/kafka/config"
	"crms/pkg/metrics"
)

func main() {
	cfg := config.Load("crms")
	cfg.SetMongo()
	metrics.Init()

	// Directory
	userRepo := directoryrepository.NewMongoUserRepository(cfg)
	resourceRepo := directoryrepository.NewMongoResourceRepository(cfg)
	directoryValidator := directoryvalidator.NewDirectoryValidator(cfg.Log)

	userService := directoryservice.NewUserService(userRepo, directoryValidator, cfg)
	resourceService := directoryservice.NewResourceService(resourceRepo, directoryValidator, cfg)
	lookup := directoryservice.NewLookup(userRepo, resourceRepo)

	userHandler := directoryhandler.NewUserHandler(userService, cfg.Log)
	resourceHandler := directoryhandler.NewResourceHandler(resourceService, cfg.Log)

	// Booking engine
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepository.NewSlotLockRepository(cfg)
	bookingValidator := bookingsvalidator.NewBookingValidator(cfg.Log)

	var publisher *events.Publisher
	if cfg.EventsEnabled {
		kafkaCfg, err := kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Failed to load Kafka configuration", "error", err)
		}
		producer, err := kafka.NewProducer(kafkaCfg, events.Topic)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		publisher = events.NewPublisher(producer, cfg.Log)
		cfg.Log.Info("Booking event publishing enabled", "topic", events.Topic)
	}

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		lookup,
		bookingValidator,
		publisher,
		cfg,
	)
	bookingHandler := bookingshandler.NewBookingHandler(bookingService, cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(userHandler, resourceHandler, bookingHandler)
	application.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	application.Run()
}
