package main

import (
	"context"

	"planora/internal/vendors/events"
	"planora/internal/vendors/handler"
	"planora/internal/vendors/repository"
	"planora/internal/vendors/service"
	"planora/internal/vendors/validator"
	"planora/pkg/app"
	"planora/pkg/config"
	"planora/pkg/kafka"
	kafka_config "planora/pkg/kafka/config"
)

const ServiceName = "vendors"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ProfileEventsTopic, cfg.EventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer producer.Close()

	profileValidator := validator.NewVendorProfileValidator()
	repo := repository.NewMongoVendorProfileRepository(cfg)
	publisher := service.NewKafkaEventPublisher(producer)

	profileService := service.NewVendorProfileService(repo, profileValidator, publisher, cfg)
	matchingService := service.NewMatchingService(repo, profileValidator, cfg)
	cfg.Log.Info("Vendor services initialized")

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	startPerformanceConsumer(consumerCtx, cfg, kafkaCfg, repo)

	vendorHandler := handler.NewVendorHandler(profileService, matchingService, cfg.Log)
	healthHandler := handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(vendorHandler, healthHandler)
	application.Run()
}

func startPerformanceConsumer(ctx context.Context, cfg *config.Config, kafkaCfg *kafka_config.Config, repo repository.VendorProfileRepository) {
	updater := events.NewPerformanceUpdater(repo, cfg)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.PerformanceEventsTopic,
		cfg.PerformanceEventsGroup,
		cfg.EventsDLQTopic,
		updater.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	go func() {
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			cfg.Log.Error("Performance events consumer stopped", "error", err)
		}
	}()
	cfg.Log.Info("Performance events consumer started",
		"topic", cfg.PerformanceEventsTopic,
		"group", cfg.PerformanceEventsGroup,
	)
}
