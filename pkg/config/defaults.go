package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "planora"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	FallbackBusinessName       = "My Business"
	FallbackDescription        = "Welcome to my vendor profile!"
	FallbackWorkingHoursStart  = "09:00"
	FallbackWorkingHoursEnd    = "17:00"
	FallbackAdvanceBookingDays = 30

	DefaultProfileEventsTopic     = "vendor.profile.events"
	DefaultPerformanceEventsTopic = "vendor.performance.events"
	DefaultPerformanceEventsGroup = "vendors-performance"
	DefaultEventsDLQTopic         = "vendor.events.dlq"
)
