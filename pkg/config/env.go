package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultBusinessName       = "DEFAULT_BUSINESS_NAME"
	EnvDefaultDescription        = "DEFAULT_DESCRIPTION"
	EnvDefaultWorkingHoursStart  = "DEFAULT_WORKING_HOURS_START"
	EnvDefaultWorkingHoursEnd    = "DEFAULT_WORKING_HOURS_END"
	EnvDefaultAdvanceBookingDays = "DEFAULT_ADVANCE_BOOKING_DAYS"

	EnvProfileEventsTopic     = "PROFILE_EVENTS_TOPIC"
	EnvPerformanceEventsTopic = "PERFORMANCE_EVENTS_TOPIC"
	EnvPerformanceEventsGroup = "PERFORMANCE_EVENTS_GROUP"
	EnvEventsDLQTopic         = "EVENTS_DLQ_TOPIC"
)
