package config

// EnvPrefix is passed to envconfig; individual fields pin their full names
// below so renames stay deliberate.
const EnvPrefix = "SINCRO"

const (
	EnvAppEnv   = "SINCRO_APP_ENV"
	EnvPort     = "SINCRO_APP_PORT"
	EnvLogLevel = "SINCRO_LOG_LEVEL"

	EnvRedisURL = "SINCRO_REDIS_URL"

	EnvUpstreamBaseURL = "SINCRO_UPSTREAM_BASE_URL"

	EnvGCPProjectID     = "SINCRO_GCP_PROJECT_ID"
	EnvPubSubOrderTopic = "SINCRO_PUBSUB_ORDER_TOPIC"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)
