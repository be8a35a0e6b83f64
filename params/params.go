package params

import "time"

const (
	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	HealthCheckServerAddr = ":3001" // health check server address

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour

	DefaultRateLimitPerMinute = 60  // default per-route request budget
	HeartbeatRateLimit        = 300 // agent heartbeats per minute
	InventoryRateLimit        = 10  // agent inventory submissions per minute

	MaxPageSize     = 100 // list endpoints clamp limit to this
	DefaultPageSize = 100

	AgentUpsertRetries = 1 // retries after a duplicate-hostname insert race
)
