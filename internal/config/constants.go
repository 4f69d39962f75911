package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// HTTP Client Defaults
	DefaultHTTPTimeoutSecs         = 30
	DefaultHTTPMaxIdleConns        = 100
	DefaultHTTPMaxIdleConnsPerHost = 10
	DefaultHTTPMaxContentSizeMB    = 10
	DefaultHTTPEnableHTTP2         = true
	DefaultHTTPUserAgent           = "figmabot/1.0"

	// Figma Defaults
	DefaultFigmaAPIBaseURL  = "https://api.figma.com/v1/files"
	DefaultFigmaFileBaseURL = "https://www.figma.com/file"

	// Storage Defaults
	DefaultStorageDriver           = "sqlite"
	DefaultStorageSQLitePath       = "database/figmabot.db"
	DefaultStorageParquetPath      = "database/subscriptions.parquet"
	DefaultStorageCompressionCodec = "zstd"

	// Notification Defaults
	DefaultNotificationUsername       = "Figma"
	DefaultNotificationTimeoutSecs    = 20
	DefaultNotificationWebhookEnvName = "FIGMABOT_CHAT_WEBHOOK_URL"

	// Server Defaults
	DefaultServerListenAddress     = ":8080"
	DefaultServerReadTimeoutSecs   = 15
	DefaultServerWriteTimeoutSecs  = 60
	DefaultServerIdleTimeoutSecs   = 120
	DefaultServerShutdownTimeout   = 10
	DefaultServerCommandTimeoutSec = 45

	// Environment overrides
	EnvConfigPath  = "FIGMABOT_CONFIG_PATH"
	EnvPostgresDSN = "FIGMABOT_POSTGRES_DSN"
)
