package constants

import "time"

const (
	AppName            = "lifetrack"
	DefaultKeyringUser = "database-connection"
	DefaultStorePath   = "~/.config/lifetrack/lifetrack.db"
	DefaultConfigFile  = "~/.config/lifetrack/config.yaml"
	Version            = "v0.3.0"

	// StorageKey is the well-known key the entry collection is stored under.
	StorageKey = "lifeTrackerEntries"

	// MemoryStoreLocation selects the in-process provider.
	MemoryStoreLocation = ":memory:"

	// PostgresKeyringLocation selects PostgreSQL with the connection string
	// taken from LIFETRACK_DB_CONNECTION or the OS keyring.
	PostgresKeyringLocation = "postgres"

	// RedisKeyPrefix namespaces keys in a shared Redis database.
	RedisKeyPrefix = "lifetrack:"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat is used when a date is shown to the user
	LongDateFormat = "Monday, January 2, 2006"

	// WeekLength is the number of days in a dashboard window
	WeekLength = 7

	// DefaultTopTally is how many sections the activity tally shows
	DefaultTopTally = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifetrack-"

	// Lock constants
	LockfileSuffix = ".lock"
	LockRetryDelay = 50 * time.Millisecond
	LockMaxRetries = 3

	// Environment overrides
	EnvStore        = "LIFETRACK_STORE"
	EnvTimezone     = "LIFETRACK_TIMEZONE"
	EnvDebug        = "LIFETRACK_DEBUG"
	EnvDBConnection = "LIFETRACK_DB_CONNECTION"

	DefaultTimezone = "Local" // Use system local timezone by default
)
