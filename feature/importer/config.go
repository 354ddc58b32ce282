package importer

// Config holds configuration for the import job.
type Config struct {
	// Limit is the page size used when the caller does not pass one.
	Limit int `mapstructure:"limit" default:"10"`
	// Skip is the page offset used when the caller does not pass one.
	Skip int `mapstructure:"skip" default:"0"`
	// ContinueOnError isolates per-user failures instead of aborting the page.
	ContinueOnError bool `mapstructure:"continue_on_error" default:"false"`
	// Transactional wraps each user's User+Bank+Posts writes in one transaction.
	Transactional bool `mapstructure:"transactional" default:"true"`
	// Schedule is the cron spec used by the schedule command.
	Schedule string `mapstructure:"schedule" default:"@every 1h"`
	// StatsCacheSeconds is how long row counts are served from memory. 0 disables caching.
	StatsCacheSeconds int `mapstructure:"stats_cache_seconds" default:"5"`
}
