package cfg

type Cfg struct {
	// Database configuration
	DatabaseURL string

	// Enrichment configuration
	KinopoiskAPIKey string

	// Application configuration
	Port             string
	SourceConfigPath string
	IngestInterval   int // minutes, 0 disables periodic ingestion
	WorkerCount      int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
