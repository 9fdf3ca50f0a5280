package config

// Config represents the persistent threadmap configuration stored as
// config.toml in the .threadmap/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version  int            `mapstructure:"version" toml:"version"`
	API      APIConfig      `mapstructure:"api" toml:"api"`
	MCP      MCPConfig      `mapstructure:"mcp" toml:"mcp"`
	Cache    CacheConfig    `mapstructure:"cache" toml:"cache"`
	Client   ClientConfig   `mapstructure:"client" toml:"client"`
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `mapstructure:"listen" toml:"listen,omitempty"`
}

// MCPConfig holds MCP server settings. When enabled, the query engine and
// session status are exposed as MCP tools on the API listener.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled,omitempty"`
}

// CacheConfig holds memoization settings. TTLs use Go duration syntax
// ("1h", "10m"); zero or empty means entries never expire.
type CacheConfig struct {
	MapTTL   string `mapstructure:"map_ttl" toml:"map_ttl,omitempty"`
	QueryTTL string `mapstructure:"query_ttl" toml:"query_ttl,omitempty"`
	// WatchDataset clears the cache when the dataset file changes on disk.
	WatchDataset bool `mapstructure:"watch_dataset" toml:"watch_dataset,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// API server (e.g. threadmap cache). Values are full URLs.
type ClientConfig struct {
	APITarget string `mapstructure:"api_target" toml:"api_target,omitempty"`
}

// AnalysisConfig holds mental-map analysis settings.
type AnalysisConfig struct {
	// DefaultKeyword labels datasets whose filename does not follow the
	// <keyword>_scraped_data.json convention.
	DefaultKeyword string `mapstructure:"default_keyword" toml:"default_keyword,omitempty"`
}
