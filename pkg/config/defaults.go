package config

const (
	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

// NewDefaultConfig returns the configuration used when no config.toml,
// environment variable, or flag overrides a value.
func NewDefaultConfig() Config {
	return Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: ":8081",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Cache: CacheConfig{
			MapTTL:       "1h",
			QueryTTL:     "10m",
			WatchDataset: true,
		},
		Client: ClientConfig{
			APITarget: "http://localhost:8081",
		},
		Analysis: AnalysisConfig{
			DefaultKeyword: "forum",
		},
	}
}
