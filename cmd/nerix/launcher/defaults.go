package launcher

// Config is the merged service configuration: defaults, then .env overrides,
// then CLI flags, each layer winning over the previous one.
type Config struct {
	DataDir      string
	LogFormat    string // "text" or "json"
	LogVerbosity int
	SentryDSN    string

	HTTPAddr string
	HTTPPort int
	Metrics  bool

	Preset  string
	Network string // "main" or "test"
	FakeNet bool

	// Economic overrides. Empty/negative means "keep the rule set value".
	BaseFeeWei      string
	FeeCapWei       string
	GrowthPpm       uint64
	CooldownMinutes int
	SeedPoolWei     string
}

// DefaultConfig returns the built-in defaults, before .env and CLI layers.
func DefaultConfig() Config {
	return Config{
		DataDir:         "~/.nerix",
		LogFormat:       "text",
		LogVerbosity:    4,
		HTTPAddr:        "127.0.0.1",
		HTTPPort:        18545,
		Metrics:         false,
		Preset:          "default",
		Network:         "main",
		CooldownMinutes: -1,
	}
}
