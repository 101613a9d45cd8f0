// Package integration provides configuration presets for assembling a Nerix
// game service. Presets bundle the runtime knobs that vary between a laptop
// deployment and a production one (history retention, observability toggles)
// into named profiles so operators do not tweak flags one by one.
//
// Usage:
//
//	cfg := integration.DevPreset()     // for development
//	cfg := integration.ProdPreset()    // for production
//	cfg := integration.ArchivePreset() // for analytics/replay services
package integration

import "fmt"

// PresetConfig captures the tunable runtime parameters that vary across
// profiles. Economic rules are deliberately excluded: those are selected by
// network, never by preset.
type PresetConfig struct {
	Name             string // profile identifier (e.g. "dev", "prod")
	HistoryRetention int    // sealed iteration records kept in memory
	EnableMetrics    bool   // expose a Prometheus /metrics endpoint
	EnableTracing    bool   // per-request debug logging on the RPC surface
	PrettyLogs       bool   // human-readable log formatter instead of JSON
}

func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:             "default",
		HistoryRetention: 1024,
		EnableMetrics:    false,
		EnableTracing:    false,
		PrettyLogs:       false,
	}
}

// DevPreset returns a profile for local development and CI: small retention,
// metrics on for quick diagnosis, readable logs.
func DevPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "dev"
	cfg.HistoryRetention = 64
	cfg.EnableMetrics = true
	cfg.EnableTracing = true
	cfg.PrettyLogs = true
	return cfg
}

// ProdPreset returns the production profile: metrics exposed for dashboards,
// tracing off, machine-parseable logs.
func ProdPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "prod"
	cfg.HistoryRetention = 4096
	cfg.EnableMetrics = true
	cfg.EnableTracing = false
	cfg.PrettyLogs = false
	return cfg
}

// ArchivePreset returns a profile for analytics and replay services that
// query deep iteration history: effectively unbounded retention with full
// observability.
func ArchivePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "archive"
	cfg.HistoryRetention = 1 << 20
	cfg.EnableMetrics = true
	cfg.EnableTracing = true
	cfg.PrettyLogs = false
	return cfg
}

// GetPresetByName looks up a preset by its string identifier. This helper
// backs CLI flags like --preset=prod.
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "dev":
		return DevPreset(), nil
	case "prod":
		return ProdPreset(), nil
	case "archive":
		return ArchivePreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: dev, prod, archive, default)", name)
	}
}

// ApplyPreset merges a preset into an existing config. Zero values in the
// preset leave the target untouched, so presets can be layered on top of
// CLI overrides without clobbering unrelated settings. Boolean toggles are
// always applied.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Name != "" {
		target.Name = preset.Name
	}
	if preset.HistoryRetention > 0 {
		target.HistoryRetention = preset.HistoryRetention
	}
	target.EnableMetrics = preset.EnableMetrics
	target.EnableTracing = preset.EnableTracing
	target.PrettyLogs = preset.PrettyLogs
}
