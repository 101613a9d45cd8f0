package launcher

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
	"github.com/nerix-game/go-nerix/nerix/genesis"
)

// MakeConfig builds the effective configuration: defaults, then a .env file
// if present, then CLI flags.
func MakeConfig(ctx *cli.Context) Config {
	cfg := DefaultConfig()
	applyEnv(&cfg)
	applyFlags(ctx, &cfg)
	return cfg
}

// applyEnv overlays NERIX_* environment variables, loading a local .env
// first. A missing .env is not an error.
func applyEnv(cfg *Config) {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded .env")
	}

	if v := os.Getenv("NERIX_DATADIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("NERIX_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("NERIX_LOG_VERBOSITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LogVerbosity = n
		}
	}
	if v := os.Getenv("NERIX_SENTRY_DSN"); v != "" {
		cfg.SentryDSN = v
	}
	if v := os.Getenv("NERIX_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("NERIX_HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPPort = n
		}
	}
	if v := os.Getenv("NERIX_NETWORK"); v != "" {
		cfg.Network = v
	}
	if v := os.Getenv("NERIX_PRESET"); v != "" {
		cfg.Preset = v
	}
	if v := os.Getenv("NERIX_SEED_POOL_WEI"); v != "" {
		cfg.SeedPoolWei = v
	}
}

// applyFlags overlays CLI flags that were explicitly set.
func applyFlags(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("datadir") {
		cfg.DataDir = ctx.GlobalString("datadir")
	}
	if ctx.GlobalIsSet("log.format") {
		cfg.LogFormat = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.LogVerbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.SentryDSN = ctx.GlobalString("sentry.dsn")
	}
	if ctx.GlobalIsSet("http.addr") {
		cfg.HTTPAddr = ctx.GlobalString("http.addr")
	}
	if ctx.GlobalIsSet("http.port") {
		cfg.HTTPPort = ctx.GlobalInt("http.port")
	}
	if ctx.GlobalIsSet("metrics") {
		cfg.Metrics = ctx.GlobalBool("metrics")
	}
	if ctx.GlobalIsSet("preset") {
		cfg.Preset = ctx.GlobalString("preset")
	}
	if ctx.GlobalIsSet("network") {
		cfg.Network = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("fakenet") {
		cfg.FakeNet = ctx.GlobalBool("fakenet")
	}
	if ctx.GlobalIsSet("game.basefee") {
		cfg.BaseFeeWei = ctx.GlobalString("game.basefee")
	}
	if ctx.GlobalIsSet("game.feecap") {
		cfg.FeeCapWei = ctx.GlobalString("game.feecap")
	}
	if ctx.GlobalIsSet("game.growth") {
		cfg.GrowthPpm = ctx.GlobalUint64("game.growth")
	}
	if ctx.GlobalIsSet("game.cooldown") {
		cfg.CooldownMinutes = ctx.GlobalInt("game.cooldown")
	}
	if ctx.GlobalIsSet("game.seedpool") {
		cfg.SeedPoolWei = ctx.GlobalString("game.seedpool")
	}
}

// MakeGenesis resolves the rule set the configuration selects and applies
// the economic overrides.
func MakeGenesis(cfg Config) (genesis.Genesis, error) {
	var g genesis.Genesis
	switch {
	case cfg.FakeNet:
		g = genesis.FakeGenesis()
	case cfg.Network == "main":
		g = genesis.MainGenesis(genesis.DefaultSeedPool, time.Now())
	case cfg.Network == "test":
		g = genesis.Genesis{
			Rules:     nerix.TestNetRules(),
			SeedPool:  new(big.Int).Set(genesis.DefaultSeedPool),
			StartTime: inter.FromUnix(time.Now()),
		}
	default:
		return genesis.Genesis{}, fmt.Errorf("unknown network: %q (valid: main, test)", cfg.Network)
	}

	if cfg.BaseFeeWei != "" {
		fee, ok := new(big.Int).SetString(cfg.BaseFeeWei, 10)
		if !ok {
			return genesis.Genesis{}, fmt.Errorf("invalid base fee: %q", cfg.BaseFeeWei)
		}
		g.Rules.Fees.BaseFee = fee
	}
	if cfg.FeeCapWei != "" {
		feeCap, ok := new(big.Int).SetString(cfg.FeeCapWei, 10)
		if !ok {
			return genesis.Genesis{}, fmt.Errorf("invalid fee cap: %q", cfg.FeeCapWei)
		}
		g.Rules.Fees.FeeCap = feeCap
	}
	if cfg.GrowthPpm > 0 {
		g.Rules.Fees.GrowthRatePpm = cfg.GrowthPpm
	}
	if cfg.CooldownMinutes >= 0 {
		g.Rules.Timing.CooldownMinutes = uint32(cfg.CooldownMinutes)
	}
	if cfg.SeedPoolWei != "" {
		seed, ok := new(big.Int).SetString(cfg.SeedPoolWei, 10)
		if !ok {
			return genesis.Genesis{}, fmt.Errorf("invalid seed pool: %q", cfg.SeedPoolWei)
		}
		g.SeedPool = seed
	}

	if err := g.Validate(); err != nil {
		return genesis.Genesis{}, err
	}
	return g, nil
}
