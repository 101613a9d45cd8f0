// Package genesis defines the initial state a Nerix game deployment starts
// from: the rules in force, the seed of the first reward pool and the moment
// iteration 1 opens.
package genesis

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
)

// DefaultSeedPool is the initial reward pool of a fake deployment: 0.1 BNB.
var DefaultSeedPool = big.NewInt(100_000_000_000_000_000)

var (
	ErrNoRules      = errors.New("genesis rules are not set")
	ErrNegativeSeed = errors.New("genesis seed pool must be non-negative")
)

// Genesis is the complete initial state of a game deployment. The engine is
// constructed from it and never consults it again afterwards.
type Genesis struct {
	Rules nerix.Rules

	// SeedPool is the balance iteration 1 starts with, in wei. It plays the
	// role the rolled-over next-iteration pool plays for every later
	// iteration.
	SeedPool *big.Int

	// StartTime is when iteration 1 opens for messages.
	StartTime inter.Timestamp
}

// Validate checks the genesis for internal consistency.
func (g Genesis) Validate() error {
	if g.Rules.Name == "" {
		return ErrNoRules
	}
	if err := g.Rules.Validate(); err != nil {
		return fmt.Errorf("genesis rules: %w", err)
	}
	if g.SeedPool == nil || g.SeedPool.Sign() < 0 {
		return ErrNegativeSeed
	}
	return nil
}

// FakeGenesis returns a genesis for local/fake deployments: fakenet rules,
// the default seed pool and a start time of now.
func FakeGenesis() Genesis {
	return Genesis{
		Rules:     nerix.FakeNetRules(),
		SeedPool:  new(big.Int).Set(DefaultSeedPool),
		StartTime: inter.FromUnix(time.Now()),
	}
}

// MainGenesis returns the production genesis with the given seed pool and
// start time.
func MainGenesis(seed *big.Int, start time.Time) Genesis {
	return Genesis{
		Rules:     nerix.MainNetRules(),
		SeedPool:  new(big.Int).Set(seed),
		StartTime: inter.FromUnix(start),
	}
}
