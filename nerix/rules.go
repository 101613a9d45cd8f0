// Package nerix defines the game rules and configuration parameters for a
// Nerix deployment.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Fee curve parameters (base fee, growth rate, hard cap)
//   - Pool split percentages (current / next-iteration / team)
//   - NFT bonus tables and the legacy decay schedule
//   - Iteration timing (inter-iteration cooldown)
//
// The Rules type is the central configuration structure for a given game
// deployment. All amounts are integers in wei; all rates are integer
// parts-per-million so fee compounding stays exact over hundreds of messages.
package nerix

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/nerix-game/go-nerix/inter"
)

// Network identification constants
const (
	// MainNetworkID is the chain ID of BNB Chain mainnet (0x38 = 56).
	MainNetworkID uint64 = 0x38

	// TestNetworkID is the chain ID of the BNB Chain testnet (0x61 = 97).
	TestNetworkID uint64 = 0x61

	// FakeNetworkID is the chain ID for local/fake deployments used in testing.
	FakeNetworkID uint64 = 0x7a69

	// RateDenominator is the fixed-point denominator for per-message growth
	// rates. One unit is one millionth, giving six decimal digits of
	// precision for the compounding steps.
	RateDenominator uint64 = 1_000_000

	// DefaultGrowthPpm is the default per-message fee growth: 7800 ppm,
	// i.e. +0.78% per message.
	DefaultGrowthPpm uint64 = 7_800

	// MaxDiscountPercent caps the effective fee discount after legacy
	// accrual. A discount above 100% would produce a negative fee.
	MaxDiscountPercent uint32 = 100
)

var (
	// DefaultBaseFee is the fee of the first message: 0.01 BNB.
	DefaultBaseFee = big.NewInt(10_000_000_000_000_000)

	// DefaultFeeCap is the hard fee ceiling: 2 BNB. Once the curve reaches
	// it, every subsequent message pays exactly the cap.
	DefaultFeeCap = new(big.Int).Mul(big.NewInt(2), big.NewInt(1_000_000_000_000_000_000))
)

// Errors returned by Rules.Validate.
var (
	ErrBadShareSum   = errors.New("pool share percentages must sum to exactly 100")
	ErrBadFeeBounds  = errors.New("fee cap must be >= base fee and both non-negative")
	ErrBadDecayBands = errors.New("decay band boundaries must strictly increase")
)

// Rules describes the complete economic configuration of a Nerix game.
//
// Note: Copy() must be used when a deep copy is needed, since FeeRules
// contains *big.Int values that would otherwise be shared.
type Rules struct {
	Name      string // deployment name (e.g. "main", "test", "fake")
	NetworkID uint64 // chain ID of the hosting network

	// Fees configures the exponential message fee curve.
	Fees FeeRules

	// Pools configures the three-way fee split.
	Pools PoolRules

	// Bonus configures NFT bonuses and the legacy decay schedule.
	Bonus BonusRules

	// Timing configures the iteration lifecycle timers.
	Timing TimingRules
}

// FeeRules defines the message fee curve: the n-th message of an iteration
// costs BaseFee compounded by (1 + GrowthRatePpm/1e6) n-1 times, clamped to
// FeeCap. The sequence is monotonically non-decreasing.
type FeeRules struct {
	// BaseFee is the fee of the first message, in wei.
	BaseFee *big.Int

	// GrowthRatePpm is the per-message growth rate in parts-per-million.
	GrowthRatePpm uint64

	// FeeCap is the hard ceiling, in wei.
	FeeCap *big.Int
}

// PoolRules defines how every paid fee is split. The three percentages must
// sum to exactly 100; the integer remainder of the floor divisions is
// credited to the current pool so no unit ever leaks.
type PoolRules struct {
	// CurrentSharePercent feeds the reward pool paid to this iteration's winner.
	CurrentSharePercent uint32

	// NextSharePercent seeds the next iteration's reward pool.
	NextSharePercent uint32

	// TeamSharePercent is platform revenue.
	TeamSharePercent uint32
}

// TierBonus is the base bonus granted by one NFT tier, additive over the
// platform base limits.
type TierBonus struct {
	CharLimit       uint32 // extra characters on top of BaseCharLimit
	DiscountPercent uint32 // fee discount in whole percent
	ContextSize     uint32 // extra context slots on top of BaseContextSize
}

// DecayBand is one band of the legacy decay schedule: iterations up to and
// including UpTo accrue RateBp basis points of legacy bonus each.
type DecayBand struct {
	UpTo   uint32 // inclusive upper iteration ordinal of the band
	RateBp uint32 // marginal accrual per iteration, in basis points
}

// BonusRules defines platform base limits, the per-tier bonus table, and the
// five-band legacy decay schedule.
type BonusRules struct {
	// BaseCharLimit is the message character limit without any NFT.
	BaseCharLimit uint32

	// BaseContextSize is the conversation context size without any NFT.
	BaseContextSize uint32

	// Community, Challenger and Winner are the per-tier base bonuses.
	Community  TierBonus
	Challenger TierBonus
	Winner     TierBonus

	// DecayBands is the banded marginal schedule converting elapsed
	// iterations into legacy bonus basis points. Bands are cumulative:
	// an NFT accrues the marginal rate of every iteration it lives
	// through, at that iteration's band rate.
	DecayBands [5]DecayBand
}

// TimingRules defines the iteration lifecycle timers.
type TimingRules struct {
	// CooldownMinutes is the pause between a winner declaration and the
	// next iteration accepting messages. Zero disables the cooldown state.
	CooldownMinutes uint32
}

// Tier returns the base bonus row for the given NFT tier. Unknown tiers are
// a programmer error and are reported loudly rather than defaulted.
func (b BonusRules) Tier(t inter.NftType) (TierBonus, error) {
	switch t {
	case inter.NftCommunity:
		return b.Community, nil
	case inter.NftChallenger:
		return b.Challenger, nil
	case inter.NftWinner:
		return b.Winner, nil
	default:
		return TierBonus{}, fmt.Errorf("%w: %d", inter.ErrUnknownNftType, uint8(t))
	}
}

// MainNetRules returns the production configuration.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Fees:      DefaultFeeRules(),
		Pools:     DefaultPoolRules(),
		Bonus:     DefaultBonusRules(),
		Timing: TimingRules{
			CooldownMinutes: 60, // one hour between iterations
		},
	}
}

// TestNetRules returns the testnet configuration. Testnet mirrors mainnet
// economics so dress rehearsals are realistic, with a shorter cooldown.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Fees:      DefaultFeeRules(),
		Pools:     DefaultPoolRules(),
		Bonus:     DefaultBonusRules(),
		Timing: TimingRules{
			CooldownMinutes: 10,
		},
	}
}

// FakeNetRules returns the configuration for local/fake deployments:
// mainnet economics with the cooldown disabled so tests can roll iterations
// without waiting.
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Fees:      DefaultFeeRules(),
		Pools:     DefaultPoolRules(),
		Bonus:     DefaultBonusRules(),
		Timing: TimingRules{
			CooldownMinutes: 0,
		},
	}
}

// DefaultFeeRules returns the production fee curve: 0.01 BNB base,
// +0.78%/message, capped at 2 BNB.
func DefaultFeeRules() FeeRules {
	return FeeRules{
		BaseFee:       new(big.Int).Set(DefaultBaseFee),
		GrowthRatePpm: DefaultGrowthPpm,
		FeeCap:        new(big.Int).Set(DefaultFeeCap),
	}
}

// DefaultPoolRules returns the production 60/20/20 split.
func DefaultPoolRules() PoolRules {
	return PoolRules{
		CurrentSharePercent: 60,
		NextSharePercent:    20,
		TeamSharePercent:    20,
	}
}

// DefaultBonusRules returns the production bonus table and decay schedule.
func DefaultBonusRules() BonusRules {
	return BonusRules{
		BaseCharLimit:   500,
		BaseContextSize: 4,
		Community: TierBonus{
			CharLimit:       100,
			DiscountPercent: 0,
			ContextSize:     0,
		},
		Challenger: TierBonus{
			CharLimit:       200,
			DiscountPercent: 10,
			ContextSize:     0,
		},
		Winner: TierBonus{
			CharLimit:       300,
			DiscountPercent: 20,
			ContextSize:     3,
		},
		DecayBands: DefaultDecayBands(),
	}
}

// DefaultDecayBands returns the five-band legacy decay schedule:
// +10%/iteration for iterations 1-5, +5% for 6-10, +2.5% for 11-20,
// +1% for 21-100 and +0.5% from 101 on. Rates are stored in basis points.
func DefaultDecayBands() [5]DecayBand {
	return [5]DecayBand{
		{UpTo: 5, RateBp: 1000},
		{UpTo: 10, RateBp: 500},
		{UpTo: 20, RateBp: 250},
		{UpTo: 100, RateBp: 100},
		{UpTo: math.MaxUint32, RateBp: 50},
	}
}

// Validate checks the internal consistency of the rules.
func (r Rules) Validate() error {
	sum := r.Pools.CurrentSharePercent + r.Pools.NextSharePercent + r.Pools.TeamSharePercent
	if sum != 100 {
		return fmt.Errorf("%w: got %d", ErrBadShareSum, sum)
	}
	if r.Fees.BaseFee == nil || r.Fees.FeeCap == nil {
		return ErrBadFeeBounds
	}
	if r.Fees.BaseFee.Sign() < 0 || r.Fees.FeeCap.Sign() < 0 {
		return ErrBadFeeBounds
	}
	if r.Fees.FeeCap.Cmp(r.Fees.BaseFee) < 0 {
		return ErrBadFeeBounds
	}
	prev := uint32(0)
	for _, band := range r.Bonus.DecayBands {
		if band.UpTo <= prev {
			return ErrBadDecayBands
		}
		prev = band.UpTo
	}
	return nil
}

// Copy creates a deep copy of Rules. Necessary because FeeRules contains
// *big.Int values that would be shared by a shallow copy.
func (r Rules) Copy() Rules {
	cp := r
	cp.Fees.BaseFee = new(big.Int).Set(r.Fees.BaseFee)
	cp.Fees.FeeCap = new(big.Int).Set(r.Fees.FeeCap)
	return cp
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
