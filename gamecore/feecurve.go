package gamecore

import (
	"math/big"

	"github.com/nerix-game/go-nerix/nerix"
)

// feeCurve computes the exponential message fee sequence of one iteration:
// fee(1) = BaseFee, fee(n+1) = fee(n) * (1e6 + GrowthRatePpm) / 1e6 with
// floor division at every step, clamped to FeeCap. The per-step flooring is
// part of the definition; recomputing fee(n) from scratch and advancing
// step by step give identical results.
type feeCurve struct {
	rules nerix.FeeRules

	// next is the fee of the next sequence number, advanced on every
	// accepted message and reset when an iteration opens.
	next *big.Int
	// capped is set once next reaches FeeCap; further advances are no-ops.
	capped bool
}

func newFeeCurve(rules nerix.FeeRules) *feeCurve {
	fc := &feeCurve{rules: rules}
	fc.reset()
	return fc
}

// reset rewinds the curve to the first message of a fresh iteration.
func (fc *feeCurve) reset() {
	fc.next = new(big.Int).Set(fc.rules.BaseFee)
	fc.capped = fc.next.Cmp(fc.rules.FeeCap) >= 0
	if fc.capped {
		fc.next.Set(fc.rules.FeeCap)
	}
}

// current returns the undiscounted fee of the next message. The returned
// value is a copy and safe to retain.
func (fc *feeCurve) current() *big.Int {
	return new(big.Int).Set(fc.next)
}

// advance moves the curve to the following sequence number.
func (fc *feeCurve) advance() {
	if fc.capped {
		return
	}
	num := new(big.Int).SetUint64(nerix.RateDenominator + fc.rules.GrowthRatePpm)
	fc.next.Mul(fc.next, num)
	fc.next.Div(fc.next, new(big.Int).SetUint64(nerix.RateDenominator))
	if fc.next.Cmp(fc.rules.FeeCap) >= 0 {
		fc.next.Set(fc.rules.FeeCap)
		fc.capped = true
	}
}

// FeeAt returns the undiscounted fee of the seq-th message (1-based) under
// the given fee rules. It replays the recurrence from the base fee, so it is
// O(seq); the engine itself uses the incremental curve and never calls this
// in the hot path.
func FeeAt(rules nerix.FeeRules, seq uint32) *big.Int {
	fee := new(big.Int).Set(rules.BaseFee)
	num := new(big.Int).SetUint64(nerix.RateDenominator + rules.GrowthRatePpm)
	den := new(big.Int).SetUint64(nerix.RateDenominator)
	for i := uint32(1); i < seq; i++ {
		if fee.Cmp(rules.FeeCap) >= 0 {
			break
		}
		fee.Mul(fee, num)
		fee.Div(fee, den)
	}
	if fee.Cmp(rules.FeeCap) > 0 {
		fee.Set(rules.FeeCap)
	}
	return fee
}

// applyDiscount reduces fee by the given whole-percent discount, flooring the
// division. A 100% discount yields zero; discounts are clamped upstream so
// percent never exceeds 100 here.
func applyDiscount(fee *big.Int, percent uint32) *big.Int {
	if percent == 0 {
		return new(big.Int).Set(fee)
	}
	if percent >= nerix.MaxDiscountPercent {
		return new(big.Int)
	}
	out := new(big.Int).SetUint64(uint64(100 - percent))
	out.Mul(out, fee)
	out.Div(out, big.NewInt(100))
	return out
}
