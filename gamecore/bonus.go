package gamecore

import (
	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
)

// Bonus is the effective set of perks a sender enjoys for one message:
// absolute limits (base plus tier bonus) and the total fee discount (tier
// discount plus accrued legacy bonus, clamped at 100%).
type Bonus struct {
	CharLimit       uint32
	DiscountPercent uint32
	ContextSize     uint32
}

// baseBonus is the no-NFT bonus: platform base limits, no discount.
func baseBonus(rules nerix.BonusRules) Bonus {
	return Bonus{
		CharLimit:       rules.BaseCharLimit,
		DiscountPercent: 0,
		ContextSize:     rules.BaseContextSize,
	}
}

// legacyBp returns the accrued legacy bonus of a token minted at mint and
// observed at current, in basis points. The token accrues the marginal band
// rate of every iteration i in [mint, current): the band is keyed by the
// absolute iteration ordinal, so two tokens alive through the same iteration
// accrue the same marginal rate for it, and an older mint never accrues less
// than a newer one.
func legacyBp(bands [5]nerix.DecayBand, mint, current uint32) uint64 {
	if current <= mint || mint == 0 {
		return 0
	}
	// iterations lived through: [mint, current-1] inclusive
	lo, hi := mint, current-1

	var total uint64
	bandLo := uint32(1)
	for _, band := range bands {
		from, to := bandLo, band.UpTo
		if from < lo {
			from = lo
		}
		if to > hi {
			to = hi
		}
		if from <= to {
			total += uint64(to-from+1) * uint64(band.RateBp)
		}
		if band.UpTo >= hi {
			break
		}
		bandLo = band.UpTo + 1
	}
	return total
}

// Bonuses computes the effective bonus of a token at the given iteration.
// A nil token yields the base bonus. The accrued legacy percentage scales
// every tier bonus value multiplicatively: each value grows by its floored
// legacy share, so a 10% legacy turns a +300 char bonus into +330 while a
// +3 context bonus stays +3 (floor of 0.3). The total discount is clamped
// at 100%.
func Bonuses(rules nerix.BonusRules, token *inter.Token, currentIteration uint32) (Bonus, error) {
	if token == nil {
		return baseBonus(rules), nil
	}
	tier, err := rules.Tier(token.Type)
	if err != nil {
		return Bonus{}, err
	}

	bp := legacyBp(rules.DecayBands, token.MintIteration, currentIteration)
	withLegacy := func(v uint32) uint64 {
		return uint64(v) + uint64(v)*bp/10_000
	}

	discount := withLegacy(tier.DiscountPercent)
	if discount > uint64(nerix.MaxDiscountPercent) {
		discount = uint64(nerix.MaxDiscountPercent)
	}

	return Bonus{
		CharLimit:       rules.BaseCharLimit + uint32(withLegacy(tier.CharLimit)),
		DiscountPercent: uint32(discount),
		ContextSize:     rules.BaseContextSize + uint32(withLegacy(tier.ContextSize)),
	}, nil
}

// BestToken picks the token a sender would rationally present: the highest
// tier wins, and among equal tiers the older mint wins because it carries
// more legacy bonus. Returns nil for an empty slice.
func BestToken(tokens []*inter.Token) *inter.Token {
	var best *inter.Token
	for _, tok := range tokens {
		if best == nil {
			best = tok
			continue
		}
		if tok.Type.Rank() > best.Type.Rank() {
			best = tok
			continue
		}
		if tok.Type.Rank() == best.Type.Rank() && tok.MintIteration < best.MintIteration {
			best = tok
		}
	}
	return best
}
