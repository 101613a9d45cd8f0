package gamecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
)

func TestBonuses_noToken(t *testing.T) {
	rules := nerix.DefaultBonusRules()

	b, err := Bonuses(rules, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, Bonus{CharLimit: 500, DiscountPercent: 0, ContextSize: 4}, b)
}

// an NFT minted in the current round gets the base table exactly
func TestBonuses_currentRoundHasNoLegacy(t *testing.T) {
	rules := nerix.DefaultBonusRules()
	tok := &inter.Token{ID: 1, Type: inter.NftWinner, MintIteration: 7}

	b, err := Bonuses(rules, tok, 7)
	require.NoError(t, err)
	assert.Equal(t, Bonus{CharLimit: 800, DiscountPercent: 20, ContextSize: 7}, b)
}

// The accrued legacy percentage scales every tier bonus value, with the
// delta floored before it is added back onto the base.
func TestBonuses_legacyAccrual(t *testing.T) {
	rules := nerix.DefaultBonusRules()

	tests := []struct {
		name      string
		tier      inter.NftType
		mint, now uint32
		want      Bonus
	}{
		// one elapsed iteration in band 1 (10%): +300 chars become +330,
		// 20% discount becomes 22%, +3 context stays +3 (floor of 3.3)
		{"winner_one_iteration_old", inter.NftWinner, 1, 2,
			Bonus{CharLimit: 830, DiscountPercent: 22, ContextSize: 7}},
		// iterations 1..5 at 10% = 50% legacy: +450 chars, +10% discount, +1 context
		{"winner_through_band_one", inter.NftWinner, 1, 6,
			Bonus{CharLimit: 950, DiscountPercent: 30, ContextSize: 8}},
		// 5*10% + 5*5% = 75% legacy: +225 chars, +15% discount, +2 context
		{"winner_through_band_two", inter.NftWinner, 1, 11,
			Bonus{CharLimit: 1025, DiscountPercent: 35, ContextSize: 9}},
		// community has no tier discount, so legacy scales only the char bonus
		{"community_one_iteration_old", inter.NftCommunity, 3, 4,
			Bonus{CharLimit: 610, DiscountPercent: 0, ContextSize: 4}},
		// mint inside band 2: iterations 6,7 at 5% each = 10% legacy
		{"challenger_band_two_only", inter.NftChallenger, 6, 8,
			Bonus{CharLimit: 720, DiscountPercent: 11, ContextSize: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bonuses(rules, &inter.Token{Type: tt.tier, MintIteration: tt.mint}, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

// a discount scaled past 100% clamps; the other values keep growing
func TestBonuses_discountClampsAtFull(t *testing.T) {
	rules := nerix.DefaultBonusRules()

	// mint 1 observed at 700 accrues 479.5% legacy, well past the 400%
	// that pushes a 20% tier discount over 100
	b, err := Bonuses(rules, &inter.Token{Type: inter.NftWinner, MintIteration: 1}, 700)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), b.DiscountPercent)
	assert.Greater(t, b.CharLimit, uint32(800), "char bonus keeps scaling past the discount clamp")
}

// holding tier and current iteration fixed, an older mint never yields a
// smaller bonus than a newer one
func TestBonuses_legacyMonotonicInAge(t *testing.T) {
	rules := nerix.DefaultBonusRules()
	const current = 130

	prev := uint32(0)
	for mint := uint32(current); mint >= 1; mint-- {
		b, err := Bonuses(rules, &inter.Token{Type: inter.NftCommunity, MintIteration: mint}, current)
		require.NoError(t, err)
		require.GreaterOrEqual(t, b.DiscountPercent, prev,
			"discount dropped when aging mint from %d", mint+1)
		prev = b.DiscountPercent
	}
}

func TestBonuses_unknownTier(t *testing.T) {
	rules := nerix.DefaultBonusRules()
	_, err := Bonuses(rules, &inter.Token{Type: inter.NftType(9), MintIteration: 1}, 2)
	require.ErrorIs(t, err, inter.ErrUnknownNftType)
}

func TestLegacyBp_bandBoundaries(t *testing.T) {
	bands := nerix.DefaultDecayBands()

	tests := []struct {
		name      string
		mint, now uint32
		want      uint64
	}{
		{"zero_when_same", 4, 4, 0},
		{"zero_when_future", 9, 4, 0},
		{"zero_when_unminted", 0, 4, 0},
		{"single_band_one", 1, 2, 1000},
		{"full_band_one", 1, 6, 5000},
		{"band_one_and_two", 1, 11, 7500},
		{"through_band_three", 1, 21, 10000},
		{"spanning_two_and_three", 8, 13, 2000}, // 8,9,10 at 500 + 11,12 at 250
		{"deep_tail", 101, 103, 100},            // 101,102 at 50
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, legacyBp(bands, tt.mint, tt.now))
		})
	}
}

func TestBestToken(t *testing.T) {
	winnerOld := &inter.Token{ID: 1, Type: inter.NftWinner, MintIteration: 2}
	winnerNew := &inter.Token{ID: 2, Type: inter.NftWinner, MintIteration: 5}
	challenger := &inter.Token{ID: 3, Type: inter.NftChallenger, MintIteration: 1}
	community := &inter.Token{ID: 4, Type: inter.NftCommunity, MintIteration: 1}

	assert.Nil(t, BestToken(nil))
	assert.Same(t, community, BestToken([]*inter.Token{community}))
	assert.Same(t, winnerNew, BestToken([]*inter.Token{community, challenger, winnerNew}),
		"higher tier beats older mint")
	assert.Same(t, winnerOld, BestToken([]*inter.Token{winnerNew, winnerOld}),
		"equal tier, older mint wins")
}
