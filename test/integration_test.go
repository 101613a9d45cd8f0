package test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerix-game/go-nerix/gamecore"
	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
	"github.com/nerix-game/go-nerix/nerix/genesis"
)

var (
	user1 = common.HexToAddress("0x0000000000000000000000000000000000000101")
	user2 = common.HexToAddress("0x0000000000000000000000000000000000000202")
	user3 = common.HexToAddress("0x0000000000000000000000000000000000000303")
)

func bnb(milli int64) *big.Int {
	out := big.NewInt(milli)
	return out.Mul(out, big.NewInt(1_000_000_000_000_000))
}

// TestFullRound walks one complete game round on fakenet economics:
// three paid messages, a winner declaration, and the winner's token paying
// a discounted fee in the next iteration.
func TestFullRound(t *testing.T) {
	g := genesis.Genesis{
		Rules:     nerix.FakeNetRules(),
		SeedPool:  new(big.Int).Set(genesis.DefaultSeedPool),
		StartTime: inter.FromUnix(time.Unix(1_700_000_000, 0)),
	}
	game, err := gamecore.NewGame(g)
	require.NoError(t, err)
	defer game.Stop()

	payment := bnb(2000) // 2 BNB covers every fee of this round

	// message 1: base fee 0.01 BNB
	r1, err := game.SubmitMessage(user1, "first", 0, payment)
	require.NoError(t, err)
	assert.Zero(t, r1.Fee.Cmp(big.NewInt(10_000_000_000_000_000)))

	// message 2: +0.78%
	r2, err := game.SubmitMessage(user2, "second", 0, payment)
	require.NoError(t, err)
	assert.Zero(t, r2.Fee.Cmp(big.NewInt(10_078_000_000_000_000)))

	// message 3: compounded again, floored per step
	r3, err := game.SubmitMessage(user3, "third", 0, payment)
	require.NoError(t, err)
	assert.Zero(t, r3.Fee.Cmp(big.NewInt(10_156_608_400_000_000)))

	// every fee is split 60/20/20 and fully conserved
	paid := new(big.Int).Add(r1.Fee, r2.Fee)
	paid.Add(paid, r3.Fee)
	st := game.IterationState()
	assert.Equal(t, uint32(3), st.TotalMessages)
	assert.Equal(t, 3, st.Participants)
	assert.Positive(t, st.CurrentPool.Cmp(g.SeedPool), "reward pool grew past the seed")
	total := new(big.Int).Add(st.CurrentPool, st.NextPool)
	total.Add(total, st.TeamPool)
	assert.Zero(t, total.Cmp(new(big.Int).Add(g.SeedPool, paid)))

	// user1 wins: reward is the whole current pool, every participant
	// receives exactly one token
	res, err := game.DeclareWinner(user1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.ClosedOrdinal)
	assert.Zero(t, res.Reward.Cmp(st.CurrentPool))
	assert.Len(t, res.MintedTokenIDs, 3)

	winnerTokens := game.TokensOf(user1)
	require.Len(t, winnerTokens, 1)
	assert.Equal(t, inter.NftWinner, winnerTokens[0].Type)
	for _, u := range []common.Address{user2, user3} {
		toks := game.TokensOf(u)
		require.Len(t, toks, 1)
		assert.Equal(t, inter.NftChallenger, toks[0].Type)
	}

	// iteration 2 opens seeded with the rolled-over next pool
	st2 := game.IterationState()
	assert.Equal(t, uint32(2), st2.Ordinal)
	assert.Zero(t, st2.CurrentPool.Cmp(st.NextPool))
	assert.Zero(t, st2.NextPool.Sign())
	assert.Zero(t, st2.NextFee.Cmp(nerix.DefaultBaseFee), "fee curve restarts at base")

	// the winner's token is one iteration old: 10% legacy scales the 20%
	// tier discount to 22%, so the winner's quote undercuts the plain one
	quoted, err := game.QuoteFee(user1, winnerTokens[0].ID)
	require.NoError(t, err)
	assert.Zero(t, quoted.Cmp(big.NewInt(7_800_000_000_000_000)))
	plain, err := game.QuoteFee(user2, 0)
	require.NoError(t, err)
	assert.Positive(t, plain.Cmp(quoted))

	r4, err := game.SubmitMessage(user1, "fourth", winnerTokens[0].ID, payment)
	require.NoError(t, err)
	assert.Equal(t, uint32(22), r4.DiscountPercent)
	assert.Zero(t, r4.Fee.Cmp(quoted))
}

// TestCooldownRound verifies the waiting state between iterations when a
// cooldown is configured.
func TestCooldownRound(t *testing.T) {
	rules := nerix.FakeNetRules()
	rules.Timing.CooldownMinutes = 60

	now := time.Unix(1_700_000_000, 0)

	g := genesis.Genesis{
		Rules:     rules,
		SeedPool:  new(big.Int).Set(genesis.DefaultSeedPool),
		StartTime: inter.FromUnix(now),
	}
	game, err := gamecore.NewGame(g, gamecore.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	defer game.Stop()

	_, err = game.SubmitMessage(user1, "gm", 0, bnb(2000))
	require.NoError(t, err)
	_, err = game.DeclareWinner(user1)
	require.NoError(t, err)

	assert.Equal(t, gamecore.StatusWaitingNextIteration, game.State())
	_, err = game.SubmitMessage(user1, "gm", 0, bnb(2000))
	require.ErrorIs(t, err, gamecore.ErrCooldownActive)

	now = now.Add(time.Hour + time.Minute)
	assert.Equal(t, gamecore.StatusActive, game.State())
	_, err = game.SubmitMessage(user1, "gm", 0, bnb(2000))
	require.NoError(t, err)
}

// TestFeeCapSteadyState verifies that a long iteration settles at the cap
// and stays there.
func TestFeeCapSteadyState(t *testing.T) {
	rules := nerix.FakeNetRules()
	// a low cap keeps the test quick
	rules.Fees.FeeCap = big.NewInt(10_200_000_000_000_000)

	g := genesis.Genesis{
		Rules:     rules,
		SeedPool:  new(big.Int).Set(genesis.DefaultSeedPool),
		StartTime: inter.FromUnix(time.Unix(1_700_000_000, 0)),
	}
	game, err := gamecore.NewGame(g)
	require.NoError(t, err)
	defer game.Stop()

	var last *big.Int
	for i := 0; i < 10; i++ {
		r, err := game.SubmitMessage(user1, "gm", 0, bnb(2000))
		require.NoError(t, err)
		last = r.Fee
	}
	assert.Zero(t, last.Cmp(rules.Fees.FeeCap), "curve settles at the cap")
}
