package gamecore

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerix-game/go-nerix/nerix"
)

func TestSplitFee_sixtyTwentyTwenty(t *testing.T) {
	rules := nerix.DefaultPoolRules()

	s := SplitFee(rules, big.NewInt(10_000_000_000_000_000))
	assert.Zero(t, s.Current.Cmp(big.NewInt(6_000_000_000_000_000)))
	assert.Zero(t, s.Next.Cmp(big.NewInt(2_000_000_000_000_000)))
	assert.Zero(t, s.Team.Cmp(big.NewInt(2_000_000_000_000_000)))
}

func TestSplitFee_remainderGoesToCurrent(t *testing.T) {
	rules := nerix.DefaultPoolRules()

	// 1 wei: floored shares are zero, the whole wei lands in current
	s := SplitFee(rules, big.NewInt(1))
	assert.Zero(t, s.Current.Cmp(big.NewInt(1)))
	assert.Zero(t, s.Next.Sign())
	assert.Zero(t, s.Team.Sign())

	// 7 wei: next=1, team=1, current absorbs the rest
	s = SplitFee(rules, big.NewInt(7))
	assert.Zero(t, s.Current.Cmp(big.NewInt(5)))
	assert.Zero(t, s.Next.Cmp(big.NewInt(1)))
	assert.Zero(t, s.Team.Cmp(big.NewInt(1)))
}

// conservation must hold for every fee, including amounts beyond 2^63
func TestSplitFee_conservation(t *testing.T) {
	rules := nerix.DefaultPoolRules()

	check := func(fee *big.Int) {
		s := SplitFee(rules, fee)
		sum := new(big.Int).Add(s.Current, s.Next)
		sum.Add(sum, s.Team)
		require.Zero(t, sum.Cmp(fee), "split of %s does not conserve", fee)
		require.GreaterOrEqual(t, s.Current.Sign(), 0)
		require.GreaterOrEqual(t, s.Next.Sign(), 0)
		require.GreaterOrEqual(t, s.Team.Sign(), 0)
	}

	check(new(big.Int))
	check(big.NewInt(1))
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	check(huge)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		check(new(big.Int).Rand(rng, huge))
	}
}

func TestPools_rollover(t *testing.T) {
	p := newPools(big.NewInt(1000))
	p.credit(PoolSplit{
		Current: big.NewInt(600),
		Next:    big.NewInt(200),
		Team:    big.NewInt(200),
	})

	reward := p.rollover()
	assert.Zero(t, reward.Cmp(big.NewInt(1600)), "reward = seed + current share")
	assert.Zero(t, p.current.Cmp(big.NewInt(200)), "next pool seeds the new current")
	assert.Zero(t, p.next.Sign(), "next pool restarts empty")
	assert.Zero(t, p.team.Cmp(big.NewInt(200)), "team pool carries over")
}
