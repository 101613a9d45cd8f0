package gamecore

import (
	"math/big"

	"github.com/nerix-game/go-nerix/nerix"
)

// PoolSplit is the three-way division of one paid fee. The parts always sum
// to exactly the input fee: the next and team shares are floored percentages
// and the current share absorbs the integer remainder.
type PoolSplit struct {
	Current *big.Int
	Next    *big.Int
	Team    *big.Int
}

var oneHundred = big.NewInt(100)

// SplitFee divides fee per the pool rules. Conservation holds for any
// non-negative fee, including amounts beyond 2^63.
func SplitFee(rules nerix.PoolRules, fee *big.Int) PoolSplit {
	next := new(big.Int).SetUint64(uint64(rules.NextSharePercent))
	next.Mul(next, fee)
	next.Div(next, oneHundred)

	team := new(big.Int).SetUint64(uint64(rules.TeamSharePercent))
	team.Mul(team, fee)
	team.Div(team, oneHundred)

	current := new(big.Int).Sub(fee, next)
	current.Sub(current, team)

	return PoolSplit{Current: current, Next: next, Team: team}
}

// pools tracks the three running balances of an iteration in progress.
type pools struct {
	current *big.Int
	next    *big.Int
	team    *big.Int
}

func newPools(seed *big.Int) *pools {
	return &pools{
		current: new(big.Int).Set(seed),
		next:    new(big.Int),
		team:    new(big.Int),
	}
}

// credit adds a fee split to the running balances.
func (p *pools) credit(s PoolSplit) {
	p.current.Add(p.current, s.Current)
	p.next.Add(p.next, s.Next)
	p.team.Add(p.team, s.Team)
}

// rollover closes the iteration: the current pool is paid out, the next pool
// becomes the seed of the new current pool, and the team pool carries over
// untouched. Returns the reward paid out.
func (p *pools) rollover() *big.Int {
	reward := p.current
	p.current = p.next
	p.next = new(big.Int)
	return reward
}
