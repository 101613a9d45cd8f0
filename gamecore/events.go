package gamecore

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/nerix-game/go-nerix/inter"
)

// MessageEvent is emitted after every accepted message.
type MessageEvent struct {
	Iteration uint32
	Record    *inter.MessageRecord
}

// IterationEvent is emitted when an iteration is finalized.
type IterationEvent struct {
	Sealed *inter.IterationRecord
	Reward *big.Int
	Winner common.Address
}

// feeds bundles the engine's notification channels. Subscriptions use the
// usual drop-none semantics of event.Feed: a slow subscriber blocks delivery,
// so consumers should drain promptly or buffer.
type feeds struct {
	message   event.Feed
	iteration event.Feed
	scope     event.SubscriptionScope
}

// SubscribeMessages delivers a MessageEvent for every accepted message.
func (g *Game) SubscribeMessages(ch chan<- MessageEvent) event.Subscription {
	return g.feeds.scope.Track(g.feeds.message.Subscribe(ch))
}

// SubscribeIterations delivers an IterationEvent for every finalization.
func (g *Game) SubscribeIterations(ch chan<- IterationEvent) event.Subscription {
	return g.feeds.scope.Track(g.feeds.iteration.Subscribe(ch))
}
