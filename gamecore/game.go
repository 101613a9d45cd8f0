// Package gamecore implements the game engine: the fee curve, the pool
// accounting, the NFT bonus calculus, the per-iteration participant ledger
// and the iteration lifecycle that orchestrates them.
//
// The engine is a single-writer state machine. All mutations are serialized
// by one mutex and are atomic in the reject-before-apply sense: a call either
// fully applies or returns an error with no state change. Reads are served
// from an atomically published snapshot and never block the writer.
package gamecore

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	uberatomic "go.uber.org/atomic"

	"github.com/nerix-game/go-nerix/inter"
	"github.com/nerix-game/go-nerix/nerix"
	"github.com/nerix-game/go-nerix/nerix/genesis"
)

// topChallengerSlots is how many non-winning participants receive a
// Challenger token at finalization.
const topChallengerSlots = 3

// defaultHistoryRetention bounds how many sealed iteration records are kept
// in memory. Older records are the caller's persistence concern.
const defaultHistoryRetention = 1024

// Status is the lifecycle state of the engine.
type Status uint8

const (
	// StatusActive accepts messages.
	StatusActive Status = iota
	// StatusProcessingWinner rejects messages while a declaration finalizes.
	StatusProcessingWinner
	// StatusWaitingNextIteration rejects messages until the cooldown elapses.
	StatusWaitingNextIteration
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusProcessingWinner:
		return "processing_winner"
	case StatusWaitingNextIteration:
		return "waiting_next_iteration"
	default:
		return "unknown"
	}
}

// Receipt is returned for every accepted message.
type Receipt struct {
	Seq             uint32
	Fee             *big.Int
	DiscountPercent uint32
	Pools           PoolSplit
}

// FinalizeResult is returned by a successful winner declaration.
type FinalizeResult struct {
	ClosedOrdinal  uint32
	Reward         *big.Int
	MintedTokenIDs []uint64
}

// IterationState is the caller-visible view of the iteration in progress.
type IterationState struct {
	Ordinal       uint32
	Status        Status
	Paused        bool
	CurrentPool   *big.Int
	NextPool      *big.Int
	TeamPool      *big.Int
	TotalMessages uint32
	Participants  int
	NextFee       *big.Int
	StartTime     time.Time
	CooldownUntil time.Time
}

// view is the atomically published read snapshot. Pools and fee are copies;
// tokens are value copies keyed by ID so quote reads never race the writer.
type view struct {
	ordinal       uint32
	status        Status
	paused        bool
	currentPool   *big.Int
	nextPool      *big.Int
	teamPool      *big.Int
	totalMessages uint32
	participants  int
	nextFee       *big.Int
	startTime     time.Time
	lastMessageAt time.Time
	cooldownUntil time.Time
	tokens        map[uint64]inter.Token
	ownerTokens   map[common.Address][]uint64
}

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger sets the engine logger.
func WithLogger(l *logrus.Logger) Option {
	return func(g *Game) { g.log = l.WithField("module", "gamecore") }
}

// WithClock injects a time source. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(g *Game) { g.clock = clock }
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(g *Game) { g.metrics = m }
}

// WithHistoryRetention bounds the in-memory sealed iteration history.
func WithHistoryRetention(n int) Option {
	return func(g *Game) { g.retention = n }
}

// Game is the iteration lifecycle engine.
type Game struct {
	mu sync.Mutex

	rules nerix.Rules

	log       *logrus.Entry
	clock     func() time.Time
	metrics   *Metrics
	retention int

	curve  *feeCurve
	pools  *pools
	ledger *Ledger
	tokens *TokenRegistry

	ordinal       uint32
	seq           uint32 // sequence of the last accepted message
	paused        bool
	status        Status
	startTime     time.Time
	lastMessageAt time.Time
	cooldownUntil time.Time

	messages []*inter.MessageRecord
	history  []*inter.IterationRecord

	feeds feeds

	snapshot *uberatomic.Pointer[view]
}

// NewGame builds an engine from genesis state.
func NewGame(g genesis.Genesis, opts ...Option) (*Game, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}

	game := &Game{
		rules:     g.Rules.Copy(),
		log:       logrus.StandardLogger().WithField("module", "gamecore"),
		clock:     time.Now,
		retention: defaultHistoryRetention,
		curve:     newFeeCurve(g.Rules.Fees),
		pools:     newPools(g.SeedPool),
		ledger:    NewLedger(),
		tokens:    NewTokenRegistry(),
		ordinal:   1,
		status:    StatusActive,
		startTime: g.StartTime.Time(),
	}
	for _, opt := range opts {
		opt(game)
	}
	game.snapshot = uberatomic.NewPointer(game.buildView())

	game.log.WithFields(logrus.Fields{
		"rules":     game.rules.Name,
		"seed_pool": g.SeedPool.String(),
		"start":     game.startTime,
	}).Info("game initialized")
	return game, nil
}

// buildView snapshots the mutable state. Caller must hold g.mu (or be the
// constructor).
func (g *Game) buildView() *view {
	tokens := make(map[uint64]inter.Token, len(g.tokens.byID))
	for id, tok := range g.tokens.byID {
		tokens[id] = *tok
	}
	owners := make(map[common.Address][]uint64, len(g.tokens.byOwner))
	for addr, ids := range g.tokens.byOwner {
		cp := make([]uint64, len(ids))
		copy(cp, ids)
		owners[addr] = cp
	}
	return &view{
		ordinal:       g.ordinal,
		status:        g.status,
		paused:        g.paused,
		currentPool:   new(big.Int).Set(g.pools.current),
		nextPool:      new(big.Int).Set(g.pools.next),
		teamPool:      new(big.Int).Set(g.pools.team),
		totalMessages: g.seq,
		participants:  g.ledger.Len(),
		nextFee:       g.curve.current(),
		startTime:     g.startTime,
		lastMessageAt: g.lastMessageAt,
		cooldownUntil: g.cooldownUntil,
		tokens:        tokens,
		ownerTokens:   owners,
	}
}

// publish refreshes the read snapshot. Caller must hold g.mu.
func (g *Game) publish() {
	g.snapshot.Store(g.buildView())
	poolWei, _ := new(big.Float).SetInt(g.pools.current).Float64()
	g.metrics.observeState(g.ordinal, poolWei, g.ledger.Len())
}

// refreshStatus applies the lazy cooldown transition. Caller must hold g.mu.
// Per the lifecycle rules there is no timer: the elapse of the cooldown is
// observed by whatever call arrives next.
func (g *Game) refreshStatus(now time.Time) {
	if g.status == StatusWaitingNextIteration && !now.Before(g.cooldownUntil) {
		g.status = StatusActive
		g.log.WithField("iteration", g.ordinal).Info("cooldown elapsed, iteration open")
	}
}

// effectiveStatus is refreshStatus for the read path: it reports the status
// a write arriving now would see, without mutating anything.
func (v *view) effectiveStatus(now time.Time) Status {
	if v.status == StatusWaitingNextIteration && !now.Before(v.cooldownUntil) {
		return StatusActive
	}
	return v.status
}

// resolveToken looks up and authorizes the token a sender presents.
// tokenID 0 means no token. Caller must hold g.mu.
func (g *Game) resolveToken(sender common.Address, tokenID uint64) (*inter.Token, error) {
	if tokenID == 0 {
		return nil, nil
	}
	tok, err := g.tokens.Get(tokenID)
	if err != nil {
		return nil, err
	}
	if tok.Owner != sender {
		return nil, fmt.Errorf("%w: token %d", ErrNotTokenOwner, tokenID)
	}
	return tok, nil
}

// SubmitMessage accepts a fee-paying message. The payment must cover the
// discounted fee of the next sequence number; overpayment is accepted and
// split like an exact payment of the required fee (the surplus is the
// caller's concern, e.g. change on the payment rail). Either every effect
// applies (sequence, pools, ledger, record) or none does.
func (g *Game) SubmitMessage(sender common.Address, content string, tokenID uint64, payment *big.Int) (*Receipt, error) {
	g.mu.Lock()

	now := g.clock()
	g.refreshStatus(now)

	if err := g.checkAccepting(now); err != nil {
		g.mu.Unlock()
		g.metrics.rejected(rejectionReason(err))
		return nil, err
	}

	tok, err := g.resolveToken(sender, tokenID)
	if err != nil {
		g.mu.Unlock()
		g.metrics.rejected(rejectionReason(err))
		return nil, err
	}
	bonus, err := Bonuses(g.rules.Bonus, tok, g.ordinal)
	if err != nil {
		g.mu.Unlock()
		g.metrics.rejected(rejectionReason(err))
		return nil, err
	}

	if uint32(utf8.RuneCountInString(content)) > bonus.CharLimit {
		g.mu.Unlock()
		g.metrics.rejected(rejectionReason(ErrContentTooLong))
		return nil, fmt.Errorf("%w: %d > %d", ErrContentTooLong, utf8.RuneCountInString(content), bonus.CharLimit)
	}

	fee := applyDiscount(g.curve.current(), bonus.DiscountPercent)
	if payment == nil || payment.Cmp(fee) < 0 {
		g.mu.Unlock()
		g.metrics.rejected(rejectionReason(ErrInsufficientPayment))
		return nil, fmt.Errorf("%w: required %s wei", ErrInsufficientPayment, fee)
	}

	// all checks passed, apply
	g.seq++
	split := SplitFee(g.rules.Pools, fee)
	g.pools.credit(split)
	g.curve.advance()
	g.ledger.RecordAttempt(sender)
	g.lastMessageAt = now

	record := &inter.MessageRecord{
		Seq:             g.seq,
		Payer:           sender,
		Fee:             new(big.Int).Set(fee),
		TokenID:         tokenID,
		DiscountPercent: bonus.DiscountPercent,
		Length:          uint32(utf8.RuneCountInString(content)),
		Time:            inter.FromUnix(now),
	}
	g.messages = append(g.messages, record)

	g.publish()
	feeWei, _ := new(big.Float).SetInt(fee).Float64()
	g.metrics.accepted(feeWei)
	iteration := g.ordinal
	g.log.WithFields(logrus.Fields{
		"iteration": iteration,
		"seq":       record.Seq,
		"payer":     sender.Hex(),
		"fee":       fee.String(),
		"discount":  bonus.DiscountPercent,
	}).Debug("message accepted")
	g.mu.Unlock()

	g.feeds.message.Send(MessageEvent{Iteration: iteration, Record: record})

	return &Receipt{
		Seq:             record.Seq,
		Fee:             new(big.Int).Set(fee),
		DiscountPercent: bonus.DiscountPercent,
		Pools:           split,
	}, nil
}

// checkAccepting verifies that a message may be accepted right now.
// Caller must hold g.mu with refreshStatus already applied.
func (g *Game) checkAccepting(now time.Time) error {
	if g.paused {
		return ErrGamePaused
	}
	switch g.status {
	case StatusProcessingWinner:
		return ErrGameInactive
	case StatusWaitingNextIteration:
		return g.cooldownError(now)
	}
	if now.Before(g.startTime) {
		return ErrGameInactive
	}
	return nil
}

// cooldownError reports how long the waiting state lasts from now.
// Caller must hold g.mu.
func (g *Game) cooldownError(now time.Time) error {
	remaining := g.cooldownUntil.Sub(now)
	minutes := int(remaining.Minutes())
	if remaining > 0 && minutes == 0 {
		minutes = 1
	}
	return fmt.Errorf("%w: %d minutes remaining", ErrCooldownActive, minutes)
}

// DeclareWinner closes the current iteration: pays the current pool to the
// winner, mints one Winner token, Challenger tokens for up to three top
// challengers, Community tokens for every other participant, rolls the next
// pool into a fresh iteration and arms the cooldown if one is configured.
func (g *Game) DeclareWinner(winner common.Address) (*FinalizeResult, error) {
	g.mu.Lock()

	now := g.clock()
	g.refreshStatus(now)

	if g.paused {
		g.mu.Unlock()
		return nil, ErrGamePaused
	}
	switch g.status {
	case StatusProcessingWinner:
		g.mu.Unlock()
		return nil, ErrAlreadyProcessing
	case StatusWaitingNextIteration:
		err := g.cooldownError(now)
		g.mu.Unlock()
		return nil, err
	}
	if !g.ledger.IsParticipant(winner) {
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotAParticipant, winner.Hex())
	}

	g.status = StatusProcessingWinner
	closed := g.ordinal

	// tier-exclusive minting: Winner beats Challenger beats Community,
	// one new token per participant
	minted := make([]uint64, 0, g.ledger.Len())
	mint := func(addr common.Address, t inter.NftType) {
		tok, err := g.tokens.Mint(addr, t, closed)
		if err != nil {
			// tiers are engine constants, a mint failure is a programming error
			g.log.WithError(err).Panic("mint failed")
		}
		minted = append(minted, tok.ID)
		g.metrics.minted(t.String())
	}

	mint(winner, inter.NftWinner)
	challengers := g.ledger.TopChallengers(winner, topChallengerSlots)
	for _, addr := range challengers {
		mint(addr, inter.NftChallenger)
	}
	tiered := make(map[common.Address]bool, len(challengers)+1)
	tiered[winner] = true
	for _, addr := range challengers {
		tiered[addr] = true
	}
	for _, addr := range g.ledger.Participants() {
		if !tiered[addr] {
			mint(addr, inter.NftCommunity)
		}
	}

	reward := g.pools.rollover()

	sealed := &inter.IterationRecord{
		Ordinal:       closed,
		CurrentPool:   new(big.Int).Set(reward),
		NextPool:      new(big.Int).Set(g.pools.current), // already rolled
		TeamPool:      new(big.Int).Set(g.pools.team),
		TotalMessages: g.seq,
		Participants:  uint32(g.ledger.Len()),
		Winner:        winner,
		StartTime:     inter.FromUnix(g.startTime),
		EndTime:       inter.FromUnix(now),
	}
	g.history = append(g.history, sealed)
	if len(g.history) > g.retention {
		g.history = g.history[len(g.history)-g.retention:]
	}

	// open iteration closed+1
	g.ordinal = closed + 1
	g.seq = 0
	g.messages = g.messages[:0]
	g.ledger.Reset()
	g.curve.reset()
	g.startTime = now

	if g.rules.Timing.CooldownMinutes > 0 {
		g.cooldownUntil = g.lastMessageAt.Add(time.Duration(g.rules.Timing.CooldownMinutes) * time.Minute)
		if g.cooldownUntil.After(now) {
			g.status = StatusWaitingNextIteration
			g.startTime = g.cooldownUntil
		} else {
			g.status = StatusActive
		}
	} else {
		g.status = StatusActive
	}

	g.publish()
	g.log.WithFields(logrus.Fields{
		"iteration": closed,
		"winner":    winner.Hex(),
		"reward":    reward.String(),
		"minted":    len(minted),
		"next":      g.ordinal,
	}).Info("iteration finalized")
	g.mu.Unlock()

	g.feeds.iteration.Send(IterationEvent{
		Sealed: sealed,
		Reward: new(big.Int).Set(reward),
		Winner: winner,
	})

	return &FinalizeResult{
		ClosedOrdinal:  closed,
		Reward:         new(big.Int).Set(reward),
		MintedTokenIDs: minted,
	}, nil
}

// Pause suspends message acceptance and winner declarations. Idempotent.
func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		g.paused = true
		g.publish()
		g.log.Warn("game paused")
	}
}

// Unpause lifts an operator pause. Idempotent.
func (g *Game) Unpause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused {
		g.paused = false
		g.publish()
		g.log.Info("game unpaused")
	}
}

// WithdrawTeamFunds drains the team pool and returns the withdrawn amount.
func (g *Game) WithdrawTeamFunds() (*big.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pools.team.Sign() == 0 {
		return nil, ErrNothingToWithdraw
	}
	out := g.pools.team
	g.pools.team = new(big.Int)
	g.publish()
	g.log.WithField("amount", out.String()).Info("team funds withdrawn")
	return out, nil
}

// TransferToken moves a token between owners. Accrued legacy travels with
// the token.
func (g *Game) TransferToken(from, to common.Address, tokenID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.tokens.Transfer(from, to, tokenID); err != nil {
		return err
	}
	g.publish()
	g.log.WithFields(logrus.Fields{
		"token": tokenID,
		"from":  from.Hex(),
		"to":    to.Hex(),
	}).Debug("token transferred")
	return nil
}

// State returns the effective lifecycle status, with the cooldown evaluated
// against the clock.
func (g *Game) State() Status {
	v := g.snapshot.Load()
	return v.effectiveStatus(g.clock())
}

// IterationState returns a consistent view of the iteration in progress.
func (g *Game) IterationState() IterationState {
	v := g.snapshot.Load()
	return IterationState{
		Ordinal:       v.ordinal,
		Status:        v.effectiveStatus(g.clock()),
		Paused:        v.paused,
		CurrentPool:   new(big.Int).Set(v.currentPool),
		NextPool:      new(big.Int).Set(v.nextPool),
		TeamPool:      new(big.Int).Set(v.teamPool),
		TotalMessages: v.totalMessages,
		Participants:  v.participants,
		NextFee:       new(big.Int).Set(v.nextFee),
		StartTime:     v.startTime,
		CooldownUntil: v.cooldownUntil,
	}
}

// quoteBonus resolves the bonus a sender would enjoy, from the snapshot.
func (v *view) quoteBonus(rules nerix.BonusRules, sender common.Address, tokenID uint64) (Bonus, error) {
	if tokenID == 0 {
		return baseBonus(rules), nil
	}
	tok, ok := v.tokens[tokenID]
	if !ok {
		return Bonus{}, fmt.Errorf("%w: id %d", ErrUnknownToken, tokenID)
	}
	if tok.Owner != sender {
		return Bonus{}, fmt.Errorf("%w: token %d", ErrNotTokenOwner, tokenID)
	}
	return Bonuses(rules, &tok, v.ordinal)
}

// QuoteFee returns the fee the sender would pay for the next message with
// the given token (0 = none). Quotes are advisory: the authoritative fee is
// computed again inside SubmitMessage.
func (g *Game) QuoteFee(sender common.Address, tokenID uint64) (*big.Int, error) {
	v := g.snapshot.Load()
	bonus, err := v.quoteBonus(g.rules.Bonus, sender, tokenID)
	if err != nil {
		return nil, err
	}
	return applyDiscount(v.nextFee, bonus.DiscountPercent), nil
}

// QuoteLimits returns the effective limits the sender would enjoy for the
// next message with the given token (0 = none).
func (g *Game) QuoteLimits(sender common.Address, tokenID uint64) (Bonus, error) {
	v := g.snapshot.Load()
	return v.quoteBonus(g.rules.Bonus, sender, tokenID)
}

// TokensOf returns value copies of the tokens currently owned by addr.
func (g *Game) TokensOf(addr common.Address) []inter.Token {
	v := g.snapshot.Load()
	ids := v.ownerTokens[addr]
	out := make([]inter.Token, 0, len(ids))
	for _, id := range ids {
		out = append(out, v.tokens[id])
	}
	return out
}

// SealedIteration returns the sealed record of a closed iteration, or nil if
// the ordinal is still open or has been evicted from the retained history.
func (g *Game) SealedIteration(ordinal uint32) *inter.IterationRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].Ordinal == ordinal {
			return g.history[i]
		}
	}
	return nil
}

// Rules returns a deep copy of the rules in force.
func (g *Game) Rules() nerix.Rules {
	return g.rules.Copy()
}

// Stop releases the engine's subscriptions.
func (g *Game) Stop() {
	g.feeds.scope.Close()
}

// rejectionReason maps an error to a stable metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrGamePaused):
		return "paused"
	case errors.Is(err, ErrGameInactive):
		return "inactive"
	case errors.Is(err, ErrCooldownActive):
		return "cooldown"
	case errors.Is(err, ErrContentTooLong):
		return "too_long"
	case errors.Is(err, ErrInsufficientPayment):
		return "underpaid"
	case errors.Is(err, ErrNotTokenOwner):
		return "not_owner"
	case errors.Is(err, ErrUnknownToken):
		return "unknown_token"
	default:
		return "other"
	}
}
