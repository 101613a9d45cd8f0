// Package api exposes the game engine over JSON-RPC in the go-ethereum
// style: one public API object registered under the "nerix" namespace,
// amounts as hexutil big integers, counts as hexutil uints.
package api

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/nerix-game/go-nerix/gamecore"
	"github.com/nerix-game/go-nerix/inter"
)

// Namespace is the JSON-RPC namespace the API registers under.
const Namespace = "nerix"

// PublicGameAPI provides the game engine RPC surface. All failure kinds are
// returned as distinguishable error messages so clients can render cooldown
// timers or payment prompts instead of a generic failure.
type PublicGameAPI struct {
	game *gamecore.Game
}

// NewPublicGameAPI creates a game API around an engine.
func NewPublicGameAPI(game *gamecore.Game) *PublicGameAPI {
	return &PublicGameAPI{game: game}
}

// Register attaches the API to an RPC server under the "nerix" namespace.
func Register(srv *rpc.Server, game *gamecore.Game) error {
	return srv.RegisterName(Namespace, NewPublicGameAPI(game))
}

// SubmitResult is the RPC shape of an accepted message receipt.
type SubmitResult struct {
	Seq             hexutil.Uint64 `json:"seq"`
	Fee             *hexutil.Big   `json:"fee"`
	DiscountPercent hexutil.Uint64 `json:"discountPercent"`
	CurrentShare    *hexutil.Big   `json:"currentShare"`
	NextShare       *hexutil.Big   `json:"nextShare"`
	TeamShare       *hexutil.Big   `json:"teamShare"`
}

// FinalizeResult is the RPC shape of a winner declaration outcome.
type FinalizeResult struct {
	ClosedIterationOrdinal hexutil.Uint64   `json:"closedIterationOrdinal"`
	Reward                 *hexutil.Big     `json:"reward"`
	MintedTokenIds         []hexutil.Uint64 `json:"mintedTokenIds"`
}

// IterationState is the RPC shape of the in-progress iteration.
type IterationState struct {
	Ordinal       hexutil.Uint64 `json:"ordinal"`
	Status        string         `json:"status"`
	Paused        bool           `json:"paused"`
	CurrentPool   *hexutil.Big   `json:"currentPool"`
	NextPool      *hexutil.Big   `json:"nextPool"`
	TeamPool      *hexutil.Big   `json:"teamPool"`
	TotalMessages hexutil.Uint64 `json:"totalMessages"`
	Participants  hexutil.Uint64 `json:"participants"`
	NextFee       *hexutil.Big   `json:"nextFee"`
	StartTime     hexutil.Uint64 `json:"startTime"`
	CooldownUntil hexutil.Uint64 `json:"cooldownUntil"`
}

// Limits is the RPC shape of a sender's effective message limits.
type Limits struct {
	CharLimit       hexutil.Uint64 `json:"charLimit"`
	DiscountPercent hexutil.Uint64 `json:"discountPercent"`
	ContextSize     hexutil.Uint64 `json:"contextSize"`
}

// Token is the RPC shape of an NFT.
type Token struct {
	ID            hexutil.Uint64 `json:"id"`
	Type          string         `json:"type"`
	MintIteration hexutil.Uint64 `json:"mintIteration"`
	Owner         common.Address `json:"owner"`
}

// SubmitMessage submits a fee-paying message on behalf of sender.
// tokenID 0 means no NFT is presented.
func (a *PublicGameAPI) SubmitMessage(sender common.Address, content string, tokenID hexutil.Uint64, payment *hexutil.Big) (*SubmitResult, error) {
	receipt, err := a.game.SubmitMessage(sender, content, uint64(tokenID), (*big.Int)(payment))
	if err != nil {
		return nil, err
	}
	return &SubmitResult{
		Seq:             hexutil.Uint64(receipt.Seq),
		Fee:             (*hexutil.Big)(receipt.Fee),
		DiscountPercent: hexutil.Uint64(receipt.DiscountPercent),
		CurrentShare:    (*hexutil.Big)(receipt.Pools.Current),
		NextShare:       (*hexutil.Big)(receipt.Pools.Next),
		TeamShare:       (*hexutil.Big)(receipt.Pools.Team),
	}, nil
}

// DeclareWinner closes the current iteration in favor of winner.
func (a *PublicGameAPI) DeclareWinner(winner common.Address) (*FinalizeResult, error) {
	res, err := a.game.DeclareWinner(winner)
	if err != nil {
		return nil, err
	}
	minted := make([]hexutil.Uint64, len(res.MintedTokenIDs))
	for i, id := range res.MintedTokenIDs {
		minted[i] = hexutil.Uint64(id)
	}
	return &FinalizeResult{
		ClosedIterationOrdinal: hexutil.Uint64(res.ClosedOrdinal),
		Reward:                 (*hexutil.Big)(res.Reward),
		MintedTokenIds:         minted,
	}, nil
}

// QuoteFee returns the fee the sender would pay for the next message.
func (a *PublicGameAPI) QuoteFee(sender common.Address, tokenID hexutil.Uint64) (*hexutil.Big, error) {
	fee, err := a.game.QuoteFee(sender, uint64(tokenID))
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(fee), nil
}

// QuoteLimits returns the limits the sender would enjoy for the next message.
func (a *PublicGameAPI) QuoteLimits(sender common.Address, tokenID hexutil.Uint64) (*Limits, error) {
	b, err := a.game.QuoteLimits(sender, uint64(tokenID))
	if err != nil {
		return nil, err
	}
	return &Limits{
		CharLimit:       hexutil.Uint64(b.CharLimit),
		DiscountPercent: hexutil.Uint64(b.DiscountPercent),
		ContextSize:     hexutil.Uint64(b.ContextSize),
	}, nil
}

// GetIterationState returns the current iteration view.
func (a *PublicGameAPI) GetIterationState() *IterationState {
	st := a.game.IterationState()
	return &IterationState{
		Ordinal:       hexutil.Uint64(st.Ordinal),
		Status:        st.Status.String(),
		Paused:        st.Paused,
		CurrentPool:   (*hexutil.Big)(st.CurrentPool),
		NextPool:      (*hexutil.Big)(st.NextPool),
		TeamPool:      (*hexutil.Big)(st.TeamPool),
		TotalMessages: hexutil.Uint64(st.TotalMessages),
		Participants:  hexutil.Uint64(uint64(st.Participants)),
		NextFee:       (*hexutil.Big)(st.NextFee),
		StartTime:     unixOrZero(st.StartTime),
		CooldownUntil: unixOrZero(st.CooldownUntil),
	}
}

// GetSealedIteration returns the sealed record of a closed iteration, or nil
// if the ordinal is open or no longer retained.
func (a *PublicGameAPI) GetSealedIteration(ordinal hexutil.Uint64) *inter.IterationRecord {
	return a.game.SealedIteration(uint32(ordinal))
}

// TokensOf lists the NFTs currently owned by owner.
func (a *PublicGameAPI) TokensOf(owner common.Address) []Token {
	tokens := a.game.TokensOf(owner)
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = Token{
			ID:            hexutil.Uint64(tok.ID),
			Type:          tok.Type.String(),
			MintIteration: hexutil.Uint64(tok.MintIteration),
			Owner:         tok.Owner,
		}
	}
	return out
}

// TransferToken moves a token between owners.
func (a *PublicGameAPI) TransferToken(from, to common.Address, tokenID hexutil.Uint64) error {
	return a.game.TransferToken(from, to, uint64(tokenID))
}

// Pause suspends the game. Idempotent.
func (a *PublicGameAPI) Pause() {
	a.game.Pause()
}

// Unpause resumes the game. Idempotent.
func (a *PublicGameAPI) Unpause() {
	a.game.Unpause()
}

// WithdrawTeamFunds drains the team pool.
func (a *PublicGameAPI) WithdrawTeamFunds() (*hexutil.Big, error) {
	amount, err := a.game.WithdrawTeamFunds()
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(amount), nil
}

func unixOrZero(t time.Time) hexutil.Uint64 {
	if t.IsZero() {
		return 0
	}
	return hexutil.Uint64(t.Unix())
}
