package gamecore

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nerix-game/go-nerix/inter"
)

// TokenRegistry holds every minted NFT and its current owner. IDs are
// assigned sequentially starting at 1; ID 0 is reserved to mean "no token".
// The registry is not safe for concurrent use; the engine serializes access.
type TokenRegistry struct {
	nextID  uint64
	byID    map[uint64]*inter.Token
	byOwner map[common.Address][]uint64
}

// NewTokenRegistry returns an empty registry.
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		nextID:  1,
		byID:    make(map[uint64]*inter.Token),
		byOwner: make(map[common.Address][]uint64),
	}
}

// Mint creates a token of the given tier for owner, stamped with the
// iteration it was minted in, and returns it.
func (tr *TokenRegistry) Mint(owner common.Address, t inter.NftType, mintIteration uint32) (*inter.Token, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", inter.ErrUnknownNftType, uint8(t))
	}
	tok := &inter.Token{
		ID:            tr.nextID,
		Type:          t,
		MintIteration: mintIteration,
		Owner:         owner,
	}
	tr.nextID++
	tr.byID[tok.ID] = tok
	tr.byOwner[owner] = append(tr.byOwner[owner], tok.ID)
	return tok, nil
}

// Get returns the token with the given ID.
func (tr *TokenRegistry) Get(id uint64) (*inter.Token, error) {
	tok, ok := tr.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownToken, id)
	}
	return tok, nil
}

// OwnerOf returns the current owner of a token.
func (tr *TokenRegistry) OwnerOf(id uint64) (common.Address, error) {
	tok, err := tr.Get(id)
	if err != nil {
		return common.Address{}, err
	}
	return tok.Owner, nil
}

// TokensOf returns all tokens currently owned by addr.
func (tr *TokenRegistry) TokensOf(addr common.Address) []*inter.Token {
	ids := tr.byOwner[addr]
	out := make([]*inter.Token, 0, len(ids))
	for _, id := range ids {
		out = append(out, tr.byID[id])
	}
	return out
}

// Transfer moves a token to a new owner. The bonuses travel with the token:
// MintIteration is unchanged, so accrued legacy follows the token, not the
// holder.
func (tr *TokenRegistry) Transfer(from, to common.Address, id uint64) error {
	tok, err := tr.Get(id)
	if err != nil {
		return err
	}
	if tok.Owner != from {
		return fmt.Errorf("%w: token %d", ErrNotTokenOwner, id)
	}
	if from == to {
		return nil
	}

	ids := tr.byOwner[from]
	for i, v := range ids {
		if v == id {
			tr.byOwner[from] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(tr.byOwner[from]) == 0 {
		delete(tr.byOwner, from)
	}
	tok.Owner = to
	tr.byOwner[to] = append(tr.byOwner[to], id)
	return nil
}

// Count returns the total number of minted tokens.
func (tr *TokenRegistry) Count() int {
	return len(tr.byID)
}
