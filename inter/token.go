package inter

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/nerix-game/go-nerix/utils/cser"
)

// Token is one minted NFT. ID, Type and MintIteration are immutable after
// mint; only Owner may change (ownership transfer).
type Token struct {
	ID            uint64
	Type          NftType
	MintIteration uint32
	Owner         common.Address
}

// MarshalCSER serializes the token into the canonical record format.
func (t *Token) MarshalCSER(w *cser.Writer) error {
	if !t.Type.Valid() {
		return ErrUnknownNftType
	}
	w.U64(t.ID)
	w.U8(uint8(t.Type))
	w.U32(t.MintIteration)
	w.FixedBytes(t.Owner.Bytes())
	return nil
}

// UnmarshalCSER deserializes the token, rejecting unknown tier values.
func (t *Token) UnmarshalCSER(r *cser.Reader) error {
	t.ID = r.U64()
	t.Type = NftType(r.U8())
	if !t.Type.Valid() {
		return ErrUnknownNftType
	}
	t.MintIteration = r.U32()
	owner := make([]byte, common.AddressLength)
	r.FixedBytes(owner)
	t.Owner = common.BytesToAddress(owner)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Token) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(t.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Token) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, t.UnmarshalCSER)
}
