package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nerix-game/go-nerix/utils/cser"
)

// MessageRecord is one fee-paying submission within an iteration. Records are
// append-only: once accepted they are never mutated retroactively.
//
// Invariant: Fee equals the curve fee at Seq reduced by DiscountPercent, and
// Seq strictly increases per iteration starting at 1.
type MessageRecord struct {
	Seq             uint32
	Payer           common.Address
	Fee             *big.Int
	TokenID         uint64 // 0 = no NFT used
	DiscountPercent uint32
	Length          uint32
	Time            Timestamp
}

// MarshalCSER serializes the record into the canonical record format.
func (m *MessageRecord) MarshalCSER(w *cser.Writer) error {
	w.U32(m.Seq)
	w.FixedBytes(m.Payer.Bytes())
	w.BigInt(m.Fee)
	w.U64(m.TokenID)
	w.U32(m.DiscountPercent)
	w.U32(m.Length)
	w.U64(uint64(m.Time))
	return nil
}

// UnmarshalCSER deserializes the record.
func (m *MessageRecord) UnmarshalCSER(r *cser.Reader) error {
	m.Seq = r.U32()
	payer := make([]byte, common.AddressLength)
	r.FixedBytes(payer)
	m.Payer = common.BytesToAddress(payer)
	m.Fee = r.BigInt()
	m.TokenID = r.U64()
	m.DiscountPercent = r.U32()
	m.Length = r.U32()
	m.Time = Timestamp(r.U64())
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *MessageRecord) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(m.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *MessageRecord) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, m.UnmarshalCSER)
}
