package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nerix-game/go-nerix/utils/cser"
)

// IterationRecord is the sealed row written when an iteration closes. It
// captures the final pool balances, the winner and the participant set size
// at the moment of finalization. Sealed records are immutable.
type IterationRecord struct {
	Ordinal       uint32
	CurrentPool   *big.Int // balance paid out to the winner
	NextPool      *big.Int // balance rolled into the next iteration
	TeamPool      *big.Int // team balance at close (cumulative, not reset)
	TotalMessages uint32
	Participants  uint32
	Winner        common.Address
	StartTime     Timestamp
	EndTime       Timestamp
}

// MarshalCSER serializes the sealed record.
func (ir *IterationRecord) MarshalCSER(w *cser.Writer) error {
	w.U32(ir.Ordinal)
	w.BigInt(ir.CurrentPool)
	w.BigInt(ir.NextPool)
	w.BigInt(ir.TeamPool)
	w.U32(ir.TotalMessages)
	w.U32(ir.Participants)
	w.FixedBytes(ir.Winner.Bytes())
	w.U64(uint64(ir.StartTime))
	w.U64(uint64(ir.EndTime))
	return nil
}

// UnmarshalCSER deserializes the sealed record.
func (ir *IterationRecord) UnmarshalCSER(r *cser.Reader) error {
	ir.Ordinal = r.U32()
	ir.CurrentPool = r.BigInt()
	ir.NextPool = r.BigInt()
	ir.TeamPool = r.BigInt()
	ir.TotalMessages = r.U32()
	ir.Participants = r.U32()
	winner := make([]byte, common.AddressLength)
	r.FixedBytes(winner)
	ir.Winner = common.BytesToAddress(winner)
	ir.StartTime = Timestamp(r.U64())
	ir.EndTime = Timestamp(r.U64())
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ir *IterationRecord) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(ir.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ir *IterationRecord) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, ir.UnmarshalCSER)
}
