package inter

import (
	"errors"
	"fmt"
)

// NftType identifies the reward tier of a minted token. The tier is fixed at
// mint time and never changes afterwards.
type NftType uint8

const (
	// NftCommunity is minted to every non-winning, non-top-challenger
	// participant of a closed iteration.
	NftCommunity NftType = 1

	// NftChallenger is minted to each of the up-to-3 top challengers of a
	// closed iteration.
	NftChallenger NftType = 2

	// NftWinner is minted to the winning address of a closed iteration.
	NftWinner NftType = 3
)

// ErrUnknownNftType marks an NFT tier value outside the defined set. Bonus
// computation treats it as a programmer error and fails loudly.
var ErrUnknownNftType = errors.New("unknown NFT type")

// Valid reports whether t is one of the defined tiers.
func (t NftType) Valid() bool {
	return t >= NftCommunity && t <= NftWinner
}

// Rank orders tiers for best-token selection: Winner > Challenger > Community.
func (t NftType) Rank() int {
	return int(t)
}

func (t NftType) String() string {
	switch t {
	case NftCommunity:
		return "community"
	case NftChallenger:
		return "challenger"
	case NftWinner:
		return "winner"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}
