package gamecore

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger tracks who paid into the current iteration and how many times.
// An address becomes a participant on its first accepted message and stays
// one until the ledger is reset for the next iteration. The ledger is not
// safe for concurrent use; the engine serializes access.
type Ledger struct {
	attempts map[common.Address]uint32
	// order preserves first-seen order for deterministic ranking tie-breaks.
	order []common.Address
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		attempts: make(map[common.Address]uint32),
	}
}

// RecordAttempt registers one accepted message from addr.
func (l *Ledger) RecordAttempt(addr common.Address) {
	if _, ok := l.attempts[addr]; !ok {
		l.order = append(l.order, addr)
	}
	l.attempts[addr]++
}

// IsParticipant reports whether addr paid at least one fee this iteration.
func (l *Ledger) IsParticipant(addr common.Address) bool {
	_, ok := l.attempts[addr]
	return ok
}

// AttemptCount returns how many messages addr paid for this iteration.
func (l *Ledger) AttemptCount(addr common.Address) uint32 {
	return l.attempts[addr]
}

// Len returns the number of distinct participants.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Participants returns the participant set in first-seen order.
func (l *Ledger) Participants() []common.Address {
	out := make([]common.Address, len(l.order))
	copy(out, l.order)
	return out
}

// TopChallengers returns up to limit participants ranked by attempt count
// descending, ties broken by first-seen order, excluding the given address
// (the winner). Used at finalization to mint Challenger tokens.
func (l *Ledger) TopChallengers(excluding common.Address, limit int) []common.Address {
	ranked := make([]common.Address, 0, len(l.order))
	for _, a := range l.order {
		if a != excluding {
			ranked = append(ranked, a)
		}
	}

	pos := make(map[common.Address]int, len(l.order))
	for i, a := range l.order {
		pos[a] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ai, aj := l.attempts[ranked[i]], l.attempts[ranked[j]]
		if ai != aj {
			return ai > aj
		}
		return pos[ranked[i]] < pos[ranked[j]]
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// Reset clears the ledger for a fresh iteration.
func (l *Ledger) Reset() {
	l.attempts = make(map[common.Address]uint32)
	l.order = l.order[:0]
}
