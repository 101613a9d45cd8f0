package gamecore

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var (
	addrA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	addrB = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	addrC = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	addrD = common.HexToAddress("0x00000000000000000000000000000000000000d4")
	addrE = common.HexToAddress("0x00000000000000000000000000000000000000e5")
)

func TestLedger_participantsInFirstSeenOrder(t *testing.T) {
	l := NewLedger()
	l.RecordAttempt(addrB)
	l.RecordAttempt(addrA)
	l.RecordAttempt(addrB)
	l.RecordAttempt(addrC)

	assert.Equal(t, []common.Address{addrB, addrA, addrC}, l.Participants())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, uint32(2), l.AttemptCount(addrB))
	assert.Equal(t, uint32(0), l.AttemptCount(addrD))
	assert.True(t, l.IsParticipant(addrA))
	assert.False(t, l.IsParticipant(addrD))
}

func TestLedger_topChallengers(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 3; i++ {
		l.RecordAttempt(addrA)
	}
	for i := 0; i < 5; i++ {
		l.RecordAttempt(addrB)
	}
	l.RecordAttempt(addrC)
	l.RecordAttempt(addrD)
	l.RecordAttempt(addrE)

	// winner excluded, ranked by attempts desc, ties by first-seen order
	top := l.TopChallengers(addrB, 3)
	assert.Equal(t, []common.Address{addrA, addrC, addrD}, top)

	// winner not in the set at all
	for _, a := range top {
		assert.NotEqual(t, addrB, a)
	}
}

func TestLedger_topChallengersFewerThanLimit(t *testing.T) {
	l := NewLedger()
	l.RecordAttempt(addrA)
	l.RecordAttempt(addrB)

	assert.Equal(t, []common.Address{addrB}, l.TopChallengers(addrA, 3))
	assert.Empty(t, NewLedger().TopChallengers(addrA, 3))
}

func TestLedger_reset(t *testing.T) {
	l := NewLedger()
	l.RecordAttempt(addrA)
	l.Reset()

	assert.Zero(t, l.Len())
	assert.False(t, l.IsParticipant(addrA))
	assert.Empty(t, l.Participants())
}
