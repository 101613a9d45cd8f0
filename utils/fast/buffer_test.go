package fast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReader_roundTrip(t *testing.T) {
	w := NewWriter(make([]byte, 0, 16))
	w.WriteByte(0x01)
	w.Write([]byte{0x02, 0x03, 0x04})
	w.WriteByte(0x05)

	r := NewReader(w.Bytes())
	require.Equal(t, byte(0x01), r.ReadByte())
	require.Equal(t, []byte{0x02, 0x03}, r.Read(2))
	require.Equal(t, 3, r.Position())
	require.False(t, r.Empty())
	require.Equal(t, []byte{0x04, 0x05}, r.Read(2))
	require.True(t, r.Empty())
}

func TestReader_panicsPastEnd(t *testing.T) {
	r := NewReader([]byte{0x01})
	r.ReadByte()
	require.Panics(t, func() {
		r.ReadByte()
	})
}
