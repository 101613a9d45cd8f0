package cser

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, write func(*Writer), read func(*Reader)) {
	t.Helper()
	raw, err := MarshalBinaryAdapter(func(w *Writer) error {
		write(w)
		return nil
	})
	require.NoError(t, err)
	err = UnmarshalBinaryAdapter(raw, func(r *Reader) error {
		read(r)
		return nil
	})
	require.NoError(t, err)
}

func TestIntegers_roundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 5, 255, 256, 1 << 16, 1 << 31, math.MaxUint32, math.MaxUint64} {
		v := v
		roundTrip(t, func(w *Writer) {
			w.U64(v)
			if v <= math.MaxUint32 {
				w.U32(uint32(v))
			}
			if v <= math.MaxUint16 {
				w.U16(uint16(v))
			}
		}, func(r *Reader) {
			assert.Equal(t, v, r.U64())
			if v <= math.MaxUint32 {
				assert.Equal(t, uint32(v), r.U32())
			}
			if v <= math.MaxUint16 {
				assert.Equal(t, uint16(v), r.U16())
			}
		})
	}
}

func TestI64_roundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1000, -1000, math.MaxInt64, math.MinInt64 + 1} {
		v := v
		roundTrip(t, func(w *Writer) {
			w.I64(v)
		}, func(r *Reader) {
			assert.Equal(t, v, r.I64())
		})
	}
}

func TestBoolAndBytes_roundTrip(t *testing.T) {
	payload := []byte("nerix message payload")
	roundTrip(t, func(w *Writer) {
		w.Bool(true)
		w.Bool(false)
		w.SliceBytes(payload)
		w.U8(0x7f)
	}, func(r *Reader) {
		assert.True(t, r.Bool())
		assert.False(t, r.Bool())
		assert.Equal(t, payload, r.SliceBytes(MaxAlloc))
		assert.Equal(t, uint8(0x7f), r.U8())
	})
}

func TestBigInt_roundTrip(t *testing.T) {
	wei := new(big.Int)
	wei.SetString("2000000000000000000", 10) // 2 BNB in wei
	for _, v := range []*big.Int{big.NewInt(0), big.NewInt(1), wei} {
		v := v
		roundTrip(t, func(w *Writer) {
			w.BigInt(v)
		}, func(r *Reader) {
			assert.Zero(t, v.Cmp(r.BigInt()))
		})
	}
}

func TestUnmarshal_rejectsTruncated(t *testing.T) {
	raw, err := MarshalBinaryAdapter(func(w *Writer) error {
		w.U64(math.MaxUint64)
		w.SliceBytes([]byte("0123456789"))
		return nil
	})
	require.NoError(t, err)

	err = UnmarshalBinaryAdapter(raw[:len(raw)-3], func(r *Reader) error {
		r.U64()
		r.SliceBytes(MaxAlloc)
		return nil
	})
	require.Error(t, err)
}

func TestUnmarshal_rejectsTrailingData(t *testing.T) {
	raw, err := MarshalBinaryAdapter(func(w *Writer) error {
		w.U32(42)
		w.U32(43)
		return nil
	})
	require.NoError(t, err)

	// reading only one of the two values must fail the strict consumption check
	err = UnmarshalBinaryAdapter(raw, func(r *Reader) error {
		r.U32()
		return nil
	})
	require.Equal(t, ErrNonCanonicalEncoding, err)
}

func TestUnmarshal_rejectsPaddedInteger(t *testing.T) {
	// hand-build a non-minimal U32: value 5 stored in 2 bytes
	w := NewWriter()
	w.BytesW.WriteByte(5)
	w.BytesW.WriteByte(0)
	w.BitsW.Write(2, 1) // length prefix claims 2 bytes
	raw, err := binaryFromCSER(w.BitsW.Array, w.BytesW.Bytes())
	require.NoError(t, err)

	err = UnmarshalBinaryAdapter(raw, func(r *Reader) error {
		r.U32()
		return nil
	})
	require.Equal(t, ErrMalformedEncoding, err)
}
