package openpgp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// Invariant 5: reading k in {0,8} bits then an aligned u16 yields the same
// two bytes regardless of whether those bits were read. Consuming the
// leading byte via ExtractBits(8) (k=8) must leave the decoder in exactly
// the state byte-level consumption (k=0, reading from the suffix directly)
// would: the subsequent u16 read sees identical bytes either way.
func TestDecoderAlignedReadIndependentOfPriorWholeByteRead(t *testing.T) {
	buf := []byte{0xAA, 0x12, 0x34}

	// k=8: consume the leading byte through the bit API, then read an
	// aligned u16 from what remains.
	d8 := NewDecoder(buf)
	if _, err := d8.ExtractBits(8); err != nil {
		t.Fatalf("k=8 pre-read: %v", err)
	}
	got8, err := ExtractNumber[uint16](d8)
	if err != nil {
		t.Fatalf("k=8 u16 read: %v", err)
	}

	// k=0: no bits consumed; read the u16 directly from the same suffix.
	d0 := NewDecoder(buf[1:])
	got0, err := ExtractNumber[uint16](d0)
	if err != nil {
		t.Fatalf("k=0 u16 read: %v", err)
	}

	if got8 != got0 {
		t.Fatalf("k=8 read %#x, k=0 read %#x, want equal", got8, got0)
	}
	if got0 != 0x1234 {
		t.Fatalf("got %#x, want 0x1234", got0)
	}
}

// ExtractBits/InsertBits reject skipBits+n > 8 rather than silently
// advancing to the next byte; the public API never needs to cross a byte
// boundary mid-read.
func TestBitOperationsRejectCrossingByteBoundary(t *testing.T) {
	d := NewDecoder([]byte{0xFF, 0xFF})
	if _, err := d.ExtractBits(5); err != nil {
		t.Fatalf("first 5-bit read: %v", err)
	}
	if _, err := d.ExtractBits(8); err == nil {
		t.Fatalf("an 8-bit read at offset 5 should cross the byte boundary and fail")
	}

	e := NewEncoder(nil)
	if err := e.InsertBits(5, 0x1F); err != nil {
		t.Fatalf("first 5-bit write: %v", err)
	}
	if err := e.InsertBits(8, 0xFF); err == nil {
		t.Fatalf("an 8-bit write at offset 5 should cross the byte boundary and fail")
	}
}

// S2 — variable-length prefix boundary cases, each round-tripping.
func TestVarLenBoundaries(t *testing.T) {
	cases := []struct {
		v    VarLen
		want []byte
	}{
		{191, []byte{0xBF}},
		{192, []byte{0xC0, 0x00}},
		{8383, []byte{0xDF, 0xFF}},
		{8384, []byte{0xFF, 0x00, 0x00, 0x20, 0xC0}},
	}
	for _, c := range cases {
		e := NewEncoder(nil)
		if err := c.v.Encode(e); err != nil {
			t.Fatalf("encode(%d): %v", c.v, err)
		}
		e.Flush()
		got := e.Bytes()
		if !cmp.Equal(got, c.want) {
			t.Fatalf("encode(%d) = % X, want % X", c.v, got, c.want)
		}
		if got, want := c.v.Size(), len(c.want); got != want {
			t.Fatalf("Size(%d) = %d, want %d", c.v, got, want)
		}
		decoded, err := DecodeVarLen(NewDecoder(got))
		if err != nil {
			t.Fatalf("decode(% X): %v", got, err)
		}
		if decoded != c.v {
			t.Fatalf("round-trip(%d) = %d", c.v, decoded)
		}
	}
}

// Partial-length first bytes (224-254) are a decode-only Non-goal.
func TestVarLenPartialLengthRejected(t *testing.T) {
	for b0 := 224; b0 <= 254; b0++ {
		if _, err := DecodeVarLen(NewDecoder([]byte{byte(b0)})); err == nil {
			t.Fatalf("first byte 0x%02x should be rejected as a partial-length body", b0)
		}
	}
}

// Invariant 4: for every varlen prefix, size(n) in {1,2,5} and re-decoding
// yields n.
func TestVarLenRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := VarLen(rapid.Uint32().Draw(t, "n"))
		e := NewEncoder(nil)
		if err := n.Encode(e); err != nil {
			t.Fatalf("encode(%d): %v", n, err)
		}
		e.Flush()
		size := n.Size()
		if size != 1 && size != 2 && size != 5 {
			t.Fatalf("Size(%d) = %d, want one of {1,2,5}", n, size)
		}
		if len(e.Bytes()) != size {
			t.Fatalf("encoded %d bytes, Size() reported %d", len(e.Bytes()), size)
		}
		got, err := DecodeVarLen(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != n {
			t.Fatalf("round-trip(%d) = %d", n, got)
		}
	})
}
