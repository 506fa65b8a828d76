package openpgp

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"pgregory.net/rapid"
)

// S3 — MPI minimality: a byte vector with leading zero bytes encodes to
// the minimal bit-length/payload form.
func TestMPIMinimality(t *testing.T) {
	m := NewMPIFromBytes([]byte{0x00, 0x00, 0x7F, 0xFF})
	e := NewEncoder(nil)
	if err := m.Encode(e); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	e.Flush()
	want := []byte{0x00, 0x0F, 0x7F, 0xFF}
	if got := e.Bytes(); !bytesEqual(got, want) {
		t.Fatalf("encoded % X, want % X\n%s", got, want, spew.Sdump(m))
	}
	if m.BitLen() != 15 {
		t.Fatalf("BitLen() = %d, want 15", m.BitLen())
	}
}

// Invariant 3: the first payload byte (if any) is non-zero and the stored
// bit-length equals 8*len - clz(first_byte).
func TestMPIDecodeRejectsNonMinimalEncoding(t *testing.T) {
	// Declares bit-length 16 (2 bytes) but the payload's first byte is
	// zero, which a minimal encoding would never produce.
	e := NewEncoder(nil)
	if err := Push(e, uint16(16)); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertBlob([]byte{0x00, 0xFF}); err != nil {
		t.Fatal(err)
	}
	e.Flush()
	if _, err := DecodeMPI(NewDecoder(e.Bytes())); err == nil {
		t.Fatalf("expected a non-minimal MPI encoding to be rejected")
	}
}

// Invariants 1-3, applied generatively: any non-negative integer round-trips
// through MPI encode/decode and reports a minimal, self-consistent bit-length.
func TestMPIRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := new(big.Int).SetUint64(rapid.Uint64().Draw(t, "n"))
		m := NewMPIFromBig(n)

		if len(m.Bytes()) > 0 && m.Bytes()[0] == 0 {
			t.Fatalf("payload carries a leading zero byte: % X", m.Bytes())
		}

		e := NewEncoder(nil)
		if err := m.Encode(e); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if got, want := m.EncodedLen(), e.Len(); got != want {
			t.Fatalf("EncodedLen() = %d, actually wrote %d", got, want)
		}
		e.Flush()

		decoded, err := DecodeMPI(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !decoded.Equal(m) {
			t.Fatalf("round-trip mismatch: % X != % X", decoded.Bytes(), m.Bytes())
		}
		if decoded.Big().Cmp(n) != 0 {
			t.Fatalf("round-trip value %s != original %s", decoded.Big(), n)
		}
	})
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
