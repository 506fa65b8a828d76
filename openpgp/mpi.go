package openpgp

import "math/big"

// MPI is RFC 4880 §3.2's multi-precision integer: a non-negative integer
// encoded as a two-byte bit-length followed by ceil(bits/8) big-endian
// payload bytes. The invariant is that the stored payload never carries
// leading zero bytes and the declared bit-length always equals the
// position of the highest set bit — zero encodes as bit-length 0 with an
// empty payload.
type MPI struct {
	payload []byte // minimal big-endian bytes; nil/empty means zero
}

// NewMPIFromBytes builds an MPI from a big-endian byte range, stripping
// leading zero bytes. A range of all zero bytes (including an empty one)
// yields the MPI zero.
func NewMPIFromBytes(b []byte) MPI {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return MPI{payload: b}
}

// NewMPIFromBig builds an MPI from an arbitrary-precision integer, which
// must be non-negative.
func NewMPIFromBig(v *big.Int) MPI {
	if v.Sign() < 0 {
		panic("openpgp: MPI cannot represent a negative integer")
	}
	return MPI{payload: v.Bytes()}
}

// DecodeMPI reads an MPI from d: a uint16 bit-length followed by the
// corresponding number of payload bytes.
func DecodeMPI(d *Decoder) (MPI, error) {
	bits, err := ExtractNumber[uint16](d)
	if err != nil {
		return MPI{}, err
	}
	nbytes := (int(bits) + 7) / 8
	payload, err := d.ExtractBlob(nbytes)
	if err != nil {
		return MPI{}, err
	}
	m := MPI{payload: append([]byte(nil), payload...)}
	if m.BitLen() != uint16(bits) {
		// The declared bit-length must equal the position of the highest
		// set bit of the first payload byte; a mismatch means the wire
		// data violates the MPI minimality invariant.
		return MPI{}, rangeErrorf("DecodeMPI", "declared bit-length %d does not match payload", bits)
	}
	return m, nil
}

// BitLen returns the declared bit-length: 0 for the zero MPI, otherwise
// 8*(len(payload)-1) plus the bit position of the top set bit of the first
// payload byte.
func (m MPI) BitLen() uint16 {
	if len(m.payload) == 0 {
		return 0
	}
	first := m.payload[0]
	bits := 0
	for first != 0 {
		bits++
		first >>= 1
	}
	return uint16(8*(len(m.payload)-1) + bits)
}

// Bytes returns the minimal big-endian payload (no leading zero byte,
// possibly empty for zero).
func (m MPI) Bytes() []byte {
	return m.payload
}

// Big returns the MPI as an arbitrary-precision integer.
func (m MPI) Big() *big.Int {
	return new(big.Int).SetBytes(m.payload)
}

// EncodedLen returns the number of bytes Encode will write: 2 + len(payload).
func (m MPI) EncodedLen() int {
	return 2 + len(m.payload)
}

// Encode writes the bit-length followed by the payload.
func (m MPI) Encode(e *Encoder) error {
	if err := Push(e, m.BitLen()); err != nil {
		return err
	}
	return e.InsertBlob(m.payload)
}

// Equal reports whether two MPIs represent the same integer.
func (m MPI) Equal(o MPI) bool {
	if len(m.payload) != len(o.payload) {
		return false
	}
	for i := range m.payload {
		if m.payload[i] != o.payload[i] {
			return false
		}
	}
	return true
}

// PadLeft returns a copy of the MPI's payload left-padded with zero bytes
// to exactly n bytes. Used when reconstructing fixed-width scalars (EdDSA
// and ECDSA signature halves, secret scalars) from an MPI that may have
// shed leading zero bytes during minimal encoding.
func (m MPI) PadLeft(n int) []byte {
	if len(m.payload) >= n {
		return m.payload[len(m.payload)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(m.payload):], m.payload)
	return out
}
