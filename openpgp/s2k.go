package openpgp

// S2KConvention is the leading octet of a secret-key packet's
// string-to-key specifier. Only the plaintext convention is fully
// supported: for any other convention the remaining S2K parameter bytes
// (salt, iteration count, IV) are not consumed, since without deriving
// the convention's key material there is no way to know where those
// parameter bytes end. See DESIGN.md's Open Question decisions.
type S2KConvention uint8

const (
	// S2KConventionPlaintext means "secret key material is stored in the
	// clear" — the only convention this library's secret-key encoder
	// produces and the only one its decoder fully understands.
	S2KConventionPlaintext S2KConvention = 0
)

// S2KHeader wraps the string-to-key convention byte.
type S2KHeader struct {
	Convention S2KConvention
}

// DecodeS2KHeader reads the single convention byte. Parameter bytes for
// conventions other than plaintext are intentionally left unconsumed; the
// caller's splice boundary determines how much of the packet body they
// occupy.
func DecodeS2KHeader(d *Decoder) (S2KHeader, error) {
	b, err := ExtractNumber[uint8](d)
	if err != nil {
		return S2KHeader{}, err
	}
	return S2KHeader{Convention: S2KConvention(b)}, nil
}

// EncodedLen is always 1: only the convention byte.
func (S2KHeader) EncodedLen() int { return 1 }

// Encode writes the convention byte.
func (h S2KHeader) Encode(e *Encoder) error {
	return Push(e, uint8(h.Convention))
}
