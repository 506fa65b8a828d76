package openpgp

import "bytes"

// OID is a curve object identifier body as carried in ECDH/ECDSA/EdDSA
// public-key packets: a one-byte length followed by that many DER-style
// OID bytes (the length byte itself is not part of the payload).
type OID struct {
	payload []byte
}

// Recognized curve OIDs (RFC 8032 Ed25519-for-OpenPGP extension and
// RFC 6637 ECC curves).
var (
	OIDEd25519    = OID{payload: []byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0xda, 0x47, 0x0f, 0x01}}
	OIDCurve25519 = OID{payload: []byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0x97, 0x55, 0x01, 0x05, 0x01}}
	OIDNISTP256   = OID{payload: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x03, 0x01, 0x07}}
)

// NewOID wraps a raw OID payload (without the length byte).
func NewOID(payload []byte) OID {
	return OID{payload: append([]byte(nil), payload...)}
}

// DecodeOID reads a one-byte length followed by that many bytes.
func DecodeOID(d *Decoder) (OID, error) {
	n, err := ExtractNumber[uint8](d)
	if err != nil {
		return OID{}, err
	}
	payload, err := d.ExtractBlob(int(n))
	if err != nil {
		return OID{}, err
	}
	return OID{payload: append([]byte(nil), payload...)}, nil
}

// Bytes returns the OID payload (without its length byte).
func (o OID) Bytes() []byte {
	return o.payload
}

// EncodedLen is the payload length plus one length byte.
func (o OID) EncodedLen() int {
	return 1 + len(o.payload)
}

// Encode writes the length byte followed by the payload.
func (o OID) Encode(e *Encoder) error {
	if len(o.payload) > 255 {
		return rangeErrorf("OID.Encode", "OID payload of %d bytes exceeds 255", len(o.payload))
	}
	if err := Push(e, uint8(len(o.payload))); err != nil {
		return err
	}
	return e.InsertBlob(o.payload)
}

// Equal compares payloads.
func (o OID) Equal(other OID) bool {
	return bytes.Equal(o.payload, other.payload)
}

// Name returns a short human name for recognized curves, or "" if
// unrecognized.
func (o OID) Name() string {
	switch {
	case o.Equal(OIDEd25519):
		return "Ed25519"
	case o.Equal(OIDCurve25519):
		return "Curve25519"
	case o.Equal(OIDNISTP256):
		return "NIST P-256"
	default:
		return ""
	}
}
