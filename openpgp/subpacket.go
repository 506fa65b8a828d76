package openpgp

// SubpacketPayload is implemented by every recognized signature subpacket
// variant plus UnknownSubpacket, the forward-compatible catch-all for any
// subpacket type this library has no typed representation for. Dispatch
// is a closed switch on the wire type byte (§4.9's "dispatched
// polymorphism", applied to subpackets).
type SubpacketPayload interface {
	// SubpacketType returns the on-wire type byte.
	SubpacketType() SubpacketType
	// BodyLen returns the encoded payload length, not counting the type byte.
	BodyLen() int
	// EncodeBody writes the payload (not the type byte or length prefix).
	EncodeBody(e *Encoder) error
}

// Subpacket is a single tagged, length-prefixed value inside a subpacket
// set.
type Subpacket struct {
	Payload SubpacketPayload
}

// Type returns the subpacket's on-wire type byte.
func (s Subpacket) Type() SubpacketType { return s.Payload.SubpacketType() }

// EncodedLen is the varlen length-prefix size plus 1 (type byte) plus the
// body length.
func (s Subpacket) EncodedLen() int {
	inner := VarLen(1 + s.Payload.BodyLen())
	return inner.Size() + int(inner)
}

// Encode writes the subpacket's own varlen length (covering the type byte
// and body), then the type byte, then the body.
func (s Subpacket) Encode(e *Encoder) error {
	inner := VarLen(1 + s.Payload.BodyLen())
	if err := inner.Encode(e); err != nil {
		return err
	}
	if err := Push(e, uint8(s.Payload.SubpacketType())); err != nil {
		return err
	}
	return s.Payload.EncodeBody(e)
}

// DecodeSubpacket reads one tagged, length-prefixed subpacket: a varlen
// length, a one-byte type, then that many minus one body bytes, dispatched
// by type to a concrete payload. An unrecognized type becomes
// UnknownSubpacket, preserving the type and raw payload — this is never a
// decode error, matching §7's "unknown variants are not errors" policy.
func DecodeSubpacket(d *Decoder) (Subpacket, error) {
	length, err := DecodeVarLen(d)
	if err != nil {
		return Subpacket{}, err
	}
	if length < 1 {
		return Subpacket{}, runtimeErrorf("DecodeSubpacket", "subpacket length %d too small for a type byte", length)
	}
	typeByte, err := ExtractNumber[uint8](d)
	if err != nil {
		return Subpacket{}, err
	}
	body, err := d.Splice(int(length) - 1)
	if err != nil {
		return Subpacket{}, err
	}
	payload, err := decodeSubpacketBody(SubpacketType(typeByte), body)
	if err != nil {
		return Subpacket{}, err
	}
	if !body.Empty() {
		return Subpacket{}, runtimeErrorf("DecodeSubpacket", "type %d left %d trailing bytes (type/body mismatch)", typeByte, body.Size())
	}
	return Subpacket{Payload: payload}, nil
}

func decodeSubpacketBody(t SubpacketType, d *Decoder) (SubpacketPayload, error) {
	switch t {
	case SubpacketTypeCreationTime:
		v, err := ExtractNumber[uint32](d)
		return CreationTimeSubpacket{Time: v}, err
	case SubpacketTypeExpirationTime:
		v, err := ExtractNumber[uint32](d)
		return ExpirationTimeSubpacket{Seconds: v}, err
	case SubpacketTypeKeyExpiration:
		v, err := ExtractNumber[uint32](d)
		return KeyExpirationSubpacket{Seconds: v}, err
	case SubpacketTypeExportable:
		v, err := ExtractNumber[uint8](d)
		return ExportableSubpacket{Value: v != 0}, err
	case SubpacketTypeRevocable:
		v, err := ExtractNumber[uint8](d)
		return RevocableSubpacket{Value: v != 0}, err
	case SubpacketTypePrimaryUserID:
		v, err := ExtractNumber[uint8](d)
		return PrimaryUserIDSubpacket{Value: v != 0}, err
	case SubpacketTypeKeyFlags:
		v, err := ExtractNumber[uint8](d)
		return KeyFlagsSubpacket{Flags: KeyFlag(v)}, err
	case SubpacketTypeIssuer:
		blob, err := d.ExtractBlob(8)
		if err != nil {
			return nil, err
		}
		var id [8]byte
		copy(id[:], blob)
		return IssuerSubpacket{KeyID: id}, nil
	case SubpacketTypeIssuerFingerprint:
		version, err := ExtractNumber[uint8](d)
		if err != nil {
			return nil, err
		}
		blob, err := d.ExtractBlob(20)
		if err != nil {
			return nil, err
		}
		var fp [20]byte
		copy(fp[:], blob)
		return IssuerFingerprintSubpacket{Version: version, Fingerprint: fp}, nil
	case SubpacketTypePreferredSymmetric:
		blob, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		out := make([]SymmetricAlgorithm, len(blob))
		for i, b := range blob {
			out[i] = SymmetricAlgorithm(b)
		}
		return PreferredSymmetricSubpacket{Algorithms: out}, nil
	case SubpacketTypePreferredHash:
		blob, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		out := make([]HashAlgorithm, len(blob))
		for i, b := range blob {
			out[i] = HashAlgorithm(b)
		}
		return PreferredHashSubpacket{Algorithms: out}, nil
	case SubpacketTypePreferredCompress:
		blob, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		out := make([]CompressionAlgorithm, len(blob))
		for i, b := range blob {
			out[i] = CompressionAlgorithm(b)
		}
		return PreferredCompressionSubpacket{Algorithms: out}, nil
	case SubpacketTypeEmbeddedSignature:
		sig, err := DecodeSignature(d)
		if err != nil {
			return nil, err
		}
		return EmbeddedSignatureSubpacket{Signature: sig}, nil
	default:
		blob, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		return UnknownSubpacket{RawType: uint8(t), Payload: append([]byte(nil), blob...)}, nil
	}
}

// UnknownSubpacket carries the raw type and payload of any subpacket type
// this library has no typed representation for.
type UnknownSubpacket struct {
	RawType uint8
	Payload []byte
}

func (s UnknownSubpacket) SubpacketType() SubpacketType { return SubpacketType(s.RawType) }
func (s UnknownSubpacket) BodyLen() int                 { return len(s.Payload) }
func (s UnknownSubpacket) EncodeBody(e *Encoder) error  { return e.InsertBlob(s.Payload) }

// IssuerSubpacket (type 16): the 8-byte key id of the signer.
type IssuerSubpacket struct {
	KeyID [8]byte
}

func (IssuerSubpacket) SubpacketType() SubpacketType { return SubpacketTypeIssuer }
func (IssuerSubpacket) BodyLen() int                 { return 8 }
func (s IssuerSubpacket) EncodeBody(e *Encoder) error { return e.InsertBlob(s.KeyID[:]) }

// IssuerFingerprintSubpacket (type 33): key version plus 20-byte fingerprint.
type IssuerFingerprintSubpacket struct {
	Version     uint8
	Fingerprint [20]byte
}

func (IssuerFingerprintSubpacket) SubpacketType() SubpacketType { return SubpacketTypeIssuerFingerprint }
func (IssuerFingerprintSubpacket) BodyLen() int                 { return 21 }
func (s IssuerFingerprintSubpacket) EncodeBody(e *Encoder) error {
	if err := Push(e, s.Version); err != nil {
		return err
	}
	return e.InsertBlob(s.Fingerprint[:])
}

// CreationTimeSubpacket (type 2): signature creation time, unix seconds.
type CreationTimeSubpacket struct{ Time uint32 }

func (CreationTimeSubpacket) SubpacketType() SubpacketType { return SubpacketTypeCreationTime }
func (CreationTimeSubpacket) BodyLen() int                 { return 4 }
func (s CreationTimeSubpacket) EncodeBody(e *Encoder) error { return Push(e, s.Time) }

// ExpirationTimeSubpacket (type 3): signature expiration, seconds after
// creation.
type ExpirationTimeSubpacket struct{ Seconds uint32 }

func (ExpirationTimeSubpacket) SubpacketType() SubpacketType { return SubpacketTypeExpirationTime }
func (ExpirationTimeSubpacket) BodyLen() int                 { return 4 }
func (s ExpirationTimeSubpacket) EncodeBody(e *Encoder) error { return Push(e, s.Seconds) }

// KeyExpirationSubpacket (type 9): key expiration, seconds after creation.
type KeyExpirationSubpacket struct{ Seconds uint32 }

func (KeyExpirationSubpacket) SubpacketType() SubpacketType { return SubpacketTypeKeyExpiration }
func (KeyExpirationSubpacket) BodyLen() int                 { return 4 }
func (s KeyExpirationSubpacket) EncodeBody(e *Encoder) error { return Push(e, s.Seconds) }

// ExportableSubpacket (type 4).
type ExportableSubpacket struct{ Value bool }

func (ExportableSubpacket) SubpacketType() SubpacketType { return SubpacketTypeExportable }
func (ExportableSubpacket) BodyLen() int                 { return 1 }
func (s ExportableSubpacket) EncodeBody(e *Encoder) error { return Push(e, boolByte(s.Value)) }

// RevocableSubpacket (type 7).
type RevocableSubpacket struct{ Value bool }

func (RevocableSubpacket) SubpacketType() SubpacketType { return SubpacketTypeRevocable }
func (RevocableSubpacket) BodyLen() int                 { return 1 }
func (s RevocableSubpacket) EncodeBody(e *Encoder) error { return Push(e, boolByte(s.Value)) }

// PrimaryUserIDSubpacket (type 25).
type PrimaryUserIDSubpacket struct{ Value bool }

func (PrimaryUserIDSubpacket) SubpacketType() SubpacketType { return SubpacketTypePrimaryUserID }
func (PrimaryUserIDSubpacket) BodyLen() int                 { return 1 }
func (s PrimaryUserIDSubpacket) EncodeBody(e *Encoder) error { return Push(e, boolByte(s.Value)) }

// KeyFlagsSubpacket (type 27): the key-capability bitmask.
type KeyFlagsSubpacket struct{ Flags KeyFlag }

func (KeyFlagsSubpacket) SubpacketType() SubpacketType { return SubpacketTypeKeyFlags }
func (KeyFlagsSubpacket) BodyLen() int                 { return 1 }
func (s KeyFlagsSubpacket) EncodeBody(e *Encoder) error { return Push(e, uint8(s.Flags)) }

// PreferredSymmetricSubpacket (type 11): ordered cipher preference list.
type PreferredSymmetricSubpacket struct{ Algorithms []SymmetricAlgorithm }

func (PreferredSymmetricSubpacket) SubpacketType() SubpacketType {
	return SubpacketTypePreferredSymmetric
}
func (s PreferredSymmetricSubpacket) BodyLen() int { return len(s.Algorithms) }
func (s PreferredSymmetricSubpacket) EncodeBody(e *Encoder) error {
	for _, a := range s.Algorithms {
		if err := Push(e, uint8(a)); err != nil {
			return err
		}
	}
	return nil
}

// PreferredHashSubpacket (type 21): ordered hash preference list.
type PreferredHashSubpacket struct{ Algorithms []HashAlgorithm }

func (PreferredHashSubpacket) SubpacketType() SubpacketType { return SubpacketTypePreferredHash }
func (s PreferredHashSubpacket) BodyLen() int               { return len(s.Algorithms) }
func (s PreferredHashSubpacket) EncodeBody(e *Encoder) error {
	for _, a := range s.Algorithms {
		if err := Push(e, uint8(a)); err != nil {
			return err
		}
	}
	return nil
}

// PreferredCompressionSubpacket (type 22): ordered compression preference list.
type PreferredCompressionSubpacket struct{ Algorithms []CompressionAlgorithm }

func (PreferredCompressionSubpacket) SubpacketType() SubpacketType {
	return SubpacketTypePreferredCompress
}
func (s PreferredCompressionSubpacket) BodyLen() int { return len(s.Algorithms) }
func (s PreferredCompressionSubpacket) EncodeBody(e *Encoder) error {
	for _, a := range s.Algorithms {
		if err := Push(e, uint8(a)); err != nil {
			return err
		}
	}
	return nil
}

// EmbeddedSignatureSubpacket (type 32): a complete nested signature, used
// for the cross-certification of signing subkeys.
type EmbeddedSignatureSubpacket struct{ Signature *Signature }

func (EmbeddedSignatureSubpacket) SubpacketType() SubpacketType {
	return SubpacketTypeEmbeddedSignature
}
func (s EmbeddedSignatureSubpacket) BodyLen() int { return s.Signature.EncodedLen() }
func (s EmbeddedSignatureSubpacket) EncodeBody(e *Encoder) error {
	return s.Signature.Encode(e)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
