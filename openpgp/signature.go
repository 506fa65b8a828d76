package openpgp

// SignaturePayload is the algorithm-specific scalar material of a
// signature, dispatched by KeyAlgorithm the same way PublicKeyPayload is.
type SignaturePayload interface {
	KeyAlgorithm() KeyAlgorithm
	EncodedLen() int
	Encode(e *Encoder) error
}

// RSASignature carries the single MPI s = m^d mod n.
type RSASignature struct{ S MPI }

func (RSASignature) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmRSAEncryptOrSign }
func (s RSASignature) EncodedLen() int          { return s.S.EncodedLen() }
func (s RSASignature) Encode(e *Encoder) error  { return s.S.Encode(e) }

// DSASignature carries the (r, s) pair.
type DSASignature struct{ R, S MPI }

func (DSASignature) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmDSA }
func (s DSASignature) EncodedLen() int          { return s.R.EncodedLen() + s.S.EncodedLen() }
func (s DSASignature) Encode(e *Encoder) error {
	if err := s.R.Encode(e); err != nil {
		return err
	}
	return s.S.Encode(e)
}

// ECDSASignature carries the (r, s) pair.
type ECDSASignature struct{ R, S MPI }

func (ECDSASignature) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmECDSA }
func (s ECDSASignature) EncodedLen() int          { return s.R.EncodedLen() + s.S.EncodedLen() }
func (s ECDSASignature) Encode(e *Encoder) error {
	if err := s.R.Encode(e); err != nil {
		return err
	}
	return s.S.Encode(e)
}

// EdDSASignature carries the (r, s) pair, each the MPI-minimal encoding of
// one half of the native 64-byte Ed25519 signature.
type EdDSASignature struct{ R, S MPI }

func (EdDSASignature) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmEdDSA }
func (s EdDSASignature) EncodedLen() int          { return s.R.EncodedLen() + s.S.EncodedLen() }
func (s EdDSASignature) Encode(e *Encoder) error {
	if err := s.R.Encode(e); err != nil {
		return err
	}
	return s.S.Encode(e)
}

// UnknownSignaturePayload carries raw scalar bytes for an algorithm this
// library has no typed representation for.
type UnknownSignaturePayload struct {
	Algo KeyAlgorithm
	Raw  []byte
}

func (s UnknownSignaturePayload) KeyAlgorithm() KeyAlgorithm { return s.Algo }
func (s UnknownSignaturePayload) EncodedLen() int            { return len(s.Raw) }
func (s UnknownSignaturePayload) Encode(e *Encoder) error {
	return runtimeErrorf("UnknownSignaturePayload.Encode", "cannot encode a signature with unrecognized algorithm %d", s.Algo)
}

// DecodeSignaturePayload dispatches on algo, consuming the rest of d.
func DecodeSignaturePayload(algo KeyAlgorithm, d *Decoder) (SignaturePayload, error) {
	switch algo {
	case KeyAlgorithmRSAEncryptOrSign, KeyAlgorithmRSAEncryptOnly, KeyAlgorithmRSASignOnly:
		s, err := DecodeMPI(d)
		return RSASignature{S: s}, err
	case KeyAlgorithmDSA:
		r, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		s, err := DecodeMPI(d)
		return DSASignature{R: r, S: s}, err
	case KeyAlgorithmECDSA:
		r, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		s, err := DecodeMPI(d)
		return ECDSASignature{R: r, S: s}, err
	case KeyAlgorithmEdDSA:
		r, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		s, err := DecodeMPI(d)
		return EdDSASignature{R: r, S: s}, err
	default:
		raw, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		return UnknownSignaturePayload{Algo: algo, Raw: append([]byte(nil), raw...)}, nil
	}
}

// Signature is a version-4 signature packet body (RFC 4880 §5.2.3).
// Version 3 signatures are out of scope; Version is always 4.
type Signature struct {
	Type          SignatureType
	KeyAlgorithm  KeyAlgorithm
	HashAlgorithm HashAlgorithm
	Hashed        SubpacketSet
	Unhashed      SubpacketSet
	HashPrefix    [2]byte
	Payload       SignaturePayload
}

const signatureVersion = 4

// PacketTag is always PacketTagSignature, so *Signature satisfies PacketPayload.
func (s *Signature) PacketTag() PacketTag { return PacketTagSignature }

// EncodedLen is the fixed 4-byte header, the two length-prefixed
// subpacket sets, the 2-byte hash prefix, and the payload.
func (s *Signature) EncodedLen() int {
	return 1 + 1 + 1 + 1 + s.Hashed.EncodedLen() + s.Unhashed.EncodedLen() + 2 + s.Payload.EncodedLen()
}

// Encode writes the signature packet body.
func (s *Signature) Encode(e *Encoder) error {
	if err := Push(e, uint8(signatureVersion)); err != nil {
		return err
	}
	if err := Push(e, uint8(s.Type)); err != nil {
		return err
	}
	if err := Push(e, uint8(s.KeyAlgorithm)); err != nil {
		return err
	}
	if err := Push(e, uint8(s.HashAlgorithm)); err != nil {
		return err
	}
	if err := s.Hashed.Encode(e); err != nil {
		return err
	}
	if err := s.Unhashed.Encode(e); err != nil {
		return err
	}
	if err := Push(e, s.HashPrefix[0]); err != nil {
		return err
	}
	if err := Push(e, s.HashPrefix[1]); err != nil {
		return err
	}
	return s.Payload.Encode(e)
}

// DecodeSignature reads a signature packet body from d.
func DecodeSignature(d *Decoder) (*Signature, error) {
	if err := ExpectConstant[uint8](d, signatureVersion); err != nil {
		return nil, runtimeErrorf("DecodeSignature", "unsupported signature version (only version 4 is supported): %v", err)
	}
	sigType, err := ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	algo, err := ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	hashAlgo, err := ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	hashed, err := DecodeSubpacketSet(d)
	if err != nil {
		return nil, err
	}
	unhashed, err := DecodeSubpacketSet(d)
	if err != nil {
		return nil, err
	}
	var prefix [2]byte
	prefix[0], err = ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	prefix[1], err = ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeSignaturePayload(KeyAlgorithm(algo), d)
	if err != nil {
		return nil, err
	}
	return &Signature{
		Type:          SignatureType(sigType),
		KeyAlgorithm:  KeyAlgorithm(algo),
		HashAlgorithm: HashAlgorithm(hashAlgo),
		Hashed:        hashed,
		Unhashed:      unhashed,
		HashPrefix:    prefix,
		Payload:       payload,
	}, nil
}

// signatureTrailer is the final piece of the hash transcript: version,
// 0xFF, then a big-endian u32 count of the hashed signature bytes: the
// four version/type/key-algorithm/hash-algorithm bytes plus hashedLen, the
// encoded hashed-subpacket set (its 2-byte length prefix plus every
// hashed subpacket).
func signatureTrailer(hashedLen int) []byte {
	n := uint32(1 + 1 + 1 + 1 + hashedLen)
	return []byte{
		signatureVersion, 0xFF,
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
}
