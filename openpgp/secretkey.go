package openpgp

// SecretKeyPayload is the algorithm-specific secret material paired with a
// PublicKeyPayload of the same algorithm. Dispatch mirrors
// PublicKeyPayload: a closed switch over KeyAlgorithm with
// UnknownSecretKey as the forward-compatible catch-all.
type SecretKeyPayload interface {
	KeyAlgorithm() KeyAlgorithm
	EncodedLen() int
	Encode(e *Encoder) error
}

// RSASecretKey carries (d, p, q, u) where u = p^-1 mod q, per RFC 4880 §5.5.3.
type RSASecretKey struct {
	D, P, Q, U MPI
}

func (RSASecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmRSAEncryptOrSign }
func (k RSASecretKey) EncodedLen() int {
	return k.D.EncodedLen() + k.P.EncodedLen() + k.Q.EncodedLen() + k.U.EncodedLen()
}
func (k RSASecretKey) Encode(e *Encoder) error {
	for _, m := range []MPI{k.D, k.P, k.Q, k.U} {
		if err := m.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// DSASecretKey carries the exponent x.
type DSASecretKey struct{ X MPI }

func (DSASecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmDSA }
func (k DSASecretKey) EncodedLen() int          { return k.X.EncodedLen() }
func (k DSASecretKey) Encode(e *Encoder) error  { return k.X.Encode(e) }

// ElgamalSecretKey carries the exponent x.
type ElgamalSecretKey struct{ X MPI }

func (ElgamalSecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmElgamalEncrypt }
func (k ElgamalSecretKey) EncodedLen() int          { return k.X.EncodedLen() }
func (k ElgamalSecretKey) Encode(e *Encoder) error  { return k.X.Encode(e) }

// ECDHSecretKey carries the scalar k.
type ECDHSecretKey struct{ Scalar MPI }

func (ECDHSecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmECDH }
func (k ECDHSecretKey) EncodedLen() int          { return k.Scalar.EncodedLen() }
func (k ECDHSecretKey) Encode(e *Encoder) error  { return k.Scalar.Encode(e) }

// ECDSASecretKey carries the scalar k.
type ECDSASecretKey struct{ Scalar MPI }

func (ECDSASecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmECDSA }
func (k ECDSASecretKey) EncodedLen() int          { return k.Scalar.EncodedLen() }
func (k ECDSASecretKey) Encode(e *Encoder) error  { return k.Scalar.Encode(e) }

// EdDSASecretKey carries the scalar k.
type EdDSASecretKey struct{ Scalar MPI }

func (EdDSASecretKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmEdDSA }
func (k EdDSASecretKey) EncodedLen() int          { return k.Scalar.EncodedLen() }
func (k EdDSASecretKey) Encode(e *Encoder) error  { return k.Scalar.Encode(e) }

// UnknownSecretKey carries raw secret bytes for an algorithm this library
// has no typed representation for; it decodes but refuses to encode.
type UnknownSecretKey struct {
	Algo KeyAlgorithm
	Raw  []byte
}

func (k UnknownSecretKey) KeyAlgorithm() KeyAlgorithm { return k.Algo }
func (k UnknownSecretKey) EncodedLen() int            { return len(k.Raw) }
func (k UnknownSecretKey) Encode(e *Encoder) error {
	return runtimeErrorf("UnknownSecretKey.Encode", "cannot encode secret material for unrecognized algorithm %d", k.Algo)
}

// DecodeSecretKeyPayload dispatches on algo, consuming the rest of d (the
// part of the secret-key packet body between the S2K header and the
// trailing checksum).
func DecodeSecretKeyPayload(algo KeyAlgorithm, d *Decoder) (SecretKeyPayload, error) {
	switch algo {
	case KeyAlgorithmRSAEncryptOrSign, KeyAlgorithmRSAEncryptOnly, KeyAlgorithmRSASignOnly:
		vals, err := decodeMPIs(d, 4)
		if err != nil {
			return nil, err
		}
		return RSASecretKey{D: vals[0], P: vals[1], Q: vals[2], U: vals[3]}, nil
	case KeyAlgorithmDSA:
		x, err := DecodeMPI(d)
		return DSASecretKey{X: x}, err
	case KeyAlgorithmElgamalEncrypt:
		x, err := DecodeMPI(d)
		return ElgamalSecretKey{X: x}, err
	case KeyAlgorithmECDH:
		s, err := DecodeMPI(d)
		return ECDHSecretKey{Scalar: s}, err
	case KeyAlgorithmECDSA:
		s, err := DecodeMPI(d)
		return ECDSASecretKey{Scalar: s}, err
	case KeyAlgorithmEdDSA:
		s, err := DecodeMPI(d)
		return EdDSASecretKey{Scalar: s}, err
	default:
		raw, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		return UnknownSecretKey{Algo: algo, Raw: append([]byte(nil), raw...)}, nil
	}
}

func decodeMPIs(d *Decoder, n int) ([]MPI, error) {
	out := make([]MPI, n)
	for i := range out {
		m, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// checksum16 is the 16-bit sum-mod-65536 over the given bytes, RFC 4880's
// plaintext secret-key checksum.
func checksum16(b []byte) uint16 {
	var sum uint32
	for _, c := range b {
		sum += uint32(c)
	}
	return uint16(sum % 65536)
}

// SecretKeyMaterial composes the string-to-key header, the algorithm-
// specific secret payload, and the trailing checksum that together follow
// a public-key payload inside a secret-key packet. The secret payload's
// MPI bytes are expected to be backed by a SecureRegion the owning Key
// keeps alive; SecretKeyMaterial itself only computes and carries the
// checksum.
type SecretKeyMaterial struct {
	S2K      S2KHeader
	Secret   SecretKeyPayload
	Checksum uint16
}

// NewSecretKeyMaterial wraps secret with a plaintext S2K header and a
// freshly computed checksum.
func NewSecretKeyMaterial(secret SecretKeyPayload) (SecretKeyMaterial, error) {
	e := NewEncoder(nil)
	if err := secret.Encode(e); err != nil {
		return SecretKeyMaterial{}, err
	}
	e.Flush()
	return SecretKeyMaterial{
		S2K:      S2KHeader{Convention: S2KConventionPlaintext},
		Secret:   secret,
		Checksum: checksum16(e.Bytes()),
	}, nil
}

// DecodeSecretKeyMaterial reads the S2K header, then — only for the
// plaintext convention — the algorithm-specific secret payload and the
// trailing 16-bit checksum. Any other convention fails with a
// RuntimeError: this library implements the RFC 4880 §5.5.3 "stored in
// the clear" convention only, and without deriving the convention's key
// material there is no way to locate where the encrypted payload ends.
func DecodeSecretKeyMaterial(algo KeyAlgorithm, d *Decoder) (SecretKeyMaterial, error) {
	header, err := DecodeS2KHeader(d)
	if err != nil {
		return SecretKeyMaterial{}, err
	}
	if header.Convention != S2KConventionPlaintext {
		return SecretKeyMaterial{}, runtimeErrorf("DecodeSecretKeyMaterial",
			"unsupported string-to-key convention %d (only plaintext/0 is supported)", header.Convention)
	}
	secret, err := DecodeSecretKeyPayload(algo, d)
	if err != nil {
		return SecretKeyMaterial{}, err
	}
	sum, err := ExtractNumber[uint16](d)
	if err != nil {
		return SecretKeyMaterial{}, err
	}
	return SecretKeyMaterial{S2K: header, Secret: secret, Checksum: sum}, nil
}

// VerifyChecksum recomputes the checksum over the encoded secret payload
// and reports whether it matches the stored Checksum field. Decoding
// never calls this automatically; call it explicitly when strict
// validation is wanted.
func (m SecretKeyMaterial) VerifyChecksum() bool {
	e := NewEncoder(nil)
	if err := m.Secret.Encode(e); err != nil {
		return false
	}
	e.Flush()
	return checksum16(e.Bytes()) == m.Checksum
}

// EncodedLen is the S2K header plus the secret payload plus the 2-byte checksum.
func (m SecretKeyMaterial) EncodedLen() int {
	return m.S2K.EncodedLen() + m.Secret.EncodedLen() + 2
}

// Encode writes the S2K header, the secret payload, then the checksum.
func (m SecretKeyMaterial) Encode(e *Encoder) error {
	if err := m.S2K.Encode(e); err != nil {
		return err
	}
	if err := m.Secret.Encode(e); err != nil {
		return err
	}
	return Push(e, m.Checksum)
}
