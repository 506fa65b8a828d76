package openpgp

// PublicKeyPayload is the algorithm-specific body of a public-key packet,
// dispatched by KeyAlgorithm: a closed switch over the wire algorithm
// byte, with UnknownPublicKey as the forward-compatible catch-all
// (decoding an unrecognized algorithm never fails; only encoding it does).
type PublicKeyPayload interface {
	KeyAlgorithm() KeyAlgorithm
	EncodedLen() int
	Encode(e *Encoder) error
}

// RSAPublicKey carries the (n, e) MPIs of an RSA public key.
type RSAPublicKey struct {
	N, E MPI
}

func (RSAPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmRSAEncryptOrSign }
func (k RSAPublicKey) EncodedLen() int          { return k.N.EncodedLen() + k.E.EncodedLen() }
func (k RSAPublicKey) Encode(e *Encoder) error {
	if err := k.N.Encode(e); err != nil {
		return err
	}
	return k.E.Encode(e)
}

// DSAPublicKey carries the (p, q, g, y) MPIs of a DSA public key.
type DSAPublicKey struct {
	P, Q, G, Y MPI
}

func (DSAPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmDSA }
func (k DSAPublicKey) EncodedLen() int {
	return k.P.EncodedLen() + k.Q.EncodedLen() + k.G.EncodedLen() + k.Y.EncodedLen()
}
func (k DSAPublicKey) Encode(e *Encoder) error {
	for _, m := range []MPI{k.P, k.Q, k.G, k.Y} {
		if err := m.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// ElgamalPublicKey carries the (p, g, y) MPIs of an Elgamal public key.
type ElgamalPublicKey struct {
	P, G, Y MPI
}

func (ElgamalPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmElgamalEncrypt }
func (k ElgamalPublicKey) EncodedLen() int {
	return k.P.EncodedLen() + k.G.EncodedLen() + k.Y.EncodedLen()
}
func (k ElgamalPublicKey) Encode(e *Encoder) error {
	for _, m := range []MPI{k.P, k.G, k.Y} {
		if err := m.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// ECDHPublicKey carries a curve OID, the point Q, and the RFC 6637 KDF
// parameters: a length byte (always 3), a reserved byte (always 1), the
// KDF hash algorithm, and the symmetric algorithm used to wrap a session key.
type ECDHPublicKey struct {
	Curve   OID
	Q       MPI
	KDFHash HashAlgorithm
	KDFSym  SymmetricAlgorithm
}

func (ECDHPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmECDH }
func (k ECDHPublicKey) EncodedLen() int {
	return k.Curve.EncodedLen() + k.Q.EncodedLen() + 4
}
func (k ECDHPublicKey) Encode(e *Encoder) error {
	if err := k.Curve.Encode(e); err != nil {
		return err
	}
	if err := k.Q.Encode(e); err != nil {
		return err
	}
	if err := Push(e, uint8(3)); err != nil {
		return err
	}
	if err := Push(e, uint8(1)); err != nil {
		return err
	}
	if err := Push(e, uint8(k.KDFHash)); err != nil {
		return err
	}
	return Push(e, uint8(k.KDFSym))
}

// ECDSAPublicKey carries a curve OID and the point Q.
type ECDSAPublicKey struct {
	Curve OID
	Q     MPI
}

func (ECDSAPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmECDSA }
func (k ECDSAPublicKey) EncodedLen() int          { return k.Curve.EncodedLen() + k.Q.EncodedLen() }
func (k ECDSAPublicKey) Encode(e *Encoder) error {
	if err := k.Curve.Encode(e); err != nil {
		return err
	}
	return k.Q.Encode(e)
}

// EdDSAPublicKey carries a curve OID and the point Q (the 0x40-prefixed
// native point encoding of draft-koch-eddsa-for-openpgp, stored as an MPI).
type EdDSAPublicKey struct {
	Curve OID
	Q     MPI
}

func (EdDSAPublicKey) KeyAlgorithm() KeyAlgorithm { return KeyAlgorithmEdDSA }
func (k EdDSAPublicKey) EncodedLen() int          { return k.Curve.EncodedLen() + k.Q.EncodedLen() }
func (k EdDSAPublicKey) Encode(e *Encoder) error {
	if err := k.Curve.Encode(e); err != nil {
		return err
	}
	return k.Q.Encode(e)
}

// UnknownPublicKey carries the raw remaining bytes of a public-key packet
// whose algorithm byte this library does not recognize. It decodes
// successfully (forward compatibility) but refuses to encode.
type UnknownPublicKey struct {
	Algo KeyAlgorithm
	Raw  []byte
}

func (k UnknownPublicKey) KeyAlgorithm() KeyAlgorithm { return k.Algo }
func (k UnknownPublicKey) EncodedLen() int            { return len(k.Raw) }
func (k UnknownPublicKey) Encode(e *Encoder) error {
	return runtimeErrorf("UnknownPublicKey.Encode", "cannot encode a key with unrecognized algorithm %d", k.Algo)
}

// DecodePublicKeyPayload dispatches on algo to the concrete payload type,
// consuming the rest of d. An unrecognized algorithm is not an error: it
// becomes UnknownPublicKey, consuming whatever bytes remain in d.
func DecodePublicKeyPayload(algo KeyAlgorithm, d *Decoder) (PublicKeyPayload, error) {
	switch algo {
	case KeyAlgorithmRSAEncryptOrSign, KeyAlgorithmRSAEncryptOnly, KeyAlgorithmRSASignOnly:
		n, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		e, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		return RSAPublicKey{N: n, E: e}, nil
	case KeyAlgorithmDSA:
		p, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		q, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		g, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		y, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		return DSAPublicKey{P: p, Q: q, G: g, Y: y}, nil
	case KeyAlgorithmElgamalEncrypt:
		p, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		g, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		y, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		return ElgamalPublicKey{P: p, G: g, Y: y}, nil
	case KeyAlgorithmECDH:
		curve, err := DecodeOID(d)
		if err != nil {
			return nil, err
		}
		q, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		if err := ExpectConstant[uint8](d, 3); err != nil {
			return nil, err
		}
		if err := ExpectConstant[uint8](d, 1); err != nil {
			return nil, err
		}
		kdfHash, err := ExtractNumber[uint8](d)
		if err != nil {
			return nil, err
		}
		kdfSym, err := ExtractNumber[uint8](d)
		if err != nil {
			return nil, err
		}
		return ECDHPublicKey{Curve: curve, Q: q, KDFHash: HashAlgorithm(kdfHash), KDFSym: SymmetricAlgorithm(kdfSym)}, nil
	case KeyAlgorithmECDSA:
		curve, err := DecodeOID(d)
		if err != nil {
			return nil, err
		}
		q, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		return ECDSAPublicKey{Curve: curve, Q: q}, nil
	case KeyAlgorithmEdDSA:
		curve, err := DecodeOID(d)
		if err != nil {
			return nil, err
		}
		q, err := DecodeMPI(d)
		if err != nil {
			return nil, err
		}
		return EdDSAPublicKey{Curve: curve, Q: q}, nil
	default:
		log.WithField("algorithm", algo).Debug("openpgp: unrecognized public-key algorithm, storing as Unknown")
		raw, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		return UnknownPublicKey{Algo: algo, Raw: append([]byte(nil), raw...)}, nil
	}
}
