package openpgp

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/ed25519"
)

// SignatureEncoder is the uniform interface each algorithm-specific
// signature encoder satisfies: push fixed-width numbers and blobs into
// the transcript while open, then read the two-byte hash prefix and the
// finished signature payload. Each of HashPrefix and Finalize may be
// called at most once, and push/InsertBlob refuse once either has been
// called. Violations are programming errors (LogicError), not data
// errors: they indicate a bug in the caller's construction pipeline,
// never bad wire bytes.
//
// The RSA encoder (see below) uses the same SHA-256 hashAccumulator as
// ECDSA and EdDSA rather than a separate signature/hash accumulator pair:
// crypto/rsa.SignPKCS1v15 signs a precomputed digest directly, so there is
// no need for a second parallel accumulator. See DESIGN.md.
type SignatureEncoder interface {
	PushUint8(v uint8) error
	PushUint16(v uint16) error
	PushUint32(v uint32) error
	InsertBlob(p []byte) error
	HashPrefix() ([2]byte, error)
	Finalize() (SignaturePayload, error)
}

// hashAccumulator is the shared push/InsertBlob/HashPrefix bookkeeping
// embedded by every concrete encoder. All three supported signing
// algorithms (RSA, ECDSA, EdDSA) hash the transcript with SHA-256, so this alone is enough to implement
// HashPrefix and to feed ECDSA/EdDSA's digest input; RSA's Finalize reads
// the same accumulator.
type hashAccumulator struct {
	hash           HashSink
	sealed         bool
	hashPrefixUsed bool
	finalizeUsed   bool
}

func newHashAccumulator() hashAccumulator {
	return hashAccumulator{hash: newSHA256()}
}

func (h *hashAccumulator) InsertBlob(p []byte) error {
	if h.sealed {
		return logicErrorf("SignatureEncoder.InsertBlob", "push/InsertBlob called after HashPrefix or Finalize")
	}
	h.hash.Write(p)
	return nil
}

func (h *hashAccumulator) PushUint8(v uint8) error { return h.InsertBlob([]byte{v}) }
func (h *hashAccumulator) PushUint16(v uint16) error {
	return h.InsertBlob([]byte{byte(v >> 8), byte(v)})
}
func (h *hashAccumulator) PushUint32(v uint32) error {
	return h.InsertBlob([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// HashPrefix returns the stored two-byte hash prefix and seals the
// encoder against further push/InsertBlob calls. It may be called at
// most once.
func (h *hashAccumulator) HashPrefix() ([2]byte, error) {
	if h.hashPrefixUsed {
		return [2]byte{}, logicErrorf("SignatureEncoder.HashPrefix", "HashPrefix called more than once")
	}
	h.hashPrefixUsed = true
	h.sealed = true
	digest := h.hash.Sum(nil)
	var prefix [2]byte
	copy(prefix[:], digest[:2])
	return prefix, nil
}

// digest finalizes the running SHA-256 state. Guarded to run once per
// Finalize caller; hash.Hash.Sum is non-destructive so calling it after
// HashPrefix already ran is safe.
func (h *hashAccumulator) digest() ([]byte, error) {
	if h.finalizeUsed {
		return nil, logicErrorf("SignatureEncoder.Finalize", "Finalize called more than once")
	}
	h.finalizeUsed = true
	h.sealed = true
	return h.hash.Sum(nil), nil
}

// NewSignatureEncoder builds the algorithm-specific encoder for signer,
// dispatching on its key algorithm. signer must be a secret key role with
// decrypted material present. DSA signing is deliberately refused: the
// encoder fails construction with a RuntimeError rather than attempt it.
// Encryption-only algorithms (Elgamal, ECDH) cannot produce signatures
// at all.
func NewSignatureEncoder(signer *Key) (SignatureEncoder, error) {
	if !signer.Role.IsSecret() {
		return nil, logicErrorf("NewSignatureEncoder", "signer key carries no secret material")
	}
	switch pub := signer.Public.(type) {
	case RSAPublicKey:
		sec, ok := signer.Secret.Secret.(RSASecretKey)
		if !ok {
			return nil, logicErrorf("NewSignatureEncoder", "RSA public key paired with non-RSA secret material")
		}
		return newRSASignatureEncoder(pub, sec)
	case DSAPublicKey:
		return nil, runtimeErrorf("NewSignatureEncoder", "DSA signing is not implemented")
	case ECDSAPublicKey:
		sec, ok := signer.Secret.Secret.(ECDSASecretKey)
		if !ok {
			return nil, logicErrorf("NewSignatureEncoder", "ECDSA public key paired with non-ECDSA secret material")
		}
		return newECDSASignatureEncoder(pub, sec)
	case EdDSAPublicKey:
		sec, ok := signer.Secret.Secret.(EdDSASecretKey)
		if !ok {
			return nil, logicErrorf("NewSignatureEncoder", "EdDSA public key paired with non-EdDSA secret material")
		}
		return newEdDSASignatureEncoder(pub, sec)
	default:
		return nil, runtimeErrorf("NewSignatureEncoder", "key algorithm %d cannot produce signatures", signer.Public.KeyAlgorithm())
	}
}

// rsaSignatureEncoder signs via PKCS#1 v1.5 over SHA-256, using
// crypto/rsa.SignPKCS1v15.
type rsaSignatureEncoder struct {
	hashAccumulator
	priv *rsa.PrivateKey
}

func newRSASignatureEncoder(pub RSAPublicKey, sec RSASecretKey) (*rsaSignatureEncoder, error) {
	e := pub.E.Big()
	if !e.IsInt64() {
		return nil, rangeErrorf("NewSignatureEncoder", "RSA public exponent does not fit a machine int")
	}
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: pub.N.Big(), E: int(e.Int64())},
		D:         sec.D.Big(),
		Primes:    []*big.Int{sec.P.Big(), sec.Q.Big()},
	}
	priv.Precompute()
	return &rsaSignatureEncoder{hashAccumulator: newHashAccumulator(), priv: priv}, nil
}

func (e *rsaSignatureEncoder) Finalize() (SignaturePayload, error) {
	digest, err := e.digest()
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(DefaultRand, e.priv, crypto.SHA256, digest)
	if err != nil {
		return nil, runtimeErrorf("rsaSignatureEncoder.Finalize", "RSA signing failed: %v", err)
	}
	return RSASignature{S: NewMPIFromBytes(sig)}, nil
}

// ecdsaSignatureEncoder signs over secp256r1 per RFC 6637, handing the
// SHA-256 transcript digest directly to crypto/ecdsa.Sign as the
// already-hashed message.
type ecdsaSignatureEncoder struct {
	hashAccumulator
	priv *ecdsa.PrivateKey
}

func newECDSASignatureEncoder(pub ECDSAPublicKey, sec ECDSASecretKey) (*ecdsaSignatureEncoder, error) {
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256()},
		D:         sec.Scalar.Big(),
	}
	return &ecdsaSignatureEncoder{hashAccumulator: newHashAccumulator(), priv: priv}, nil
}

func (e *ecdsaSignatureEncoder) Finalize() (SignaturePayload, error) {
	digest, err := e.digest()
	if err != nil {
		return nil, err
	}
	r, s, err := ecdsa.Sign(DefaultRand, e.priv, digest)
	if err != nil {
		return nil, runtimeErrorf("ecdsaSignatureEncoder.Finalize", "ECDSA signing failed: %v", err)
	}
	return ECDSASignature{R: NewMPIFromBig(r), S: NewMPIFromBig(s)}, nil
}

// eddsaSignatureEncoder signs with Ed25519: the 32-byte secret scalar and
// the 32-byte public point are concatenated into the library's 64-byte
// private-key form and handed to ed25519.Sign, whose 64-byte output
// splits into r (first half) and s (second half).
type eddsaSignatureEncoder struct {
	hashAccumulator
	priv ed25519.PrivateKey
}

func newEdDSASignatureEncoder(pub EdDSAPublicKey, sec EdDSASecretKey) (*eddsaSignatureEncoder, error) {
	point, err := eddsaPointBytes(pub.Q)
	if err != nil {
		return nil, err
	}
	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(priv[:32], sec.Scalar.PadLeft(32))
	copy(priv[32:], point)
	return &eddsaSignatureEncoder{hashAccumulator: newHashAccumulator(), priv: priv}, nil
}

// eddsaPointBytes strips the native-point-encoding's leading 0x40 byte
// from an EdDSA public-key MPI, left-pads the remainder to 32 bytes (in
// case the MPI's minimal encoding shed leading zero bytes of the point),
// and rejects anything that doesn't decode to a point on the curve via
// filippo.io/edwards25519.
func eddsaPointBytes(q MPI) ([]byte, error) {
	raw := q.Bytes()
	if len(raw) > 0 && raw[0] == 0x40 {
		raw = raw[1:]
	}
	out := make([]byte, 32)
	if len(raw) >= 32 {
		copy(out, raw[len(raw)-32:])
	} else {
		copy(out[32-len(raw):], raw)
	}
	if _, err := edwards25519.NewIdentityPoint().SetBytes(out); err != nil {
		return nil, rangeErrorf("NewSignatureEncoder", "EdDSA public key point is not a valid curve encoding: %v", err)
	}
	return out, nil
}

func (e *eddsaSignatureEncoder) Finalize() (SignaturePayload, error) {
	digest, err := e.digest()
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(e.priv, digest)
	if len(sig) != ed25519.SignatureSize {
		return nil, logicErrorf("eddsaSignatureEncoder.Finalize", "Ed25519 primitive returned %d bytes, expected %d", len(sig), ed25519.SignatureSize)
	}
	return EdDSASignature{
		R: NewMPIFromBytes(sig[:32]),
		S: NewMPIFromBytes(sig[32:]),
	}, nil
}

// hashKeyInto streams the RFC 4880 §5.2.4 key-hashing subroutine into
// enc: the constant 0x99, a u16 equal to 1+4+1+size(public payload), then
// the version/creation-time/algorithm bytes and the public payload itself.
func hashKeyInto(enc SignatureEncoder, key *Key) error {
	body, err := key.publicKeyBytes()
	if err != nil {
		return err
	}
	if err := enc.PushUint8(0x99); err != nil {
		return err
	}
	if len(body) > 0xffff {
		return rangeErrorf("hashKeyInto", "public key payload of %d bytes exceeds the u16 length field", len(body))
	}
	if err := enc.PushUint16(uint16(len(body))); err != nil {
		return err
	}
	return enc.InsertBlob(body)
}

// streamTranscript writes the signature metadata and hashed subpacket set
// into enc, then the trailer whose u32 byte count covers exactly that
// metadata-plus-hashed-subpackets span.
func streamTranscript(enc SignatureEncoder, sigType SignatureType, keyAlgo KeyAlgorithm, hashAlgo HashAlgorithm, hashed SubpacketSet) error {
	if err := enc.PushUint8(signatureVersion); err != nil {
		return err
	}
	if err := enc.PushUint8(uint8(sigType)); err != nil {
		return err
	}
	if err := enc.PushUint8(uint8(keyAlgo)); err != nil {
		return err
	}
	if err := enc.PushUint8(uint8(hashAlgo)); err != nil {
		return err
	}
	hashedEnc := NewEncoder(nil)
	if err := hashed.Encode(hashedEnc); err != nil {
		return err
	}
	hashedEnc.Flush()
	hashedBytes := hashedEnc.Bytes()
	if err := enc.InsertBlob(hashedBytes); err != nil {
		return err
	}
	for _, b := range signatureTrailer(len(hashedBytes)) {
		if err := enc.PushUint8(b); err != nil {
			return err
		}
	}
	return nil
}

// finishSignature reads the hash prefix and the algorithm-specific
// payload off enc and assembles the Signature object (step 6).
func finishSignature(enc SignatureEncoder, sigType SignatureType, keyAlgo KeyAlgorithm, hashAlgo HashAlgorithm, hashed, unhashed SubpacketSet) (*Signature, error) {
	prefix, err := enc.HashPrefix()
	if err != nil {
		return nil, err
	}
	payload, err := enc.Finalize()
	if err != nil {
		return nil, err
	}
	return &Signature{
		Type:          sigType,
		KeyAlgorithm:  keyAlgo,
		HashAlgorithm: hashAlgo,
		Hashed:        hashed,
		Unhashed:      unhashed,
		HashPrefix:    prefix,
		Payload:       payload,
	}, nil
}

// CertifyUserID builds a v4 certification signature binding userid to
// primary, signed by signer (normally primary itself, for a
// self-signature). The certification kind (generic/persona/casual/
// positive) is the caller's choice: pass the one matching the desired
// assurance level via sigType.
func CertifyUserID(signer, primary *Key, userid UserID, sigType SignatureType, hashed, unhashed SubpacketSet) (*Signature, error) {
	enc, err := NewSignatureEncoder(signer)
	if err != nil {
		return nil, err
	}
	if err := hashKeyInto(enc, primary); err != nil {
		return nil, err
	}
	if err := enc.PushUint8(0xB4); err != nil {
		return nil, err
	}
	if err := enc.PushUint32(uint32(len(userid.ID))); err != nil {
		return nil, err
	}
	if err := enc.InsertBlob([]byte(userid.ID)); err != nil {
		return nil, err
	}
	keyAlgo := signer.Public.KeyAlgorithm()
	if err := streamTranscript(enc, sigType, keyAlgo, HashAlgorithmSHA256, hashed); err != nil {
		return nil, err
	}
	return finishSignature(enc, sigType, keyAlgo, HashAlgorithmSHA256, hashed, unhashed)
}

// BindSubkey builds a subkey-binding signature (type 0x18) from primary
// over subkey: primary's key-hashing subroutine runs first, then
// subkey's. The main key always comes first regardless of which key
// signs.
func BindSubkey(primary, subkey *Key, hashed, unhashed SubpacketSet) (*Signature, error) {
	enc, err := NewSignatureEncoder(primary)
	if err != nil {
		return nil, err
	}
	if err := hashKeyInto(enc, primary); err != nil {
		return nil, err
	}
	if err := hashKeyInto(enc, subkey); err != nil {
		return nil, err
	}
	keyAlgo := primary.Public.KeyAlgorithm()
	if err := streamTranscript(enc, SignatureTypeSubkeyBinding, keyAlgo, HashAlgorithmSHA256, hashed); err != nil {
		return nil, err
	}
	return finishSignature(enc, SignatureTypeSubkeyBinding, keyAlgo, HashAlgorithmSHA256, hashed, unhashed)
}

// BindPrimaryKey builds a primary-key-binding ("back-signature", type
// 0x19) from a signing-capable subkey over its primary: the main key
// still comes first in the transcript even though the subkey is the
// signer.
func BindPrimaryKey(subkey, primary *Key, hashed, unhashed SubpacketSet) (*Signature, error) {
	enc, err := NewSignatureEncoder(subkey)
	if err != nil {
		return nil, err
	}
	if err := hashKeyInto(enc, primary); err != nil {
		return nil, err
	}
	if err := hashKeyInto(enc, subkey); err != nil {
		return nil, err
	}
	keyAlgo := subkey.Public.KeyAlgorithm()
	if err := streamTranscript(enc, SignatureTypePrimaryKeyBinding, keyAlgo, HashAlgorithmSHA256, hashed); err != nil {
		return nil, err
	}
	return finishSignature(enc, SignatureTypePrimaryKeyBinding, keyAlgo, HashAlgorithmSHA256, hashed, unhashed)
}
