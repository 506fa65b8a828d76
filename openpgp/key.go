package openpgp

import (
	"time"
)

// KeyRole distinguishes the four packet shapes a Key can take. It
// determines both the packet tag used to frame the key and whether a
// SecretKeyMaterial is present.
type KeyRole int

const (
	RolePublicPrimary KeyRole = iota
	RolePublicSubkey
	RoleSecretPrimary
	RoleSecretSubkey
)

// IsSecret reports whether this role carries private material.
func (r KeyRole) IsSecret() bool {
	return r == RoleSecretPrimary || r == RoleSecretSubkey
}

// IsSubkey reports whether this role is bound to a primary key rather than
// being one itself.
func (r KeyRole) IsSubkey() bool {
	return r == RolePublicSubkey || r == RoleSecretSubkey
}

// PacketTag returns the RFC 4880 §4.3 tag this role is framed with.
func (r KeyRole) PacketTag() PacketTag {
	switch r {
	case RolePublicPrimary:
		return PacketTagPublicKey
	case RolePublicSubkey:
		return PacketTagPublicSubkey
	case RoleSecretPrimary:
		return PacketTagSecretKey
	case RoleSecretSubkey:
		return PacketTagSecretSubkey
	default:
		return PacketTagPublicKey
	}
}

// Key is a version-4 OpenPGP key packet: a creation time, an algorithm, a
// public payload, and — for secret roles — the wrapping SecretKeyMaterial.
// Version 3 keys are not supported; Version is always 4.
type Key struct {
	Role         KeyRole
	CreationTime time.Time
	Public       PublicKeyPayload
	Secret       SecretKeyMaterial

	region *SecureRegion
}

const keyVersion = 4

// NewPublicKey builds a public (primary or subkey) Key around payload.
func NewPublicKey(role KeyRole, created time.Time, payload PublicKeyPayload) (*Key, error) {
	if role.IsSecret() {
		return nil, logicErrorf("NewPublicKey", "role %d carries secret material; use NewSecretKey", role)
	}
	return &Key{Role: role, CreationTime: created, Public: payload}, nil
}

// NewSecretKey builds a secret (primary or subkey) Key. region is the
// SecureRegion holding the secret material; it is not copied, and the Key
// releases it when Release is called. secret must be built from slices
// that alias region.Bytes() so zeroing the region zeroes the MPIs.
func NewSecretKey(role KeyRole, created time.Time, public PublicKeyPayload, secret SecretKeyPayload, region *SecureRegion) (*Key, error) {
	if !role.IsSecret() {
		return nil, logicErrorf("NewSecretKey", "role %d carries no secret material; use NewPublicKey", role)
	}
	material, err := NewSecretKeyMaterial(secret)
	if err != nil {
		return nil, err
	}
	return &Key{Role: role, CreationTime: created, Public: public, Secret: material, region: region}, nil
}

// PacketTag returns the packet tag this key's role is framed with, so Key
// satisfies PacketPayload.
func (k *Key) PacketTag() PacketTag { return k.Role.PacketTag() }

// Release zeroes any secure region backing this key's secret material. It
// is a no-op for public keys or keys built without an owned region.
func (k *Key) Release() {
	if k.region != nil {
		k.region.Release()
	}
}

func timeToU32(t time.Time) uint32 { return uint32(t.Unix()) }
func u32ToTime(s uint32) time.Time { return time.Unix(int64(s), 0).UTC() }

// publicKeyBytes encodes the version, creation time, algorithm and public
// payload — the portion hashed for both fingerprints and signature
// transcripts.
func (k *Key) publicKeyBytes() ([]byte, error) {
	e := NewEncoder(nil)
	if err := Push(e, uint8(keyVersion)); err != nil {
		return nil, err
	}
	if err := Push(e, timeToU32(k.CreationTime)); err != nil {
		return nil, err
	}
	if err := Push(e, uint8(k.Public.KeyAlgorithm())); err != nil {
		return nil, err
	}
	if err := k.Public.Encode(e); err != nil {
		return nil, err
	}
	e.Flush()
	return e.Bytes(), nil
}

// Fingerprint computes the v4 fingerprint: SHA-1 over 0x99, a big-endian
// u16 length, then the version/creation-time/algorithm/payload bytes
// above. Grounded on SignKey.KeyID's 0x99-prefixed transcript, generalized
// from a fixed 51-byte Ed25519 packet to any algorithm's payload length.
func (k *Key) Fingerprint() ([20]byte, error) {
	body, err := k.publicKeyBytes()
	if err != nil {
		return [20]byte{}, err
	}
	h := newSHA1()
	h.Write([]byte{0x99, byte(len(body) >> 8), byte(len(body))})
	h.Write(body)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

// KeyID returns the low 8 bytes of the v4 fingerprint.
func (k *Key) KeyID() ([8]byte, error) {
	fp, err := k.Fingerprint()
	if err != nil {
		return [8]byte{}, err
	}
	var id [8]byte
	copy(id[:], fp[12:20])
	return id, nil
}

// Equal compares two keys by role, creation time, algorithm and payload
// bytes (version is always 4 on both sides so it never distinguishes).
func (k *Key) Equal(other *Key) bool {
	if k.Role != other.Role || !k.CreationTime.Equal(other.CreationTime) {
		return false
	}
	a, err := k.publicKeyBytes()
	if err != nil {
		return false
	}
	b, err := other.publicKeyBytes()
	if err != nil {
		return false
	}
	if string(a) != string(b) {
		return false
	}
	if !k.Role.IsSecret() {
		return true
	}
	ae := NewEncoder(nil)
	be := NewEncoder(nil)
	if err := k.Secret.Encode(ae); err != nil {
		return false
	}
	if err := other.Secret.Encode(be); err != nil {
		return false
	}
	ae.Flush()
	be.Flush()
	return string(ae.Bytes()) == string(be.Bytes())
}

// EncodedLen is the size of this key's packet body (excluding the packet
// envelope itself, which packet.go applies).
func (k *Key) EncodedLen() int {
	n := 1 + 4 + 1 + k.Public.EncodedLen()
	if k.Role.IsSecret() {
		n += k.Secret.EncodedLen()
	}
	return n
}

// Encode writes this key's packet body: version, creation time, algorithm,
// public payload, and — for secret roles — the S2K header/secret
// payload/checksum.
func (k *Key) Encode(e *Encoder) error {
	if err := Push(e, uint8(keyVersion)); err != nil {
		return err
	}
	if err := Push(e, timeToU32(k.CreationTime)); err != nil {
		return err
	}
	if err := Push(e, uint8(k.Public.KeyAlgorithm())); err != nil {
		return err
	}
	if err := k.Public.Encode(e); err != nil {
		return err
	}
	if k.Role.IsSecret() {
		return k.Secret.Encode(e)
	}
	return nil
}

// DecodeKey reads a key packet body of the given role from d.
func DecodeKey(role KeyRole, d *Decoder) (*Key, error) {
	if err := ExpectConstant[uint8](d, keyVersion); err != nil {
		return nil, runtimeErrorf("DecodeKey", "unsupported key packet version (only version 4 is supported): %v", err)
	}
	created, err := ExtractNumber[uint32](d)
	if err != nil {
		return nil, err
	}
	algo, err := ExtractNumber[uint8](d)
	if err != nil {
		return nil, err
	}
	public, err := DecodePublicKeyPayload(KeyAlgorithm(algo), d)
	if err != nil {
		return nil, err
	}
	k := &Key{Role: role, CreationTime: u32ToTime(created), Public: public}
	if role.IsSecret() {
		secret, err := DecodeSecretKeyMaterial(KeyAlgorithm(algo), d)
		if err != nil {
			return nil, err
		}
		k.Secret = secret
	}
	return k, nil
}
