package openpgp

import (
	"testing"
	"time"
)

// S4 — key fingerprint: a v4 ECDH key with creation time 1554103728, curve
// Ed25519, Q = [01 02 04 08 03 8F 20 5C], KDF (03,01,sha1,aes256); the low
// 8 bytes of the SHA-1 fingerprint (the key id) equal a known value.
func TestKeyFingerprintKnownAnswer(t *testing.T) {
	q := NewMPIFromBytes([]byte{0x01, 0x02, 0x04, 0x08, 0x03, 0x8F, 0x20, 0x5C})
	pub := ECDHPublicKey{
		Curve:   OIDEd25519,
		Q:       q,
		KDFHash: HashAlgorithmSHA1,
		KDFSym:  SymmetricAlgorithmAES256,
	}
	k, err := NewPublicKey(RolePublicPrimary, time.Unix(1554103728, 0).UTC(), pub)
	if err != nil {
		t.Fatalf("NewPublicKey: %v", err)
	}

	id, err := k.KeyID()
	if err != nil {
		t.Fatalf("KeyID: %v", err)
	}
	want := [8]byte{0x3E, 0xB9, 0x45, 0xEB, 0x87, 0x7E, 0xBE, 0x0D}
	if id != want {
		t.Fatalf("KeyID() = % X, want % X", id, want)
	}
}

// S7 — packet length threshold: an old-format-compatible tag's body length
// selects the smallest of the 1/2/4-byte old-format length fields.
func TestPacketLengthThreshold(t *testing.T) {
	cases := []struct {
		bodyLen  int
		wantSize int
	}{
		{255, 1},
		{256, 2},
		{65536, 4},
	}
	for _, c := range cases {
		u := UnknownPacket{Tag_: PacketTagUserID, Raw: make([]byte, c.bodyLen)}
		got := oldLengthFieldSize(len(u.Raw))
		if got != c.wantSize {
			t.Fatalf("bodyLen=%d: old-format length field = %d bytes, want %d", c.bodyLen, got, c.wantSize)
		}
	}
}

// Invariant 6: a secret-key value's backing region is zeroed on Release,
// whether construction completed normally or was aborted partway.
func TestSecureRegionZeroedOnRelease(t *testing.T) {
	region := NewSecureRegion(32)
	for i := range region.Bytes() {
		region.Bytes()[i] = 0xFF
	}
	region.Release()
	for i, b := range region.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zeroed after Release: %#x", i, b)
		}
	}
}

func TestSecureRegionGuardZeroesOnAbortedConstruction(t *testing.T) {
	secret := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	region, guard := NewSecureRegionFrom(secret)
	func() {
		defer guard.Release()
		// construction aborts here without calling Disarm
	}()
	for i, b := range region.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zeroed after an aborted construction: %#x", i, b)
		}
	}
}

func TestSecureRegionGuardLeavesRegionIntactOnSuccess(t *testing.T) {
	secret := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	region, guard := NewSecureRegionFrom(secret)
	func() {
		defer guard.Release()
		guard.Disarm()
	}()
	if !bytesEqual(region.Bytes(), secret) {
		t.Fatalf("region was zeroed despite a disarmed guard: % X", region.Bytes())
	}
	region.Release()
}
