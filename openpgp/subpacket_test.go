package openpgp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// S8 — subpacket set order sensitivity: {A,B,C} and {B,A,C} are distinct
// even though they carry the same subpackets, and both round-trip
// preserving order.
func TestSubpacketSetOrderSensitivity(t *testing.T) {
	a := ExportableSubpacket{Value: true}
	b := RevocableSubpacket{Value: false}
	c := PrimaryUserIDSubpacket{Value: true}

	abc := SubpacketSet{Subpackets: []Subpacket{{a}, {b}, {c}}}
	bac := SubpacketSet{Subpackets: []Subpacket{{b}, {a}, {c}}}

	if abc.Equal(bac) {
		t.Fatalf("{A,B,C} and {B,A,C} compared equal, want distinct")
	}

	for name, set := range map[string]SubpacketSet{"abc": abc, "bac": bac} {
		e := NewEncoder(nil)
		if err := set.Encode(e); err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		e.Flush()
		decoded, err := DecodeSubpacketSet(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("%s: Decode: %v", name, err)
		}
		if !decoded.Equal(set) {
			t.Fatalf("%s: round-trip lost or reordered subpackets: got %+v, want %+v", name, decoded, set)
		}
	}
}

// Unrecognized subpacket types encode their raw type and payload verbatim,
// and decode back as UnknownSubpacket rather than failing, with no type
// information lost.
func TestUnknownSubpacketPassthrough(t *testing.T) {
	raw := UnknownSubpacket{RawType: 200, Payload: []byte{0x01, 0x02, 0x03}}
	e := NewEncoder(nil)
	if err := (Subpacket{Payload: raw}).Encode(e); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	e.Flush()

	decoded, err := DecodeSubpacket(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatalf("Decode of an unrecognized subpacket type should succeed: %v", err)
	}
	got, ok := decoded.Payload.(UnknownSubpacket)
	if !ok {
		t.Fatalf("decoded payload is %T, want UnknownSubpacket", decoded.Payload)
	}
	if !cmp.Equal(got, raw) {
		t.Fatalf("decoded %+v, want %+v", got, raw)
	}
}

// Invariants 1-2 applied to a generated mix of typed subpackets.
func TestSubpacketSetRoundTripProperty(t *testing.T) {
	genSubpacket := rapid.OneOf(
		rapid.Custom(func(t *rapid.T) Subpacket {
			return Subpacket{Payload: ExportableSubpacket{Value: rapid.Bool().Draw(t, "exportable")}}
		}),
		rapid.Custom(func(t *rapid.T) Subpacket {
			return Subpacket{Payload: RevocableSubpacket{Value: rapid.Bool().Draw(t, "revocable")}}
		}),
		rapid.Custom(func(t *rapid.T) Subpacket {
			return Subpacket{Payload: CreationTimeSubpacket{Time: rapid.Uint32().Draw(t, "created")}}
		}),
		rapid.Custom(func(t *rapid.T) Subpacket {
			return Subpacket{Payload: KeyFlagsSubpacket{Flags: KeyFlag(rapid.Uint8().Draw(t, "flags"))}}
		}),
	)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		set := SubpacketSet{}
		for i := 0; i < n; i++ {
			set.Subpackets = append(set.Subpackets, genSubpacket.Draw(t, "subpacket"))
		}

		e := NewEncoder(nil)
		if err := set.Encode(e); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if got, want := set.EncodedLen(), e.Len(); got != want {
			t.Fatalf("EncodedLen() = %d, actually wrote %d", got, want)
		}
		e.Flush()

		decoded, err := DecodeSubpacketSet(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !decoded.Equal(set) {
			t.Fatalf("round-trip mismatch")
		}
	})
}
