package openpgp

// SubpacketSet is a 2-byte length-prefixed, order-preserving sequence of
// subpackets. Equality is order-sensitive: {A,B,C} and {B,A,C} are
// distinct sets even though they carry the same subpackets, a plain
// sequence rather than a map keyed by subpacket type.
type SubpacketSet struct {
	Subpackets []Subpacket
}

// DecodeSubpacketSet reads the 2-byte total length, splices that many
// bytes, then decodes subpackets from the spliced region until it is
// exhausted. The total length must be exact: no trailing bytes may remain.
func DecodeSubpacketSet(d *Decoder) (SubpacketSet, error) {
	length, err := ExtractNumber[uint16](d)
	if err != nil {
		return SubpacketSet{}, err
	}
	inner, err := d.Splice(int(length))
	if err != nil {
		return SubpacketSet{}, err
	}
	var set SubpacketSet
	for !inner.Empty() {
		sp, err := DecodeSubpacket(inner)
		if err != nil {
			return SubpacketSet{}, err
		}
		set.Subpackets = append(set.Subpackets, sp)
	}
	return set, nil
}

// innerLen is the sum of each subpacket's own encoded length, not
// counting this set's 2-byte outer length prefix.
func (s SubpacketSet) innerLen() int {
	total := 0
	for _, sp := range s.Subpackets {
		total += sp.EncodedLen()
	}
	return total
}

// EncodedLen is the 2-byte length prefix plus the sum of the subpackets'
// encoded lengths.
func (s SubpacketSet) EncodedLen() int {
	return 2 + s.innerLen()
}

// Encode writes the 2-byte total inner length followed by each subpacket
// in order.
func (s SubpacketSet) Encode(e *Encoder) error {
	if err := Push(e, uint16(s.innerLen())); err != nil {
		return err
	}
	for _, sp := range s.Subpackets {
		if err := sp.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first subpacket of the given type and true, or the
// zero value and false if none is present.
func (s SubpacketSet) Find(t SubpacketType) (Subpacket, bool) {
	for _, sp := range s.Subpackets {
		if sp.Type() == t {
			return sp, true
		}
	}
	return Subpacket{}, false
}

// Equal compares two subpacket sets element-by-element in order: sets
// with the same subpackets in a different order are not equal.
func (s SubpacketSet) Equal(o SubpacketSet) bool {
	if len(s.Subpackets) != len(o.Subpackets) {
		return false
	}
	for i := range s.Subpackets {
		if !subpacketEqual(s.Subpackets[i], o.Subpackets[i]) {
			return false
		}
	}
	return true
}

func subpacketEqual(a, b Subpacket) bool {
	if a.Type() != b.Type() {
		return false
	}
	ae, aerr := encodeSubpacketBody(a)
	be, berr := encodeSubpacketBody(b)
	if aerr != nil || berr != nil {
		return false
	}
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}
	return true
}

func encodeSubpacketBody(s Subpacket) ([]byte, error) {
	e := NewEncoder(nil)
	if err := s.Payload.EncodeBody(e); err != nil {
		return nil, err
	}
	e.Flush()
	return e.Bytes(), nil
}
