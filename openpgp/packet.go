package openpgp

// PacketPayload is implemented by every value that can sit inside a packet
// envelope: *Signature, *Key (for all four roles), UserID, and
// UnknownPacket. Dispatch is by the on-wire tag, the same closed-switch
// shape as the payload variants nested inside it.
type PacketPayload interface {
	PacketTag() PacketTag
	EncodedLen() int
	Encode(e *Encoder) error
}

// Packet is a tag plus a payload drawn from the set above. Equality
// delegates to the payload, so two packets carrying equal values compare
// equal regardless of which concrete Go value produced them.
type Packet struct {
	Payload PacketPayload
}

// Tag returns the payload's on-wire packet tag.
func (p Packet) Tag() PacketTag { return p.Payload.PacketTag() }

// EncodedLen is the payload size plus header bytes: 1 tag byte plus the
// 1/2/4 old-format length bytes or the varlen new-format length.
func (p Packet) EncodedLen() int {
	bodyLen := p.Payload.EncodedLen()
	return 1 + headerLen(p.Tag(), bodyLen) + bodyLen
}

func headerLen(tag PacketTag, bodyLen int) int {
	if tag.OldFormatCompatible() {
		return oldLengthFieldSize(bodyLen)
	}
	return VarLen(bodyLen).Size()
}

func oldLengthFieldSize(bodyLen int) int {
	switch {
	case bodyLen <= 0xff:
		return 1
	case bodyLen <= 0xffff:
		return 2
	default:
		return 4
	}
}

// Encode writes the packet: the required leading bit, a format bit, the
// tag, a length, then the payload. The format choice is deterministic: old
// format with the smallest length field that fits when the tag is
// old-format-compatible (numeric value < 16), new format with a varlen
// length otherwise. This is bit-exact but not the only legal encoding
// RFC 4880 permits — readers must accept both formats.
func (p Packet) Encode(e *Encoder) error {
	bodyEnc := NewEncoder(nil)
	if err := p.Payload.Encode(bodyEnc); err != nil {
		return err
	}
	bodyEnc.Flush()
	body := bodyEnc.Bytes()

	tag := p.Tag()
	if err := e.InsertBits(1, 1); err != nil {
		return err
	}
	if tag.OldFormatCompatible() {
		if err := e.InsertBits(1, 0); err != nil {
			return err
		}
		if err := e.InsertBits(4, uint8(tag)); err != nil {
			return err
		}
		lengthType, err := oldLengthType(len(body))
		if err != nil {
			return err
		}
		if err := e.InsertBits(2, lengthType); err != nil {
			return err
		}
		switch lengthType {
		case 0:
			if err := Push(e, uint8(len(body))); err != nil {
				return err
			}
		case 1:
			if err := Push(e, uint16(len(body))); err != nil {
				return err
			}
		case 2:
			if err := Push(e, uint32(len(body))); err != nil {
				return err
			}
		}
	} else {
		if err := e.InsertBits(1, 1); err != nil {
			return err
		}
		if err := e.InsertBits(6, uint8(tag)); err != nil {
			return err
		}
		if err := VarLen(len(body)).Encode(e); err != nil {
			return err
		}
	}
	return e.InsertBlob(body)
}

func oldLengthType(bodyLen int) (uint8, error) {
	switch {
	case bodyLen <= 0xff:
		return 0, nil
	case bodyLen <= 0xffff:
		return 1, nil
	case bodyLen <= 0xffffffff:
		return 2, nil
	default:
		return 0, rangeErrorf("Packet.Encode", "body of %d bytes exceeds the old-format 4-byte length field", bodyLen)
	}
}

// DecodePacket reads one packet envelope from d: the required leading bit,
// the format bit, the tag, and a length, then dispatches on the tag to the
// concrete payload constructor. An unrecognized tag is not a decode error:
// for forward compatibility it becomes UnknownPacket. DecodePacket is this
// package's main entry point for untrusted wire bytes, so it recovers any
// slice-bounds panic that slips past the Decoder's own bounds checks into
// an OutOfRangeError rather than letting it propagate, matching the
// teacher's SignKey.Load.
func DecodePacket(d *Decoder) (pkt Packet, err error) {
	defer func() {
		if r := recover(); r != nil {
			pkt = Packet{}
			err = outOfRange("DecodePacket")
		}
	}()
	required, err := d.ExtractBits(1)
	if err != nil {
		return Packet{}, err
	}
	if required != 1 {
		return Packet{}, runtimeErrorf("DecodePacket", "required leading bit was not set")
	}
	formatBit, err := d.ExtractBits(1)
	if err != nil {
		return Packet{}, err
	}

	var tag PacketTag
	var body *Decoder
	if formatBit == 1 {
		t, err := d.ExtractBits(6)
		if err != nil {
			return Packet{}, err
		}
		tag = PacketTag(t)
		length, err := DecodeVarLen(d)
		if err != nil {
			return Packet{}, err
		}
		body, err = d.Splice(int(length))
		if err != nil {
			return Packet{}, err
		}
	} else {
		t, err := d.ExtractBits(4)
		if err != nil {
			return Packet{}, err
		}
		tag = PacketTag(t)
		lengthType, err := d.ExtractBits(2)
		if err != nil {
			return Packet{}, err
		}
		switch lengthType {
		case 0:
			n, err := ExtractNumber[uint8](d)
			if err != nil {
				return Packet{}, err
			}
			body, err = d.Splice(int(n))
			if err != nil {
				return Packet{}, err
			}
		case 1:
			n, err := ExtractNumber[uint16](d)
			if err != nil {
				return Packet{}, err
			}
			body, err = d.Splice(int(n))
			if err != nil {
				return Packet{}, err
			}
		case 2:
			n, err := ExtractNumber[uint32](d)
			if err != nil {
				return Packet{}, err
			}
			body, err = d.Splice(int(n))
			if err != nil {
				return Packet{}, err
			}
		default: // 3: indeterminate length, decode-only
			body = d
		}
	}

	payload, err := decodePacketPayload(tag, body)
	if err != nil {
		return Packet{}, err
	}
	return Packet{Payload: payload}, nil
}

func decodePacketPayload(tag PacketTag, d *Decoder) (PacketPayload, error) {
	switch tag {
	case PacketTagSignature:
		return DecodeSignature(d)
	case PacketTagPublicKey:
		return DecodeKey(RolePublicPrimary, d)
	case PacketTagSecretKey:
		return DecodeKey(RoleSecretPrimary, d)
	case PacketTagPublicSubkey:
		return DecodeKey(RolePublicSubkey, d)
	case PacketTagSecretSubkey:
		return DecodeKey(RoleSecretSubkey, d)
	case PacketTagUserID:
		return DecodeUserID(d)
	default:
		log.WithField("tag", tag).Debug("openpgp: unrecognized packet tag, storing as Unknown")
		raw, err := d.ExtractBlob(d.Size())
		if err != nil {
			return nil, err
		}
		return UnknownPacket{Tag_: tag, Raw: append([]byte(nil), raw...)}, nil
	}
}

// UnknownPacket carries the raw body of a packet whose tag this library
// does not recognize. It decodes successfully (forward compatibility) but
// refuses to encode, preserving the raw bytes rather than rejecting them.
type UnknownPacket struct {
	Tag_ PacketTag
	Raw  []byte
}

func (p UnknownPacket) PacketTag() PacketTag { return p.Tag_ }
func (p UnknownPacket) EncodedLen() int      { return len(p.Raw) }
func (p UnknownPacket) Encode(e *Encoder) error {
	return runtimeErrorf("UnknownPacket.Encode", "cannot encode a packet with unrecognized tag %d", p.Tag_)
}
