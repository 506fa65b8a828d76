package openpgp

// UserID is an RFC 4880 §5.11 User ID packet payload: the packet body
// taken verbatim as bytes and stored as a string. The wire format places
// no encoding requirement on the bytes, so this library does not validate
// UTF-8 on decode.
type UserID struct {
	ID string
}

// NewUserID wraps a literal user id string.
func NewUserID(id string) UserID {
	return UserID{ID: id}
}

// DecodeUserID consumes the remainder of d as the user id body.
func DecodeUserID(d *Decoder) (UserID, error) {
	blob, err := d.ExtractBlob(d.Size())
	if err != nil {
		return UserID{}, err
	}
	return UserID{ID: string(blob)}, nil
}

// Size is the byte length of the id string.
func (u UserID) Size() int {
	return len(u.ID)
}

// PacketTag is always PacketTagUserID, so UserID satisfies PacketPayload.
func (UserID) PacketTag() PacketTag { return PacketTagUserID }

// EncodedLen is an alias for Size, matching the PacketPayload interface's
// naming convention used by Key and Signature.
func (u UserID) EncodedLen() int { return u.Size() }

// Encode writes the id bytes verbatim.
func (u UserID) Encode(e *Encoder) error {
	return e.InsertBlob([]byte(u.ID))
}

// Equal compares the underlying strings.
func (u UserID) Equal(o UserID) bool {
	return u.ID == o.ID
}
