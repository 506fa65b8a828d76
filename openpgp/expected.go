package openpgp

// ExpectConstant extracts a T from d and checks it equals want, failing
// with a RangeError on mismatch. It is used for the fixed bytes that
// appear at known offsets throughout the wire format (packet version
// bytes, ECDH KDF prefix constants, and so on).
func ExpectConstant[T number](d *Decoder, want T) error {
	got, err := ExtractNumber[T](d)
	if err != nil {
		return err
	}
	if got != want {
		return rangeErrorf("ExpectConstant", "expected %v, got %v", want, got)
	}
	return nil
}
