//go:build !unix

package openpgp

// mlock/munlock have no portable equivalent outside unix; on other
// platforms the secure region still zeroes on release, it just can't ask
// the OS to keep the pages out of swap.
func mlock(b []byte) error   { return nil }
func munlock(b []byte) error { return nil }
