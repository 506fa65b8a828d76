package openpgp

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"
)

// HashSink is the incremental hash primitive this package consumes as a
// collaborator: update with bytes, finalize to a digest. It is satisfied
// directly by hash.Hash from the standard library.
type HashSink interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// newSHA1 and newSHA256 back the two hash algorithms fingerprinting and
// signature construction need.
func newSHA1() hash.Hash   { return sha1.New() }
func newSHA256() hash.Hash { return sha256.New() }
