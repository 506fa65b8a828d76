package openpgp

// SecureRegion is a fixed-size byte buffer for secret key scalars: locked
// against paging where the platform supports it (via golang.org/x/sys/unix's
// mlock, see secure_unix.go) and zeroed unconditionally on Release. Go has
// no destructors, so the discipline is explicit: call Release, typically
// via defer.
type SecureRegion struct {
	buf      []byte
	released bool
}

// NewSecureRegion allocates a locked region of n bytes, zero-initialized.
// mlock failures are logged but non-fatal: a secret held in unlocked
// memory is still zeroed reliably on Release.
func NewSecureRegion(n int) *SecureRegion {
	r := &SecureRegion{buf: make([]byte, n)}
	if err := mlock(r.buf); err != nil {
		log.WithError(err).Debug("openpgp: mlock failed for secure region; continuing unlocked")
	}
	return r
}

// NewSecureRegionFrom allocates a locked region and copies src into it.
// The guard returned alongside it must be resolved by the caller: call
// Disarm() once the surrounding construction fully succeeds, or let the
// guard's deferred Release zero the region on any abort path during
// partial construction.
func NewSecureRegionFrom(src []byte) (*SecureRegion, *SecureRegionGuard) {
	r := NewSecureRegion(len(src))
	copy(r.buf, src)
	return r, &SecureRegionGuard{region: r}
}

// Bytes exposes the region's backing slice directly; callers must not
// retain it past Release.
func (r *SecureRegion) Bytes() []byte {
	return r.buf
}

// Release zeroes the region and unlocks it. It is idempotent.
func (r *SecureRegion) Release() {
	if r.released {
		return
	}
	for i := range r.buf {
		r.buf[i] = 0
	}
	if err := munlock(r.buf); err != nil {
		log.WithError(err).Debug("openpgp: munlock failed for secure region")
	}
	r.released = true
	log.Debug("openpgp: secure region zeroed and released")
}

// SecureRegionGuard releases its region on Release unless Disarm has been
// called, so `defer guard.Release()` zeroes partially-constructed secret
// state on any abort path while letting successful construction keep the
// region alive under the owner's control.
type SecureRegionGuard struct {
	region   *SecureRegion
	disarmed bool
}

// Disarm marks construction as successful; the guarded region will no
// longer be released when the guard itself is released.
func (g *SecureRegionGuard) Disarm() {
	g.disarmed = true
}

// Release zeroes the guarded region unless the guard has been disarmed.
func (g *SecureRegionGuard) Release() {
	if g.disarmed {
		return
	}
	g.region.Release()
}
