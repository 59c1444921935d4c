package hotelcore

import "github.com/google/uuid"

// NewDeviceFingerprint returns a fresh random identifier suitable for
// Identity.DeviceFingerprint. Callers that need a stable fingerprint across
// reconnects should generate one once and persist it themselves; this just
// covers the common case of a throwaway session.
func NewDeviceFingerprint() string {
	return uuid.NewString()
}
