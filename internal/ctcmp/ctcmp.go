// Package ctcmp provides the one comparison in the core that must run in
// constant time: the Fiat-Shamir challenge check.
package ctcmp

import "crypto/subtle"

// Equal reports whether a and b are byte-for-byte identical, in time
// independent of where they first differ. Unequal lengths are themselves
// a fast, non-secret-dependent rejection.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
