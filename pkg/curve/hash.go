package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// HashToCurve derives a point deterministically from domainTag using
// try-and-increment: hash the tag with an incrementing 4-byte counter
// until the digest (as a big-endian integer mod P) is a valid x-coordinate
// with a square root. Constant time is not required here — H is public
// and computed once per process (spec §3, §4.1).
func HashToCurve(domainTag []byte) (Point, error) {
	for counter := uint32(0); counter < 1<<20; counter++ {
		var ctrBytes [4]byte
		binary.BigEndian.PutUint32(ctrBytes[:], counter)

		h := sha256.New()
		h.Write(domainTag)
		h.Write(ctrBytes[:])
		digest := h.Sum(nil)

		x := mod(new(big.Int).SetBytes(digest), P)
		rhs := mod(new(big.Int).Add(new(big.Int).Exp(x, big.NewInt(3), P), big.NewInt(7)), P)
		y, ok := sqrtModP(rhs)
		if !ok {
			continue
		}
		// Canonicalize to the even-y representative so repeated calls with
		// the same tag are fully deterministic regardless of sqrt branch.
		if y.Bit(0) == 1 {
			y = mod(new(big.Int).Neg(y), P)
		}
		p := Point{X: x, Y: y}
		if p.Infinity {
			continue
		}
		return p, nil
	}
	return Point{}, &zkerrors.InvalidPointError{Reason: "hash-to-curve did not converge"}
}
