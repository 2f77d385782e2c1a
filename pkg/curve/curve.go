// Package curve implements secp256k1 scalar and point arithmetic for the
// privacyzk Sigma-protocol core: encodings, RNG, and hash-to-curve.
//
// Point arithmetic is implemented directly against affine-coordinate
// addition formulas rather than relying on elliptic.Curve.Add's implicit
// point-at-infinity handling, so the identity point's rejection can be
// made explicit everywhere it matters. Scalars reduce mod N (curve
// order) via math/big; curve parameters are sourced from btcec.S256(),
// the same boundary the teacher's own secp256k1 wrapper uses.
package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

var (
	curveParams = btcec.S256().Params()

	// P is the secp256k1 field prime.
	P = curveParams.P
	// N is the secp256k1 group order (q in spec notation).
	N = curveParams.N
	// Gx, Gy are the standard base point coordinates.
	Gx = curveParams.Gx
	Gy = curveParams.Gy
)

// ScalarSize is the fixed big-endian encoding length of a Scalar.
const ScalarSize = 32

// PointSize is the fixed SEC1-compressed encoding length of a Point.
const PointSize = 33

func mod(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	return r
}
