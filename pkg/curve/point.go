package curve

import (
	"math/big"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// Point is an affine secp256k1 point, or the point at infinity when
// Infinity is true (X, Y are then meaningless and left nil).
type Point struct {
	X, Y     *big.Int
	Infinity bool
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{Infinity: true}
}

// BasePoint returns the curve's standard generator G.
func BasePoint() Point {
	return Point{X: new(big.Int).Set(Gx), Y: new(big.Int).Set(Gy)}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.Infinity
}

// Equal reports whether p and o denote the same point.
func (p Point) Equal(o Point) bool {
	if p.Infinity || o.Infinity {
		return p.Infinity == o.Infinity
	}
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

// Neg returns -p (same X, negated Y).
func (p Point) Neg() Point {
	if p.Infinity {
		return p
	}
	return Point{X: new(big.Int).Set(p.X), Y: mod(new(big.Int).Neg(p.Y), P)}
}

// Add returns p+o using the standard affine group law for a short
// Weierstrass curve with a=0 (secp256k1's defining equation y^2=x^3+7).
func (p Point) Add(o Point) Point {
	if p.Infinity {
		return o
	}
	if o.Infinity {
		return p
	}
	if p.X.Cmp(o.X) == 0 {
		if mod(new(big.Int).Add(p.Y, o.Y), P).Sign() == 0 {
			return Identity()
		}
		return p.double()
	}

	// lambda = (oy - py) / (ox - px)
	num := mod(new(big.Int).Sub(o.Y, p.Y), P)
	den := mod(new(big.Int).Sub(o.X, p.X), P)
	lambda := mod(new(big.Int).Mul(num, invMod(den, P)), P)

	x3 := mod(new(big.Int).Sub(new(big.Int).Sub(new(big.Int).Mul(lambda, lambda), p.X), o.X), P)
	y3 := mod(new(big.Int).Sub(new(big.Int).Mul(lambda, new(big.Int).Sub(p.X, x3)), p.Y), P)
	return Point{X: x3, Y: y3}
}

func (p Point) double() Point {
	if p.Infinity || p.Y.Sign() == 0 {
		return Identity()
	}
	// lambda = 3*x^2 / (2*y)   (a=0 for secp256k1)
	xSq := mod(new(big.Int).Mul(p.X, p.X), P)
	num := mod(new(big.Int).Mul(big.NewInt(3), xSq), P)
	den := mod(new(big.Int).Mul(big.NewInt(2), p.Y), P)
	lambda := mod(new(big.Int).Mul(num, invMod(den, P)), P)

	x3 := mod(new(big.Int).Sub(new(big.Int).Mul(lambda, lambda), new(big.Int).Mul(big.NewInt(2), p.X)), P)
	y3 := mod(new(big.Int).Sub(new(big.Int).Mul(lambda, new(big.Int).Sub(p.X, x3)), p.Y), P)
	return Point{X: x3, Y: y3}
}

// ScalarMul returns s*p via double-and-add. Not constant-time: spec §9
// documents scalar multiplication as a prototype-level guarantee only.
func (p Point) ScalarMul(s Scalar) Point {
	result := Identity()
	addend := p
	k := s.v
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.Add(addend)
		}
		addend = addend.double()
	}
	return result
}

// ScalarBaseMul returns s*G.
func ScalarBaseMul(s Scalar) Point {
	return BasePoint().ScalarMul(s)
}

// Encode serializes p as a 33-byte SEC1 compressed point. Encoding the
// identity is rejected: spec §3 forbids the identity as a commitment
// output and no statement ever needs to transmit it.
func (p Point) Encode() ([PointSize]byte, error) {
	var out [PointSize]byte
	if p.Infinity {
		return out, &zkerrors.InvalidPointError{Reason: "cannot encode the point at infinity"}
	}
	if p.Y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	xb := p.X.Bytes()
	copy(out[1+PointSize-1-len(xb):], xb)
	return out, nil
}

// DecodePoint parses a 33-byte SEC1 compressed point, verifying it lies on
// the curve. The identity point has no compressed encoding and is always
// rejected here.
func DecodePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, &zkerrors.BadEncodingError{Field: "point", Err: errWrongLen(len(b), PointSize)}
	}
	prefix := b[0]
	if prefix != 0x02 && prefix != 0x03 {
		return Point{}, &zkerrors.InvalidPointError{Reason: "unrecognized compression prefix"}
	}
	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(P) >= 0 {
		return Point{}, &zkerrors.InvalidPointError{Reason: "x not in field"}
	}

	rhs := mod(new(big.Int).Add(new(big.Int).Exp(x, big.NewInt(3), P), big.NewInt(7)), P)
	y, ok := sqrtModP(rhs)
	if !ok {
		return Point{}, &zkerrors.InvalidPointError{Reason: "x is not on curve"}
	}
	wantOdd := prefix == 0x03
	if (y.Bit(0) == 1) != wantOdd {
		y = mod(new(big.Int).Neg(y), P)
	}
	return Point{X: x, Y: y}, nil
}

// sqrtModP computes a square root of a modulo the secp256k1 field prime,
// which is congruent to 3 mod 4, so sqrt(a) = a^((p+1)/4) mod p when a is
// a quadratic residue.
func sqrtModP(a *big.Int) (*big.Int, bool) {
	if a.Sign() == 0 {
		return new(big.Int), true
	}
	exp := new(big.Int).Rsh(new(big.Int).Add(P, big.NewInt(1)), 2)
	y := new(big.Int).Exp(a, exp, P)
	check := mod(new(big.Int).Mul(y, y), P)
	if check.Cmp(mod(a, P)) != 0 {
		return nil, false
	}
	return y, true
}

func invMod(a, m *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, m)
}
