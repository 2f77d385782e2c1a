package curve

import (
	"math/big"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// Scalar is an element of the secp256k1 scalar field (mod N). The zero
// value Scalar{} holds no value and is not usable; use ZeroScalar() for
// the scalar 0.
type Scalar struct {
	v *big.Int // always kept reduced to [0, N)
}

// ZeroScalar returns the additive identity.
func ZeroScalar() Scalar {
	return Scalar{v: new(big.Int)}
}

// ScalarFromUint64 builds a Scalar from a small non-negative integer.
func ScalarFromUint64(x uint64) Scalar {
	return Scalar{v: mod(new(big.Int).SetUint64(x), N)}
}

// ScalarFromBigInt reduces an arbitrary big.Int modulo N.
func ScalarFromBigInt(v *big.Int) Scalar {
	return Scalar{v: mod(v, N)}
}

// ScalarFromBytes decodes a 32-byte big-endian scalar, reducing it modulo N
// as spec §3 requires ("all arithmetic is taken modulo q"). Only the
// length is validated here; range reduction is implicit.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, &zkerrors.BadEncodingError{Field: "scalar", Err: errWrongLen(len(b), ScalarSize)}
	}
	v := mod(new(big.Int).SetBytes(b), N)
	return Scalar{v: v}, nil
}

// Bytes encodes the scalar as 32-byte big-endian, zero-padded.
func (s Scalar) Bytes() [ScalarSize]byte {
	var out [ScalarSize]byte
	b := s.v.Bytes()
	copy(out[ScalarSize-len(b):], b)
	return out
}

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Equal reports whether two scalars are the same field element.
func (s Scalar) Equal(o Scalar) bool {
	return s.v.Cmp(o.v) == 0
}

// Add returns s+o mod N.
func (s Scalar) Add(o Scalar) Scalar {
	return Scalar{v: mod(new(big.Int).Add(s.v, o.v), N)}
}

// Sub returns s-o mod N.
func (s Scalar) Sub(o Scalar) Scalar {
	return Scalar{v: mod(new(big.Int).Sub(s.v, o.v), N)}
}

// Mul returns s*o mod N.
func (s Scalar) Mul(o Scalar) Scalar {
	return Scalar{v: mod(new(big.Int).Mul(s.v, o.v), N)}
}

// Neg returns -s mod N.
func (s Scalar) Neg() Scalar {
	return Scalar{v: mod(new(big.Int).Neg(s.v), N)}
}

// BigInt returns the underlying big.Int value. The returned value must not
// be mutated by callers; it is shared with the Scalar.
func (s Scalar) BigInt() *big.Int {
	return s.v
}

func errWrongLen(got, want int) error {
	return &wrongLenErr{got: got, want: want}
}

type wrongLenErr struct{ got, want int }

func (e *wrongLenErr) Error() string {
	return "wrong length: got " + itoa(e.got) + " want " + itoa(e.want)
}

func itoa(n int) string {
	return big.NewInt(int64(n)).String()
}
