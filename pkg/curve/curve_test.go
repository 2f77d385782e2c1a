package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	s := ScalarFromUint64(123456789)
	b := s.Bytes()
	s2, err := ScalarFromBytes(b[:])
	require.NoError(t, err)
	require.True(t, s.Equal(s2))
}

func TestScalarArithmetic(t *testing.T) {
	a := ScalarFromUint64(5)
	b := ScalarFromUint64(7)
	require.True(t, a.Add(b).Equal(ScalarFromUint64(12)))
	require.True(t, b.Sub(a).Equal(ScalarFromUint64(2)))
	require.True(t, a.Mul(b).Equal(ScalarFromUint64(35)))
}

func TestScalarFromBytesWrongLength(t *testing.T) {
	_, err := ScalarFromBytes(make([]byte, 31))
	require.Error(t, err)
}

func TestRandomScalarInRangeAndFresh(t *testing.T) {
	a, err := RandomScalar()
	require.NoError(t, err)
	require.False(t, a.IsZero())
	require.True(t, a.BigInt().Cmp(N) < 0)

	b, err := RandomScalar()
	require.NoError(t, err)
	require.False(t, a.Equal(b), "two independent draws collided with overwhelming improbability")
}

func TestPointEncodeDecodeRoundTrip(t *testing.T) {
	g := BasePoint()
	enc, err := g.Encode()
	require.NoError(t, err)
	require.Len(t, enc, PointSize)

	decoded, err := DecodePoint(enc[:])
	require.NoError(t, err)
	require.True(t, g.Equal(decoded))
}

func TestIdentityCannotBeEncoded(t *testing.T) {
	_, err := Identity().Encode()
	require.Error(t, err)
}

func TestScalarMulAndAddHomomorphism(t *testing.T) {
	g := BasePoint()
	a := ScalarFromUint64(3)
	b := ScalarFromUint64(4)

	ag := g.ScalarMul(a)
	bg := g.ScalarMul(b)
	sum := ag.Add(bg)

	abg := g.ScalarMul(a.Add(b))
	require.True(t, sum.Equal(abg))
}

func TestScalarMulByZeroIsIdentity(t *testing.T) {
	g := BasePoint()
	z := g.ScalarMul(ZeroScalar())
	require.True(t, z.IsIdentity())
}

func TestPointAddWithNegIsIdentity(t *testing.T) {
	g := BasePoint()
	require.True(t, g.Add(g.Neg()).IsIdentity())
}

func TestDecodePointRejectsBadLength(t *testing.T) {
	_, err := DecodePoint(make([]byte, 32))
	require.Error(t, err)
}

func TestDecodePointRejectsBadPrefix(t *testing.T) {
	enc, err := BasePoint().Encode()
	require.NoError(t, err)
	bad := enc
	bad[0] = 0x04
	_, err = DecodePoint(bad[:])
	require.Error(t, err)
}

func TestHashToCurveDeterministic(t *testing.T) {
	h1, err := HashToCurve([]byte("PEDERSEN_H_GEN_V1"))
	require.NoError(t, err)
	h2, err := HashToCurve([]byte("PEDERSEN_H_GEN_V1"))
	require.NoError(t, err)
	require.True(t, h1.Equal(h2))
	require.False(t, h1.IsIdentity())

	enc, err := h1.Encode()
	require.NoError(t, err)
	require.Len(t, enc, PointSize)
}

func TestHashToCurveDifferentTagsDiffer(t *testing.T) {
	h1, err := HashToCurve([]byte("TAG_A"))
	require.NoError(t, err)
	h2, err := HashToCurve([]byte("TAG_B"))
	require.NoError(t, err)
	require.False(t, h1.Equal(h2))
}
