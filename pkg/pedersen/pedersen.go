// Package pedersen implements Pedersen commitments over secp256k1:
// C = v*G + r*H, with G the curve's base point and H a second generator
// whose discrete log relative to G is unknown to anyone (spec §3, §4.2).
package pedersen

import (
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// HDomainTag is the fixed domain separator hashed to derive H.
const HDomainTag = "PEDERSEN_H_GEN_V1"

// Params holds the commitment scheme's public generators. A Params value
// is created once per process and is immutable and safe for concurrent
// use thereafter (spec §3 "Lifecycles").
type Params struct {
	G curve.Point
	H curve.Point
}

// Setup derives the canonical parameter set: G is the curve's standard
// base point, H is hash-to-curve of HDomainTag.
func Setup() (Params, error) {
	h, err := curve.HashToCurve([]byte(HDomainTag))
	if err != nil {
		return Params{}, err
	}
	return Params{G: curve.BasePoint(), H: h}, nil
}

// Commitment is an opaque Pedersen commitment. Commit and CommitWithRandom
// both reject producing the identity point; Add does not check its sum, so
// adding a commitment to its negation yields an identity-valued Commitment.
type Commitment struct {
	point curve.Point
}

// Point exposes the underlying curve point, e.g. for use as a public
// input to a Sigma proof.
func (c Commitment) Point() curve.Point { return c.point }

// Bytes encodes the commitment as a 33-byte SEC1 compressed point.
func (c Commitment) Bytes() ([curve.PointSize]byte, error) {
	return c.point.Encode()
}

// CommitmentFromBytes decodes a 33-byte SEC1 compressed commitment,
// rejecting the identity point (it would be the trivially-openable pair
// (0,0)).
func CommitmentFromBytes(b []byte) (Commitment, error) {
	p, err := curve.DecodePoint(b)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{point: p}, nil
}

// Commit computes C = v*G + r*H for a caller-supplied blinding factor.
// The commit operation rejects producing the identity point.
func Commit(v, r curve.Scalar, params Params) (Commitment, error) {
	c := params.G.ScalarMul(v).Add(params.H.ScalarMul(r))
	if c.IsIdentity() {
		return Commitment{}, &zkerrors.InvalidPointError{Reason: "commitment would be the identity point"}
	}
	return Commitment{point: c}, nil
}

// CommitWithRandom samples a fresh blinding factor uniformly from
// [1, q-1] and commits to v, returning both the commitment and the
// blinding it used.
func CommitWithRandom(v curve.Scalar, params Params) (Commitment, curve.Scalar, error) {
	r, err := curve.RandomScalar()
	if err != nil {
		return Commitment{}, curve.Scalar{}, err
	}
	c, err := Commit(v, r, params)
	if err != nil {
		return Commitment{}, curve.Scalar{}, err
	}
	return c, r, nil
}

// Verify checks that commitment opens to (v, r) under params. Verification
// is lenient modulo q so that sums produced by Add still open correctly —
// this is spec §4.2's one documented laxness, nothing else is permitted
// to be lenient.
func Verify(c Commitment, v, r curve.Scalar, params Params) bool {
	want, err := Commit(v, r, params)
	if err != nil {
		return false
	}
	return c.point.Equal(want.point)
}

// Add returns the homomorphic sum of two commitments: C1+C2 opens to
// (v1+v2, r1+r2) mod q whenever C1 opens to (v1,r1) and C2 to (v2,r2).
func Add(c1, c2 Commitment) Commitment {
	return Commitment{point: c1.point.Add(c2.point)}
}
