// Package chaumpedersen implements the Chaum-Pedersen equality proof of
// knowledge (spec §4.4): the prover knows (id, r1, r2) such that
// C1 = id*G + r1*H and C2 = id*G + r2*H — i.e. the two commitments share
// the same hidden scalar.
package chaumpedersen

import (
	"github.com/weisyn/privacyzk/internal/ctcmp"
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/transcript"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// Proof is the equality PoK: two announcements under a single challenge,
// with three responses, the shared zId binding both equations to the
// same hidden scalar.
type Proof struct {
	A1, A2 curve.Point
	C      curve.Scalar
	ZId    curve.Scalar
	Z1, Z2 curve.Scalar
}

// Prove generates an equality PoK that commitment1 and commitment2 share
// the hidden scalar id, with independent blindings r1, r2.
func Prove(id, r1, r2 curve.Scalar, commitment1, commitment2 pedersen.Commitment, params pedersen.Params, domainSeparator string, ctxHash [32]byte) (Proof, error) {
	rhoId, err := curve.RandomScalar()
	if err != nil {
		return Proof{}, err
	}
	rho1, err := curve.RandomScalar()
	if err != nil {
		return Proof{}, err
	}
	rho2, err := curve.RandomScalar()
	if err != nil {
		return Proof{}, err
	}

	a1 := params.G.ScalarMul(rhoId).Add(params.H.ScalarMul(rho1))
	a2 := params.G.ScalarMul(rhoId).Add(params.H.ScalarMul(rho2))

	c := challenge(commitment1, commitment2, a1, a2, domainSeparator, ctxHash)

	zId := rhoId.Add(c.Mul(id))
	z1 := rho1.Add(c.Mul(r1))
	z2 := rho2.Add(c.Mul(r2))

	return Proof{A1: a1, A2: a2, C: c, ZId: zId, Z1: z1, Z2: z2}, nil
}

// Verify checks both verification equations
// z_id*G + z_1*H == A1 + c*C1  and  z_id*G + z_2*H == A2 + c*C2,
// after a constant-time challenge comparison.
func Verify(proof Proof, commitment1, commitment2 pedersen.Commitment, params pedersen.Params, domainSeparator string, ctxHash [32]byte) error {
	expected := challenge(commitment1, commitment2, proof.A1, proof.A2, domainSeparator, ctxHash)

	gotBytes := proof.C.Bytes()
	wantBytes := expected.Bytes()
	if !ctcmp.Equal(gotBytes[:], wantBytes[:]) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "challenge"}
	}

	lhs1 := params.G.ScalarMul(proof.ZId).Add(params.H.ScalarMul(proof.Z1))
	rhs1 := proof.A1.Add(commitment1.Point().ScalarMul(proof.C))
	if !lhs1.Equal(rhs1) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "equation"}
	}

	lhs2 := params.G.ScalarMul(proof.ZId).Add(params.H.ScalarMul(proof.Z2))
	rhs2 := proof.A2.Add(commitment2.Point().ScalarMul(proof.C))
	if !lhs2.Equal(rhs2) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "equation2"}
	}

	expected := challenge(commitment1, commitment2, proof.A1, proof.A2, domainSeparator, ctxHash)
	gotBytes := proof.C.Bytes()
	wantBytes := expected.Bytes()
	if !ctcmp.Equal(gotBytes[:], wantBytes[:]) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "challenge"}
	}
	return nil
}

func challenge(c1, c2 pedersen.Commitment, a1, a2 curve.Point, domainSeparator string, ctxHash [32]byte) curve.Scalar {
	return transcript.New(domainSeparator).
		WritePoint(c1.Point()).
		WritePoint(c2.Point()).
		WritePoint(a1).
		WritePoint(a2).
		WriteBytes(ctxHash[:]).
		Challenge()
}
