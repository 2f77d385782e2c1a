// Package schnorr implements the non-interactive Schnorr proof of
// knowledge of a Pedersen commitment opening (spec §4.3): the prover
// knows (v, r) such that C = v*G + r*H.
package schnorr

import (
	"github.com/weisyn/privacyzk/internal/ctcmp"
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/transcript"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// Proof is the four-element Schnorr PoK of opening: (A, c, z_v, z_b).
type Proof struct {
	A   curve.Point
	C   curve.Scalar
	Zv  curve.Scalar
	Zb  curve.Scalar
}

// Prove generates a Schnorr PoK that the prover knows (value, blinding)
// opening commitment under the given domain separator and context hash.
// ctxHash binds the proof to a ProofContext (spec §3): a verifier that
// recomputes the challenge with a different ctxHash will reject it.
func Prove(value, blinding curve.Scalar, commitment pedersen.Commitment, params pedersen.Params, domainSeparator string, ctxHash [32]byte) (Proof, error) {
	rhoV, err := curve.RandomScalar()
	if err != nil {
		return Proof{}, err
	}
	rhoB, err := curve.RandomScalar()
	if err != nil {
		return Proof{}, err
	}
	// RandomScalar already excludes zero (spec §4.3 step 1: "if either is
	// zero, resample" — zero is structurally impossible here, not merely
	// improbable).

	a := params.G.ScalarMul(rhoV).Add(params.H.ScalarMul(rhoB))

	c := challenge(params, commitment, a, domainSeparator, ctxHash)

	zv := rhoV.Add(c.Mul(value))
	zb := rhoB.Add(c.Mul(blinding))

	return Proof{A: a, C: c, Zv: zv, Zb: zb}, nil
}

// Verify checks a Schnorr PoK of opening against commitment, recomputing
// the challenge and comparing it to the prover-supplied one in constant
// time before checking the verification equation
// z_v*G + z_b*H == A + c*C.
func Verify(proof Proof, commitment pedersen.Commitment, params pedersen.Params, domainSeparator string, ctxHash [32]byte) error {
	expected := challenge(params, commitment, proof.A, domainSeparator, ctxHash)

	gotBytes := proof.C.Bytes()
	wantBytes := expected.Bytes()
	if !ctcmp.Equal(gotBytes[:], wantBytes[:]) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "challenge"}
	}

	lhs := params.G.ScalarMul(proof.Zv).Add(params.H.ScalarMul(proof.Zb))
	rhs := proof.A.Add(commitment.Point().ScalarMul(proof.C))
	if !lhs.Equal(rhs) {
		return &zkerrors.PoKRejectedError{Statement: domainSeparator, Check: "equation"}
	}
	return nil
}

func challenge(params pedersen.Params, commitment pedersen.Commitment, a curve.Point, domainSeparator string, ctxHash [32]byte) curve.Scalar {
	return transcript.New(domainSeparator).
		WritePoint(params.G).
		WritePoint(params.H).
		WritePoint(commitment.Point()).
		WritePoint(a).
		WriteBytes(ctxHash[:]).
		Challenge()
}
