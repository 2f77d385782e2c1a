package continuity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

func TestContinuityCompleteness(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(77)
	r1 := curve.ScalarFromUint64(1)
	r2 := curve.ScalarFromUint64(2)
	ctxHash := [32]byte{0x03}

	proof, err := Prove(VersionV2, id, r1, r2, params, ctxHash)
	require.NoError(t, err)
	require.NoError(t, statement.VerifyProof(proof))
}

func TestContinuityRejectsDifferentIdentities(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id1 := curve.ScalarFromUint64(1)
	id2 := curve.ScalarFromUint64(2)
	r1 := curve.ScalarFromUint64(5)
	r2 := curve.ScalarFromUint64(6)
	ctxHash := [32]byte{0x04}

	c1, err := pedersen.Commit(id1, r1, params)
	require.NoError(t, err)
	c2, err := pedersen.Commit(id2, r2, params)
	require.NoError(t, err)
	c1Bytes, err := c1.Bytes()
	require.NoError(t, err)
	c2Bytes, err := c2.Bytes()
	require.NoError(t, err)

	proof, err := Prove(VersionV2, id1, r1, r2, params, ctxHash)
	require.NoError(t, err)
	// Swap in a commitment that actually hides a different identity —
	// the shared-challenge PoK must fail on the second equation.
	proof.PublicInputs[keyCommitment1] = append([]byte(nil), c1Bytes[:]...)
	proof.PublicInputs[keyCommitment2] = append([]byte(nil), c2Bytes[:]...)

	err = statement.VerifyProof(proof)
	require.Error(t, err)
	var pokErr *zkerrors.PoKRejectedError
	require.ErrorAs(t, err, &pokErr)
}

func TestContinuityRejectsWrongContext(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(3)
	r1 := curve.ScalarFromUint64(4)
	r2 := curve.ScalarFromUint64(5)
	proof, err := Prove(VersionV2, id, r1, r2, params, [32]byte{0x05})
	require.NoError(t, err)

	proof.PublicInputs[keyCtxHash] = make([]byte, 32)

	err = statement.VerifyProof(proof)
	require.Error(t, err)
}
