package schnorr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
)

const testDS = "TEST_SCHNORR_V1"

func setupT(t *testing.T) pedersen.Params {
	t.Helper()
	p, err := pedersen.Setup()
	require.NoError(t, err)
	return p
}

func TestCompleteness(t *testing.T) {
	params := setupT(t)
	v := curve.ScalarFromUint64(42)
	c, r, err := pedersen.CommitWithRandom(v, params)
	require.NoError(t, err)

	var ctx [32]byte
	copy(ctx[:], []byte("ctx-a"))

	proof, err := Prove(v, r, c, params, testDS, ctx)
	require.NoError(t, err)
	require.NoError(t, Verify(proof, c, params, testDS, ctx))
}

func TestSoundnessWrongWitness(t *testing.T) {
	params := setupT(t)
	v := curve.ScalarFromUint64(42)
	c, r, err := pedersen.CommitWithRandom(v, params)
	require.NoError(t, err)

	var ctx [32]byte
	proof, err := Prove(v, r, c, params, testDS, ctx)
	require.NoError(t, err)

	// Flip the low bit of z_v: the equation must then fail.
	zv := proof.Zv.Bytes()
	zv[31] ^= 0x01
	tampered := proof
	tampered.Zv, _ = curve.ScalarFromBytes(zv[:])

	err = Verify(tampered, c, params, testDS, ctx)
	require.Error(t, err)
}

func TestContextBindingRejectsWrongContext(t *testing.T) {
	params := setupT(t)
	v := curve.ScalarFromUint64(42)
	c, r, err := pedersen.CommitWithRandom(v, params)
	require.NoError(t, err)

	var ctxA, ctxB [32]byte
	copy(ctxA[:], []byte("ctx-a"))
	copy(ctxB[:], []byte("ctx-b"))

	proof, err := Prove(v, r, c, params, testDS, ctxA)
	require.NoError(t, err)

	require.NoError(t, Verify(proof, c, params, testDS, ctxA))
	require.Error(t, Verify(proof, c, params, testDS, ctxB))
}

func TestNonceFreshness(t *testing.T) {
	params := setupT(t)
	v := curve.ScalarFromUint64(42)
	c, r, err := pedersen.CommitWithRandom(v, params)
	require.NoError(t, err)

	var ctx [32]byte
	p1, err := Prove(v, r, c, params, testDS, ctx)
	require.NoError(t, err)
	p2, err := Prove(v, r, c, params, testDS, ctx)
	require.NoError(t, err)

	require.False(t, p1.A.Equal(p2.A), "two honest proofs over the same witness must have distinct announcements")
}

func TestVerifyRejectsTamperedAnnouncement(t *testing.T) {
	params := setupT(t)
	v := curve.ScalarFromUint64(42)
	c, r, err := pedersen.CommitWithRandom(v, params)
	require.NoError(t, err)

	var ctx [32]byte
	proof, err := Prove(v, r, c, params, testDS, ctx)
	require.NoError(t, err)

	other, _, err := pedersen.CommitWithRandom(curve.ScalarFromUint64(1), params)
	require.NoError(t, err)
	tampered := proof
	tampered.A = other.Point()

	require.Error(t, Verify(tampered, c, params, testDS, ctx))
}
