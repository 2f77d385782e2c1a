package chaumpedersen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
)

const testDS = "TEST_CONTINUITY_V1"

func setupT(t *testing.T) pedersen.Params {
	t.Helper()
	p, err := pedersen.Setup()
	require.NoError(t, err)
	return p
}

func TestEqualityCompleteness(t *testing.T) {
	params := setupT(t)
	id := curve.ScalarFromUint64(777)
	r1, err := curve.RandomScalar()
	require.NoError(t, err)
	r2, err := curve.RandomScalar()
	require.NoError(t, err)

	c1, err := pedersen.Commit(id, r1, params)
	require.NoError(t, err)
	c2, err := pedersen.Commit(id, r2, params)
	require.NoError(t, err)

	var ctx [32]byte
	proof, err := Prove(id, r1, r2, c1, c2, params, testDS, ctx)
	require.NoError(t, err)
	require.NoError(t, Verify(proof, c1, c2, params, testDS, ctx))
}

func TestEqualityRejectsDifferentIdentities(t *testing.T) {
	params := setupT(t)
	id1 := curve.ScalarFromUint64(1)
	id2 := curve.ScalarFromUint64(2)
	r1, err := curve.RandomScalar()
	require.NoError(t, err)
	r2, err := curve.RandomScalar()
	require.NoError(t, err)

	c1, err := pedersen.Commit(id1, r1, params)
	require.NoError(t, err)
	c2, err := pedersen.Commit(id2, r2, params)
	require.NoError(t, err)

	var ctx [32]byte
	// An honest proof for id1 cannot be produced for this (c1, c2) pair
	// since there is no shared witness; emulate a forger submitting the
	// id1 proof against the mismatched c2 and confirm equation2 fails.
	proof, err := Prove(id1, r1, r2, c1, c2, params, testDS, ctx)
	require.NoError(t, err)
	require.Error(t, Verify(proof, c1, c2, params, testDS, ctx))
}

func TestEqualityContextBinding(t *testing.T) {
	params := setupT(t)
	id := curve.ScalarFromUint64(9)
	r1, err := curve.RandomScalar()
	require.NoError(t, err)
	r2, err := curve.RandomScalar()
	require.NoError(t, err)
	c1, err := pedersen.Commit(id, r1, params)
	require.NoError(t, err)
	c2, err := pedersen.Commit(id, r2, params)
	require.NoError(t, err)

	var ctxA, ctxB [32]byte
	copy(ctxA[:], []byte("a"))
	copy(ctxB[:], []byte("b"))

	proof, err := Prove(id, r1, r2, c1, c2, params, testDS, ctxA)
	require.NoError(t, err)
	require.NoError(t, Verify(proof, c1, c2, params, testDS, ctxA))
	require.Error(t, Verify(proof, c1, c2, params, testDS, ctxB))
}
