package unlinkability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

func TestUnlinkabilityCompleteness(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(11)
	r := curve.ScalarFromUint64(22)
	ctxHash := [32]byte{0x01, 0x02}

	proof, err := Prove(VersionV2, id, r, params, ctxHash)
	require.NoError(t, err)
	require.NoError(t, statement.VerifyProof(proof))
}

func TestUnlinkabilityDistinctSessionsProduceDistinctTags(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(11)
	r1 := curve.ScalarFromUint64(22)
	r2 := curve.ScalarFromUint64(33)

	proof1, err := Prove(VersionV2, id, r1, params, [32]byte{0x01})
	require.NoError(t, err)
	proof2, err := Prove(VersionV2, id, r2, params, [32]byte{0x01})
	require.NoError(t, err)

	require.NotEqual(t, proof1.PublicInputs[keyTag], proof2.PublicInputs[keyTag])
}

func TestUnlinkabilityRejectsTamperedTag(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(5)
	r := curve.ScalarFromUint64(6)
	proof, err := Prove(VersionV2, id, r, params, [32]byte{0x09})
	require.NoError(t, err)

	tampered := append([]byte(nil), proof.PublicInputs[keyTag]...)
	tampered[0] ^= 0xFF
	proof.PublicInputs[keyTag] = tampered

	err = statement.VerifyProof(proof)
	require.Error(t, err)
	var tagErr *zkerrors.TagMismatchError
	require.ErrorAs(t, err, &tagErr)
}

func TestUnlinkabilityRejectsWrongContext(t *testing.T) {
	params, err := pedersen.Setup()
	require.NoError(t, err)

	id := curve.ScalarFromUint64(5)
	r := curve.ScalarFromUint64(6)
	proof, err := Prove(VersionV2, id, r, params, [32]byte{0x09})
	require.NoError(t, err)

	proof.PublicInputs[keyCtxHash] = []byte{
		0x10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	err = statement.VerifyProof(proof)
	require.Error(t, err)
}
