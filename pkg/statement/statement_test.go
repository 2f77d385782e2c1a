package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHashIsDeterministic(t *testing.T) {
	ctx := Context{
		PeerID:    "peer-1",
		SessionID: "session-1",
		Metadata:  map[string][]byte{"b": []byte("2"), "a": []byte("1")},
		Timestamp: 1700000000,
	}
	h1 := ctx.Hash()
	h2 := ctx.Hash()
	assert.Equal(t, h1, h2)
}

func TestContextHashMetadataOrderIndependent(t *testing.T) {
	base := Context{PeerID: "p", SessionID: "s", Timestamp: 1}
	a := base
	a.Metadata = map[string][]byte{"x": []byte("1"), "y": []byte("2")}
	b := base
	b.Metadata = map[string][]byte{"y": []byte("2"), "x": []byte("1")}
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestContextHashDiffersOnAnyField(t *testing.T) {
	base := Context{PeerID: "p", SessionID: "s", Timestamp: 1}
	variants := []Context{
		{PeerID: "other", SessionID: "s", Timestamp: 1},
		{PeerID: "p", SessionID: "other", Timestamp: 1},
		{PeerID: "p", SessionID: "s", Timestamp: 2},
		{PeerID: "p", SessionID: "s", Timestamp: 1, Metadata: map[string][]byte{"k": []byte("v")}},
	}
	baseHash := base.Hash()
	for _, v := range variants {
		assert.NotEqual(t, baseHash, v.Hash())
	}
}

func TestIdentityScalarIsDeterministicPerPeer(t *testing.T) {
	a1 := IdentityScalar("peer-a")
	a2 := IdentityScalar("peer-a")
	b := IdentityScalar("peer-b")
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(b))
}

func TestZKProofEncodeDecodeRoundTrip(t *testing.T) {
	p := ZKProof{
		StatementType:    "test.statement",
		StatementVersion: 2,
		PublicInputs:     map[string][]byte{"k": {1, 2, 3}},
		Announcements:    [][]byte{{4, 5}, {6}},
		Challenge:        []byte{7, 8, 9},
		Responses:        [][]byte{{10}},
		ContextHash:      make([]byte, 32),
	}
	b, err := p.Encode()
	require.NoError(t, err)

	got, err := DecodeZKProof(b)
	require.NoError(t, err)
	assert.Equal(t, p.StatementType, got.StatementType)
	assert.Equal(t, p.StatementVersion, got.StatementVersion)
	assert.Equal(t, p.PublicInputs, got.PublicInputs)
	assert.Equal(t, p.Announcements, got.Announcements)
	assert.Equal(t, p.Challenge, got.Challenge)
	assert.Equal(t, p.Responses, got.Responses)
}

func TestZKProofDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeZKProof([]byte("not cbor"))
	require.Error(t, err)
}

func TestRegistryLookupUnknownReturnsBadMetadata(t *testing.T) {
	_, err := Lookup("no.such.statement", 99)
	require.Error(t, err)
}

func TestRegistryDuplicateRegistrationPanics(t *testing.T) {
	d := Descriptor{
		Type:    "statement.test.duplicate",
		Version: 1,
		Verify:  func(ZKProof) error { return nil },
	}
	Register(d)
	assert.Panics(t, func() { Register(d) })
}

func TestValidatePublicInputsRejectsMissingKey(t *testing.T) {
	d := Descriptor{
		Type:                 "statement.test.validate",
		Version:              1,
		RequiredPublicInputs: []string{"commitment"},
	}
	proof := ZKProof{StatementType: d.Type, StatementVersion: d.Version, PublicInputs: map[string][]byte{}}
	err := d.ValidatePublicInputs(proof)
	require.Error(t, err)
}

func TestValidatePublicInputsRejectsTypeVersionMismatch(t *testing.T) {
	d := Descriptor{Type: "statement.test.mismatch", Version: 1}
	proof := ZKProof{StatementType: "other", StatementVersion: 1}
	err := d.ValidatePublicInputs(proof)
	require.Error(t, err)
}
