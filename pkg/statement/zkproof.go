package statement

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

var canonicalEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("statement: building canonical CBOR encode mode: " + err.Error())
	}
	return em
}()

// ZKProof is the self-contained, wire-level proof envelope (spec §3).
// Verification needs only the proof and the public parameters of the
// statement type; every field is fixed-width at the byte level even
// though CBOR itself is not a fixed-width format.
type ZKProof struct {
	StatementType    string            `cbor:"type"`
	StatementVersion uint8             `cbor:"version"`
	PublicInputs     map[string][]byte `cbor:"public_inputs"`
	Announcements    [][]byte          `cbor:"announcements"`
	Challenge        []byte            `cbor:"challenge"`
	Responses        [][]byte          `cbor:"responses"`
	ContextHash      []byte            `cbor:"context_hash"`
}

// Encode serializes the proof as canonical CBOR: map keys sorted
// ascending by raw byte sequence, matching spec §6's "Canonical
// encodings" requirement so two independent implementations produce
// byte-identical output for the same proof.
func (p ZKProof) Encode() ([]byte, error) {
	b, err := canonicalEncMode.Marshal(p)
	if err != nil {
		return nil, &zkerrors.BadEncodingError{Field: "zkproof", Err: err}
	}
	return b, nil
}

// DecodeZKProof parses canonical CBOR produced by Encode.
func DecodeZKProof(b []byte) (ZKProof, error) {
	var p ZKProof
	if err := cbor.Unmarshal(b, &p); err != nil {
		return ZKProof{}, &zkerrors.BadEncodingError{Field: "zkproof", Err: err}
	}
	return p, nil
}
