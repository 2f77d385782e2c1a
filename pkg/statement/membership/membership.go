// Package membership implements the anonymity-set membership statement
// (spec §4.6): the prover shows a commitment sits in a Merkle-accumulated
// anonymity set and proves knowledge of its opening, without revealing
// which member it is beyond what the tree and blinding already hide.
package membership

import (
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/merkletree"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/schnorr"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

const (
	// StatementType is the wire type tag for this statement.
	StatementType = "anon_set_membership"

	// VersionV1 is the legacy wire version, kept registered so proofs
	// made under it remain verifiable (spec §9 upgrade seam) but never
	// emitted by current CLI tooling.
	VersionV1 uint8 = 1
	// VersionV2 is the canonical version emitted at /privacyzk/1.0.0
	// (SPEC_FULL.md §5's pinned open-question decision).
	VersionV2 uint8 = 2

	domainSeparatorV1 = "ANON_SET_MEMBERSHIP_V1"
	domainSeparatorV2 = "ANON_SET_MEMBERSHIP_V2"
)

const (
	keyRoot       = "root"
	keyCommitment = "commitment"
	keyCtxHash    = "ctx_hash"
	keyDomainSep  = "domain_sep"
	keyMerklePath = "merkle_path"
)

func init() {
	statement.Register(descriptor(VersionV1, domainSeparatorV1))
	statement.Register(descriptor(VersionV2, domainSeparatorV2))
}

func descriptor(version uint8, domainSep string) statement.Descriptor {
	return statement.Descriptor{
		Type:                 StatementType,
		Version:              version,
		RequiredPublicInputs: []string{keyRoot, keyCommitment, keyCtxHash, keyDomainSep, keyMerklePath},
		DomainSeparator:      domainSep,
		Verify:               verify,
	}
}

func domainSeparatorForVersion(version uint8) (string, error) {
	switch version {
	case VersionV1:
		return domainSeparatorV1, nil
	case VersionV2:
		return domainSeparatorV2, nil
	default:
		return "", &zkerrors.BadMetadataError{Statement: StatementType, Reason: "unsupported version"}
	}
}

func encodePath(path []merkletree.PathStep) []byte {
	out := make([]byte, 0, len(path)*33)
	for _, step := range path {
		out = append(out, step.Sibling[:]...)
		if step.IsLeft {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}

func decodePath(b []byte) ([]merkletree.PathStep, error) {
	if len(b)%33 != 0 {
		return nil, &zkerrors.BadMerklePathError{Reason: "malformed path encoding"}
	}
	n := len(b) / 33
	path := make([]merkletree.PathStep, n)
	for i := 0; i < n; i++ {
		off := i * 33
		var sib merkletree.Hash
		copy(sib[:], b[off:off+32])
		path[i] = merkletree.PathStep{Sibling: sib, IsLeft: b[off+32] == 1}
	}
	return path, nil
}

// Prove assembles a membership proof: the prover's own sanity check that
// the commitment's leaf verifies against root, followed by a Schnorr PoK
// of the commitment's opening bound to ctxHash and root.
func Prove(version uint8, id, r curve.Scalar, path []merkletree.PathStep, root merkletree.Hash, params pedersen.Params, ctxHash [32]byte) (statement.ZKProof, error) {
	domainSep, err := domainSeparatorForVersion(version)
	if err != nil {
		return statement.ZKProof{}, err
	}

	commitment, err := pedersen.Commit(id, r, params)
	if err != nil {
		return statement.ZKProof{}, err
	}
	commitmentBytes, err := commitment.Bytes()
	if err != nil {
		return statement.ZKProof{}, err
	}

	leaf := merkletree.Leaf(commitmentBytes[:])
	if err := merkletree.VerifyPath(leaf, path, root, len(path)); err != nil {
		return statement.ZKProof{}, err
	}

	proof, err := schnorr.Prove(id, r, commitment, params, transcriptDomainSep(domainSep, root, ctxHash), ctxHash)
	if err != nil {
		return statement.ZKProof{}, err
	}

	aBytes, err := proof.A.Encode()
	if err != nil {
		return statement.ZKProof{}, err
	}
	cBytes := proof.C.Bytes()
	zvBytes := proof.Zv.Bytes()
	zbBytes := proof.Zb.Bytes()

	return statement.ZKProof{
		StatementType:    StatementType,
		StatementVersion: version,
		PublicInputs: map[string][]byte{
			keyRoot:       append([]byte(nil), root[:]...),
			keyCommitment: append([]byte(nil), commitmentBytes[:]...),
			keyCtxHash:    append([]byte(nil), ctxHash[:]...),
			keyDomainSep:  []byte(domainSep),
			keyMerklePath: encodePath(path),
		},
		Announcements: [][]byte{append([]byte(nil), aBytes[:]...)},
		Challenge:     append([]byte(nil), cBytes[:]...),
		Responses:     [][]byte{append([]byte(nil), zvBytes[:]...), append([]byte(nil), zbBytes[:]...)},
		ContextHash:   append([]byte(nil), ctxHash[:]...),
	}, nil
}

// transcriptDomainSep folds the advertised Merkle root into the Schnorr
// domain separator so the PoK is bound to "this commitment, in this
// tree" and not just to the commitment in isolation (spec §4.6 step 3:
// "bound to ctx_hash and root").
func transcriptDomainSep(domainSep string, root merkletree.Hash, ctxHash [32]byte) string {
	return domainSep + "|" + string(root[:]) + "|" + string(ctxHash[:])
}

func verify(proof statement.ZKProof) error {
	domainSep, err := domainSeparatorForVersion(proof.StatementVersion)
	if err != nil {
		return err
	}
	if string(proof.PublicInputs[keyDomainSep]) != domainSep {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "domain_sep mismatch"}
	}

	var root merkletree.Hash
	rootBytes := proof.PublicInputs[keyRoot]
	if len(rootBytes) != 32 {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "root must be 32 bytes"}
	}
	copy(root[:], rootBytes)

	commitmentBytes := proof.PublicInputs[keyCommitment]
	commitment, err := pedersen.CommitmentFromBytes(commitmentBytes)
	if err != nil {
		return err
	}

	var ctxHash [32]byte
	ctxBytes := proof.PublicInputs[keyCtxHash]
	if len(ctxBytes) != 32 {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "ctx_hash must be 32 bytes"}
	}
	copy(ctxHash[:], ctxBytes)

	path, err := decodePath(proof.PublicInputs[keyMerklePath])
	if err != nil {
		return err
	}

	leaf := merkletree.Leaf(commitmentBytes)
	if err := merkletree.VerifyPath(leaf, path, root, len(path)); err != nil {
		return err
	}

	if len(proof.Announcements) != 1 || len(proof.Responses) != 2 {
		return &zkerrors.BadEncodingError{Field: "membership proof shape"}
	}
	a, err := curve.DecodePoint(proof.Announcements[0])
	if err != nil {
		return err
	}
	c, err := curve.ScalarFromBytes(proof.Challenge)
	if err != nil {
		return err
	}
	zv, err := curve.ScalarFromBytes(proof.Responses[0])
	if err != nil {
		return err
	}
	zb, err := curve.ScalarFromBytes(proof.Responses[1])
	if err != nil {
		return err
	}

	params, err := pedersen.Setup()
	if err != nil {
		return err
	}

	schnorrProof := schnorr.Proof{A: a, C: c, Zv: zv, Zb: zb}
	return schnorr.Verify(schnorrProof, commitment, params, transcriptDomainSep(domainSep, root, ctxHash), ctxHash)
}
