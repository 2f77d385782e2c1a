// Package continuity implements the identity-continuity statement
// (spec §4.8): the prover shows two commitments made at different times
// hide the same identity scalar, without revealing it, via a
// Chaum-Pedersen equality proof.
package continuity

import (
	"github.com/weisyn/privacyzk/pkg/chaumpedersen"
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

const (
	StatementType = "identity_continuity"

	VersionV1 uint8 = 1
	VersionV2 uint8 = 2

	domainSeparatorV1 = "IDENTITY_CONTINUITY_V1"
	domainSeparatorV2 = "IDENTITY_CONTINUITY_V2"
)

const (
	keyCommitment1 = "commitment_1"
	keyCommitment2 = "commitment_2"
	keyCtxHash     = "ctx_hash"
	keyDomainSep   = "domain_sep"
)

func init() {
	statement.Register(descriptor(VersionV1, domainSeparatorV1))
	statement.Register(descriptor(VersionV2, domainSeparatorV2))
}

func descriptor(version uint8, domainSep string) statement.Descriptor {
	return statement.Descriptor{
		Type:                 StatementType,
		Version:              version,
		RequiredPublicInputs: []string{keyCommitment1, keyCommitment2, keyCtxHash, keyDomainSep},
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

// Prove commits to the same identity scalar twice under independent
// blindings and proves, via Chaum-Pedersen equality, that both
// commitments hide the same value.
func Prove(version uint8, id, r1, r2 curve.Scalar, params pedersen.Params, ctxHash [32]byte) (statement.ZKProof, error) {
	domainSep, err := domainSeparatorForVersion(version)
	if err != nil {
		return statement.ZKProof{}, err
	}

	c1, err := pedersen.Commit(id, r1, params)
	if err != nil {
		return statement.ZKProof{}, err
	}
	c2, err := pedersen.Commit(id, r2, params)
	if err != nil {
		return statement.ZKProof{}, err
	}
	c1Bytes, err := c1.Bytes()
	if err != nil {
		return statement.ZKProof{}, err
	}
	c2Bytes, err := c2.Bytes()
	if err != nil {
		return statement.ZKProof{}, err
	}

	proof, err := chaumpedersen.Prove(id, r1, r2, c1, c2, params, domainSep, ctxHash)
	if err != nil {
		return statement.ZKProof{}, err
	}

	a1Bytes, err := proof.A1.Encode()
	if err != nil {
		return statement.ZKProof{}, err
	}
	a2Bytes, err := proof.A2.Encode()
	if err != nil {
		return statement.ZKProof{}, err
	}
	cBytes := proof.C.Bytes()
	zIDBytes := proof.ZId.Bytes()
	z1Bytes := proof.Z1.Bytes()
	z2Bytes := proof.Z2.Bytes()

	return statement.ZKProof{
		StatementType:    StatementType,
		StatementVersion: version,
		PublicInputs: map[string][]byte{
			keyCommitment1: append([]byte(nil), c1Bytes[:]...),
			keyCommitment2: append([]byte(nil), c2Bytes[:]...),
			keyCtxHash:     append([]byte(nil), ctxHash[:]...),
			keyDomainSep:   []byte(domainSep),
		},
		Announcements: [][]byte{
			append([]byte(nil), a1Bytes[:]...),
			append([]byte(nil), a2Bytes[:]...),
		},
		Challenge: append([]byte(nil), cBytes[:]...),
		Responses: [][]byte{
			append([]byte(nil), zIDBytes[:]...),
			append([]byte(nil), z1Bytes[:]...),
			append([]byte(nil), z2Bytes[:]...),
		},
		ContextHash: append([]byte(nil), ctxHash[:]...),
	}, nil
}

func verify(proof statement.ZKProof) error {
	domainSep, err := domainSeparatorForVersion(proof.StatementVersion)
	if err != nil {
		return err
	}
	if string(proof.PublicInputs[keyDomainSep]) != domainSep {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "domain_sep mismatch"}
	}

	c1, err := pedersen.CommitmentFromBytes(proof.PublicInputs[keyCommitment1])
	if err != nil {
		return err
	}
	c2, err := pedersen.CommitmentFromBytes(proof.PublicInputs[keyCommitment2])
	if err != nil {
		return err
	}

	var ctxHash [32]byte
	ctxBytes := proof.PublicInputs[keyCtxHash]
	if len(ctxBytes) != 32 {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "ctx_hash must be 32 bytes"}
	}
	copy(ctxHash[:], ctxBytes)

	if len(proof.Announcements) != 2 || len(proof.Responses) != 3 {
		return &zkerrors.BadEncodingError{Field: "continuity proof shape"}
	}
	a1, err := curve.DecodePoint(proof.Announcements[0])
	if err != nil {
		return err
	}
	a2, err := curve.DecodePoint(proof.Announcements[1])
	if err != nil {
		return err
	}
	c, err := curve.ScalarFromBytes(proof.Challenge)
	if err != nil {
		return err
	}
	zID, err := curve.ScalarFromBytes(proof.Responses[0])
	if err != nil {
		return err
	}
	z1, err := curve.ScalarFromBytes(proof.Responses[1])
	if err != nil {
		return err
	}
	z2, err := curve.ScalarFromBytes(proof.Responses[2])
	if err != nil {
		return err
	}

	params, err := pedersen.Setup()
	if err != nil {
		return err
	}

	cpProof := chaumpedersen.Proof{A1: a1, A2: a2, C: c, ZId: zID, Z1: z1, Z2: z2}
	return chaumpedersen.Verify(cpProof, c1, c2, params, domainSep, ctxHash)
}
