// Package unlinkability implements the session-unlinkability statement
// (spec §4.7): the prover derives a per-session tag from a fresh
// commitment and proves knowledge of that commitment's opening, so two
// sessions from the same peer produce unlinkable tags.
package unlinkability

import (
	"crypto/sha256"

	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/schnorr"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

const (
	StatementType = "session_unlinkability"

	VersionV1 uint8 = 1
	VersionV2 uint8 = 2

	domainSeparatorV1 = "SESSION_UNLINKABILITY_V1"
	domainSeparatorV2 = "SESSION_UNLINKABILITY_V2"

	tagDomainTag = "SESSION_UNLINKABILITY_TAG_V1"
)

const (
	keyTag        = "tag"
	keyCommitment = "commitment"
	keyCtxHash    = "ctx_hash"
	keyDomainSep  = "domain_sep"
)

func init() {
	statement.Register(descriptor(VersionV1, domainSeparatorV1))
	statement.Register(descriptor(VersionV2, domainSeparatorV2))
}

func descriptor(version uint8, domainSep string) statement.Descriptor {
	return statement.Descriptor{
		Type:                 StatementType,
		Version:              version,
		RequiredPublicInputs: []string{keyTag, keyCommitment, keyCtxHash, keyDomainSep},
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

// deriveTag computes tag = SHA256(TAG_DOMAIN || ctx_hash || commitment).
// The tag is a public, deterministic function of the commitment and
// context: it links proofs within one session while remaining
// unlinkable to any other session's tag, since a fresh commitment is
// used per session.
func deriveTag(ctxHash [32]byte, commitmentBytes []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(tagDomainTag))
	h.Write(ctxHash[:])
	h.Write(commitmentBytes)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Prove derives the session tag and a Schnorr PoK of the commitment's
// opening, bound to ctxHash and the tag itself.
func Prove(version uint8, id, r curve.Scalar, params pedersen.Params, ctxHash [32]byte) (statement.ZKProof, error) {
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

	tag := deriveTag(ctxHash, commitmentBytes[:])

	proof, err := schnorr.Prove(id, r, commitment, params, transcriptDomainSep(domainSep, tag), ctxHash)
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
			keyTag:        append([]byte(nil), tag[:]...),
			keyCommitment: append([]byte(nil), commitmentBytes[:]...),
			keyCtxHash:    append([]byte(nil), ctxHash[:]...),
			keyDomainSep:  []byte(domainSep),
		},
		Announcements: [][]byte{append([]byte(nil), aBytes[:]...)},
		Challenge:     append([]byte(nil), cBytes[:]...),
		Responses:     [][]byte{append([]byte(nil), zvBytes[:]...), append([]byte(nil), zbBytes[:]...)},
		ContextHash:   append([]byte(nil), ctxHash[:]...),
	}, nil
}

func transcriptDomainSep(domainSep string, tag [32]byte) string {
	return domainSep + "|" + string(tag[:])
}

func verify(proof statement.ZKProof) error {
	domainSep, err := domainSeparatorForVersion(proof.StatementVersion)
	if err != nil {
		return err
	}
	if string(proof.PublicInputs[keyDomainSep]) != domainSep {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "domain_sep mismatch"}
	}

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

	claimedTag := proof.PublicInputs[keyTag]
	if len(claimedTag) != 32 {
		return &zkerrors.BadMetadataError{Statement: StatementType, Reason: "tag must be 32 bytes"}
	}
	expectedTag := deriveTag(ctxHash, commitmentBytes)
	if string(claimedTag) != string(expectedTag[:]) {
		return &zkerrors.TagMismatchError{}
	}

	if len(proof.Announcements) != 1 || len(proof.Responses) != 2 {
		return &zkerrors.BadEncodingError{Field: "unlinkability proof shape"}
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
	return schnorr.Verify(schnorrProof, commitment, params, transcriptDomainSep(domainSep, expectedTag), ctxHash)
}
