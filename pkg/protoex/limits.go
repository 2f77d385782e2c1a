package protoex

import (
	"strconv"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// Per-message size budgets, named constants carried forward from
// `network/privacyzk/constants.py`/`messages.py`'s tighter per-field
// limits (spec.md's 1 MiB `MaxFrameBytes` is the outer frame ceiling;
// these are the inner, per-message budgets checked before a frame is
// ever written).
const (
	// RequestMaxBytes bounds one encoded ProofRequest body.
	RequestMaxBytes = 8192
	// MaxProofBytes is the proof share of a ProofResponse's ProofCBOR
	// budget. It is not checked on its own: checkResponseSize bounds
	// ProofCBOR by MaxProofBytes+MaxPublicInputsBytes.
	MaxProofBytes = 4096
	// MaxPublicInputsBytes is the public-inputs share of the same
	// combined ProofCBOR budget; it is not checked on its own either.
	MaxPublicInputsBytes = 65536
	// responseOverheadBytes budgets the non-payload fields of a
	// ProofResponse (tags, status, CBOR map overhead).
	responseOverheadBytes = 2048
	// ResponseMaxBytes bounds one encoded ProofResponse body.
	ResponseMaxBytes = MaxPublicInputsBytes + MaxProofBytes + responseOverheadBytes
)

func checkRequestSize(encoded []byte) error {
	if len(encoded) > RequestMaxBytes {
		return &zkerrors.BadEncodingError{Field: "request", Err: errSizeLimit(len(encoded), RequestMaxBytes)}
	}
	return nil
}

func checkResponseSize(resp ProofResponse, encoded []byte) error {
	if len(resp.ProofCBOR) > MaxProofBytes+MaxPublicInputsBytes {
		return &zkerrors.BadEncodingError{Field: "response.proof_cbor", Err: errSizeLimit(len(resp.ProofCBOR), MaxProofBytes+MaxPublicInputsBytes)}
	}
	if len(encoded) > ResponseMaxBytes {
		return &zkerrors.BadEncodingError{Field: "response", Err: errSizeLimit(len(encoded), ResponseMaxBytes)}
	}
	return nil
}

func errSizeLimit(got, max int) error {
	return sizeLimitError{got: got, max: max}
}

type sizeLimitError struct{ got, max int }

func (e sizeLimitError) Error() string {
	return "exceeds size limit: " + strconv.Itoa(e.got) + " > " + strconv.Itoa(e.max)
}
