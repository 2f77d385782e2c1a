// Package protoex implements the proof-exchange wire protocol (spec
// §4.9): a length-prefixed canonical-CBOR frame stream carried over a
// single libp2p bidirectional stream at protocol id "/privacyzk/1.0.0".
package protoex

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// ProtocolID is the single logical protocol identifier the server offers.
const ProtocolID = "/privacyzk/1.0.0"

// MaxFrameBytes bounds a single frame body; oversize frames close the
// stream rather than being buffered.
const MaxFrameBytes = 1 << 20

// Statement tags accepted in a ProofRequest.
const (
	StatementMembership    = "membership"
	StatementContinuity    = "continuity"
	StatementUnlinkability = "unlinkability"
	StatementAll           = "all"
)

// Response status values.
const (
	StatusOK           = "OK"
	StatusNotAvailable = "NOT_AVAILABLE"
	StatusFailed       = "FAILED"
)

// Prove-mode tags surfaced on a response so the client can tell whether
// it received a real circuit artifact or a locally simulated one.
const (
	ModeReal  = "real"
	ModeSigma = "sigma"
)

// frameKinds tag the envelope so one length-prefixed stream can carry
// three distinct body shapes.
const (
	kindRequest    = "request"
	kindResponse   = "response"
	kindEndOfBatch = "end"
)

// ProofRequest is the client's opening frame.
type ProofRequest struct {
	Statement     string `cbor:"statement"`
	SchemaVersion uint8  `cbor:"schema_version"`
	Depth         uint8  `cbor:"depth"`
	Nonce         []byte `cbor:"nonce"`
	DeadlineMs    uint32 `cbor:"deadline_ms"`
}

// ProofResponse carries one statement's outcome.
type ProofResponse struct {
	StatementTag string `cbor:"statement_tag"`
	Status       string `cbor:"status"`
	Mode         string `cbor:"mode,omitempty"`
	ProofCBOR    []byte `cbor:"proof_cbor,omitempty"`
	Error        string `cbor:"error,omitempty"`
}

// EndOfBatch terminates the exchange.
type EndOfBatch struct{}

// RealBundle is the payload of a real-mode ProofResponse: the
// pre-generated circuit artifacts forwarded verbatim from the asset
// store.
type RealBundle struct {
	VerificationKey []byte `cbor:"vk"`
	PublicInputs    []byte `cbor:"public_inputs"`
	Proof           []byte `cbor:"proof"`
}

type envelope struct {
	Kind string `cbor:"kind"`
	Body []byte `cbor:"body"`
}

var canonicalEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("protoex: building canonical CBOR encode mode: " + err.Error())
	}
	return em
}()

func writeFrame(w io.Writer, kind string, body interface{}) error {
	bodyBytes, err := canonicalEncMode.Marshal(body)
	if err != nil {
		return &zkerrors.BadEncodingError{Field: "frame body", Err: err}
	}
	env := envelope{Kind: kind, Body: bodyBytes}
	envBytes, err := canonicalEncMode.Marshal(env)
	if err != nil {
		return &zkerrors.BadEncodingError{Field: "frame envelope", Err: err}
	}
	if len(envBytes) > MaxFrameBytes {
		return &zkerrors.BadEncodingError{Field: "frame", Err: fmt.Errorf("frame of %d bytes exceeds max %d", len(envBytes), MaxFrameBytes)}
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(envBytes)))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err = w.Write(envBytes)
	return err
}

// readFrame reads one length-prefixed frame and returns its kind and raw
// body bytes for the caller to unmarshal into the concrete type it
// expects. io.EOF signals a clean stream close.
func readFrame(r io.Reader) (kind string, body []byte, err error) {
	var lenPrefix [4]byte
	if _, err = io.ReadFull(r, lenPrefix[:]); err != nil {
		return "", nil, err
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n > MaxFrameBytes {
		return "", nil, &zkerrors.BadEncodingError{Field: "frame", Err: fmt.Errorf("advertised frame of %d bytes exceeds max %d", n, MaxFrameBytes)}
	}

	envBytes := make([]byte, n)
	if _, err = io.ReadFull(r, envBytes); err != nil {
		return "", nil, err
	}

	var env envelope
	if err = cbor.Unmarshal(envBytes, &env); err != nil {
		return "", nil, &zkerrors.BadEncodingError{Field: "frame envelope", Err: err}
	}
	return env.Kind, env.Body, nil
}

func writeProofRequest(w io.Writer, req ProofRequest) error {
	encoded, err := canonicalEncMode.Marshal(req)
	if err != nil {
		return &zkerrors.BadEncodingError{Field: "request", Err: err}
	}
	if err := checkRequestSize(encoded); err != nil {
		return err
	}
	return writeFrame(w, kindRequest, req)
}

func writeProofResponse(w io.Writer, resp ProofResponse) error {
	encoded, err := canonicalEncMode.Marshal(resp)
	if err != nil {
		return &zkerrors.BadEncodingError{Field: "response", Err: err}
	}
	if err := checkResponseSize(resp, encoded); err != nil {
		return err
	}
	return writeFrame(w, kindResponse, resp)
}

func writeEndOfBatch(w io.Writer) error {
	return writeFrame(w, kindEndOfBatch, EndOfBatch{})
}
