package protoex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	lphost "github.com/libp2p/go-libp2p/core/host"
	libnetwork "github.com/libp2p/go-libp2p/core/network"
	libprotocol "github.com/libp2p/go-libp2p/core/protocol"

	"github.com/weisyn/privacyzk/internal/log"
	"github.com/weisyn/privacyzk/pkg/assets"
	"github.com/weisyn/privacyzk/pkg/curve"
	"github.com/weisyn/privacyzk/pkg/merkletree"
	"github.com/weisyn/privacyzk/pkg/pedersen"
	"github.com/weisyn/privacyzk/pkg/statement"
	"github.com/weisyn/privacyzk/pkg/statement/continuity"
	"github.com/weisyn/privacyzk/pkg/statement/membership"
	"github.com/weisyn/privacyzk/pkg/statement/unlinkability"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// ProveMode selects whether the server forwards pre-generated circuit
// artifacts or runs the in-process Sigma prover (spec §4.9).
type ProveMode string

const (
	ProveModeReal  ProveMode = "real"
	ProveModeSigma ProveMode = "sigma"
)

// fixedOrder is the statement dispatch order the server always honors,
// regardless of completion order (spec §4.9 step 2, §5 ordering
// guarantees).
var fixedOrder = []string{StatementMembership, StatementContinuity, StatementUnlinkability}

var realAssetFiles = map[string][3]string{
	StatementMembership:    {"membership_vk.bin", "public_inputs.bin", "membership_proof.bin"},
	StatementContinuity:    {"continuity_vk.bin", "continuity_public_inputs.bin", "continuity_proof.bin"},
	StatementUnlinkability: {"unlinkability_vk.bin", "unlinkability_public_inputs.bin", "unlinkability_proof.bin"},
}

// Server answers ProofRequest frames over the proof-exchange protocol.
// In sigma mode it proves statements about the requesting peer's
// identity; in real mode it forwards the asset store's pre-generated
// artifacts.
type Server struct {
	host    lphost.Host
	mode    ProveMode
	loader  *assets.Loader
	params  pedersen.Params
	logger  log.Logger
	metrics *Metrics
}

// NewServer wires the protocol handler onto host and returns the Server.
// loader may be nil when mode is ProveModeSigma, since sigma mode never
// touches the asset store.
func NewServer(host lphost.Host, mode ProveMode, loader *assets.Loader, logger log.Logger, metrics *Metrics) (*Server, error) {
	params, err := pedersen.Setup()
	if err != nil {
		return nil, err
	}
	s := &Server{host: host, mode: mode, loader: loader, params: params, logger: logger, metrics: metrics}
	host.SetStreamHandler(libprotocol.ID(ProtocolID), s.handleStream)
	return s, nil
}

func (s *Server) handleStream(stream libnetwork.Stream) {
	defer stream.Close()
	requestID := uuid.NewString()
	peerID := stream.Conn().RemotePeer().String()
	logger := s.logger.With("request_id", requestID, "peer", peerID)

	ctx := context.Background()
	if err := s.serve(ctx, stream, peerID, logger); err != nil {
		logger.Warnf("protoex.serve failed: %v", err)
	}
}

// serve drives one request/response exchange over rw. It takes an
// io.ReadWriter, not the concrete libp2p stream type, so it can be
// exercised directly in tests over an in-memory pipe.
func (s *Server) serve(ctx context.Context, rw io.ReadWriter, peerID string, logger log.Logger) error {
	kind, body, err := readFrame(rw)
	if err != nil {
		return err
	}
	if kind != kindRequest {
		return fmt.Errorf("protoex: expected request frame, got %q", kind)
	}
	var req ProofRequest
	if err := decodeBody(body, &req); err != nil {
		return err
	}

	if req.DeadlineMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.DeadlineMs)*time.Millisecond)
		defer cancel()
	}

	list, err := statementsFor(req.Statement)
	if err != nil {
		_ = writeProofResponse(rw, ProofResponse{StatementTag: req.Statement, Status: StatusFailed, Error: err.Error()})
		return writeEndOfBatch(rw)
	}

	results := make([]chan ProofResponse, len(list))
	for i := range results {
		results[i] = make(chan ProofResponse, 1)
	}
	for i, st := range list {
		go func(i int, st string) {
			results[i] <- s.prove(ctx, st, req, peerID)
		}(i, st)
	}

	for i := range results {
		select {
		case resp := <-results[i]:
			if err := writeProofResponse(rw, resp); err != nil {
				return err
			}
		case <-ctx.Done():
			_ = writeProofResponse(rw, ProofResponse{StatementTag: list[i], Status: StatusFailed, Error: (&zkerrors.TimeoutError{Stage: "prove"}).Error()})
		}
	}
	return writeEndOfBatch(rw)
}

func statementsFor(requested string) ([]string, error) {
	switch requested {
	case StatementAll:
		return fixedOrder, nil
	case StatementMembership, StatementContinuity, StatementUnlinkability:
		return []string{requested}, nil
	default:
		return nil, &zkerrors.BadMetadataError{Statement: requested, Reason: "unrecognized statement tag"}
	}
}

func (s *Server) prove(ctx context.Context, st string, req ProofRequest, peerID string) ProofResponse {
	start := time.Now()
	tag := fmt.Sprintf("%s_v%d", st, req.SchemaVersion)

	var resp ProofResponse
	if s.mode == ProveModeReal {
		resp = s.proveReal(st, tag, req)
	} else {
		resp = s.proveSigma(st, tag, req, peerID)
	}

	if s.metrics != nil {
		s.metrics.observe(st, resp.Status, time.Since(start).Seconds())
	}
	return resp
}

func (s *Server) proveReal(st, tag string, req ProofRequest) ProofResponse {
	names, ok := realAssetFiles[st]
	if !ok {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: "unknown statement"}
	}
	if s.loader == nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: "asset loader not configured"}
	}

	vk, err := s.loader.Load(st, req.SchemaVersion, req.Depth, names[0])
	if notAvail, ok := zkerrors.IsNotAvailable(err); ok {
		return ProofResponse{StatementTag: tag, Status: StatusNotAvailable, Error: notAvail.Error()}
	} else if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}
	publicInputs, err := s.loader.Load(st, req.SchemaVersion, req.Depth, names[1])
	if notAvail, ok := zkerrors.IsNotAvailable(err); ok {
		return ProofResponse{StatementTag: tag, Status: StatusNotAvailable, Error: notAvail.Error()}
	} else if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}
	proofBytes, err := s.loader.Load(st, req.SchemaVersion, req.Depth, names[2])
	if notAvail, ok := zkerrors.IsNotAvailable(err); ok {
		return ProofResponse{StatementTag: tag, Status: StatusNotAvailable, Error: notAvail.Error()}
	} else if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}

	bundle := RealBundle{VerificationKey: vk, PublicInputs: publicInputs, Proof: proofBytes}
	bundleBytes, err := canonicalEncMode.Marshal(bundle)
	if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}
	return ProofResponse{StatementTag: tag, Status: StatusOK, Mode: ModeReal, ProofCBOR: bundleBytes}
}

func (s *Server) proveSigma(st, tag string, req ProofRequest, peerID string) ProofResponse {
	ctxHash := statement.Context{
		PeerID:    peerID,
		SessionID: fmt.Sprintf("%x", req.Nonce),
		Timestamp: uint64(time.Now().Unix()),
	}.Hash()

	id := statement.IdentityScalar(peerID)

	var (
		proof statement.ZKProof
		err   error
	)
	switch st {
	case StatementMembership:
		proof, err = s.proveMembershipSigma(id, req.Depth, ctxHash)
	case StatementContinuity:
		r1, rErr := curve.RandomScalar()
		if rErr != nil {
			err = rErr
			break
		}
		r2, rErr := curve.RandomScalar()
		if rErr != nil {
			err = rErr
			break
		}
		proof, err = continuity.Prove(continuity.VersionV2, id, r1, r2, s.params, ctxHash)
	case StatementUnlinkability:
		r, rErr := curve.RandomScalar()
		if rErr != nil {
			err = rErr
			break
		}
		proof, err = unlinkability.Prove(unlinkability.VersionV2, id, r, s.params, ctxHash)
	default:
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: "unknown statement"}
	}

	if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}

	proofBytes, err := proof.Encode()
	if err != nil {
		return ProofResponse{StatementTag: tag, Status: StatusFailed, Error: err.Error()}
	}
	return ProofResponse{StatementTag: tag, Status: StatusOK, Mode: ModeSigma, ProofCBOR: proofBytes}
}

func (s *Server) proveMembershipSigma(id curve.Scalar, depth uint8, ctxHash [32]byte) (statement.ZKProof, error) {
	r, err := curve.RandomScalar()
	if err != nil {
		return statement.ZKProof{}, err
	}
	commitment, err := pedersen.Commit(id, r, s.params)
	if err != nil {
		return statement.ZKProof{}, err
	}
	commitmentBytes, err := commitment.Bytes()
	if err != nil {
		return statement.ZKProof{}, err
	}
	leaf := merkletree.Leaf(commitmentBytes[:])
	tree, paths, err := merkletree.Build(int(depth), []merkletree.Hash{leaf})
	if err != nil {
		return statement.ZKProof{}, err
	}
	return membership.Prove(membership.VersionV2, id, r, paths[0], tree.Root(), s.params, ctxHash)
}

func decodeBody(body []byte, out interface{}) error {
	if err := cbor.Unmarshal(body, out); err != nil {
		return &zkerrors.BadEncodingError{Field: "frame body", Err: err}
	}
	return nil
}
