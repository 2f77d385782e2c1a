package protoex

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	lphost "github.com/libp2p/go-libp2p/core/host"
	libpeer "github.com/libp2p/go-libp2p/core/peer"
	libprotocol "github.com/libp2p/go-libp2p/core/protocol"

	"github.com/weisyn/privacyzk/internal/log"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// DefaultClientTimeout is T_total (spec §4.9).
const DefaultClientTimeout = 120 * time.Second

// Outcome summarizes one statement's result the way spec §6's
// "client summarizes per-statement outcomes" requires.
type Outcome struct {
	Statement string
	Status    string // OK | FAIL(reason) | UNAVAILABLE
	Mode      string
	Fallback  bool
	ProofCBOR []byte
}

// ClientOptions configures one proof request.
type ClientOptions struct {
	Statement     string
	SchemaVersion uint8
	Depth         uint8
	Timeout       time.Duration
	RequireReal   bool
}

// Client issues ProofRequests over the proof-exchange protocol.
type Client struct {
	host   lphost.Host
	logger log.Logger
}

// NewClient wraps a libp2p host for making proof-exchange requests.
func NewClient(host lphost.Host, logger log.Logger) *Client {
	return &Client{host: host, logger: logger}
}

// Request opens a stream to peer, sends one ProofRequest, and collects
// outcomes until EndOfBatch or a timeout. No retries are attempted on
// the same connection (spec §4.9 client policy).
func (c *Client) Request(ctx context.Context, peer libpeer.ID, opts ClientOptions) ([]Outcome, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stream, err := c.host.NewStream(ctx, peer, libprotocol.ID(ProtocolID))
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	deadlineMs := uint32(timeout / time.Millisecond)
	req := ProofRequest{
		Statement:     opts.Statement,
		SchemaVersion: opts.SchemaVersion,
		Depth:         opts.Depth,
		Nonce:         nonce,
		DeadlineMs:    deadlineMs,
	}
	if err := writeProofRequest(stream, req); err != nil {
		return nil, err
	}

	return c.collect(stream, opts.RequireReal)
}

// collect reads frames until EndOfBatch. Deadline enforcement is the
// stream's own SetDeadline (set in Request), not a goroutine race, so a
// timed-out read returns a plain net.Error here.
func (c *Client) collect(stream io.Reader, requireReal bool) ([]Outcome, error) {
	var outcomes []Outcome
	for {
		kind, body, err := readFrame(stream)
		if err != nil {
			if err == io.EOF {
				return outcomes, &zkerrors.PeerClosedError{Stage: "client_collect"}
			}
			if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
				return outcomes, &zkerrors.TimeoutError{Stage: "client_collect"}
			}
			return outcomes, err
		}
		switch kind {
		case kindEndOfBatch:
			return outcomes, nil
		case kindResponse:
			var resp ProofResponse
			if err := decodeBody(body, &resp); err != nil {
				return outcomes, err
			}
			outcomes = append(outcomes, c.toOutcome(resp, requireReal))
		default:
			return outcomes, fmt.Errorf("protoex: unexpected frame kind %q", kind)
		}
	}
}

func (c *Client) toOutcome(resp ProofResponse, requireReal bool) Outcome {
	o := Outcome{Statement: resp.StatementTag, Mode: resp.Mode, ProofCBOR: resp.ProofCBOR}
	switch resp.Status {
	case StatusOK:
		if requireReal && resp.Mode != ModeReal {
			o.Status = "FAIL(downgrade not permitted under require-real)"
			return o
		}
		o.Status = StatusOK
		o.Fallback = resp.Mode == ModeSigma
	case StatusNotAvailable:
		o.Status = "UNAVAILABLE"
	default:
		o.Status = fmt.Sprintf("FAIL(%s)", resp.Error)
	}
	return o
}
