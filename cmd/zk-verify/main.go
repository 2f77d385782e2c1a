// Command zk-verify requests one statement's proof from a peer and
// verifies it locally (spec §6).
package main

import (
	"context"
	"fmt"
	"os"

	libp2p "github.com/libp2p/go-libp2p"
	libpeer "github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/spf13/cobra"

	"github.com/weisyn/privacyzk/internal/log"
	"github.com/weisyn/privacyzk/internal/zkconfig"
	"github.com/weisyn/privacyzk/pkg/protoex"
	"github.com/weisyn/privacyzk/pkg/statement"
)

type verifyFlags struct {
	peer        string
	statement   string
	assetsDir   string
	timeoutSecs int
	requireReal bool
}

var flags verifyFlags

var rootCmd = &cobra.Command{
	Use:   "zk-verify",
	Short: "Request and verify one privacyzk statement proof from a peer",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flags.peer, "peer", "", "multiaddr of the server to query (required)")
	rootCmd.Flags().StringVar(&flags.statement, "statement", "", "membership|continuity|unlinkability (required)")
	rootCmd.Flags().StringVar(&flags.assetsDir, "assets-dir", "", "root of the pre-generated circuit assets")
	rootCmd.Flags().IntVar(&flags.timeoutSecs, "timeout", 0, "seconds to wait (default from ZK_TIMEOUT or 120)")
	rootCmd.Flags().BoolVar(&flags.requireReal, "require-real", false, "refuse a simulated (sigma) proof instead of downgrading")
}

func run(cmd *cobra.Command, args []string) error {
	if flags.peer == "" || flags.statement == "" {
		return badUsage{fmt.Errorf("--peer and --statement are required")}
	}
	switch flags.statement {
	case protoex.StatementMembership, protoex.StatementContinuity, protoex.StatementUnlinkability:
	default:
		return badUsage{fmt.Errorf("--statement must be membership|continuity|unlinkability, got %q", flags.statement)}
	}

	cfg := zkconfig.FromEnv()
	cfg.ApplyAssetsDir(flags.assetsDir, cmd.Flags().Changed("assets-dir"))
	cfg.ApplyTimeoutSeconds(flags.timeoutSecs, cmd.Flags().Changed("timeout"))

	logger := log.NewFromEnv()
	defer logger.Sync()

	addrInfo, err := parsePeerMultiaddr(flags.peer)
	if err != nil {
		return badUsage{err}
	}

	host, err := libp2p.New(libp2p.NoListenAddrs)
	if err != nil {
		return protocolError{fmt.Errorf("starting libp2p host: %w", err)}
	}
	defer host.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := host.Connect(ctx, *addrInfo); err != nil {
		return protocolError{fmt.Errorf("connecting to peer: %w", err)}
	}

	client := protoex.NewClient(host, logger)
	outcomes, err := client.Request(ctx, addrInfo.ID, protoex.ClientOptions{
		Statement:     flags.statement,
		SchemaVersion: 2,
		Depth:         16,
		Timeout:       cfg.Timeout,
		RequireReal:   flags.requireReal,
	})
	if err != nil {
		return protocolError{err}
	}
	if len(outcomes) != 1 {
		return protocolError{fmt.Errorf("expected exactly one outcome, got %d", len(outcomes))}
	}

	outcome := outcomes[0]
	switch outcome.Status {
	case protoex.StatusOK:
	default:
		fmt.Printf("%s: %s\n", outcome.Statement, outcome.Status)
		return verificationFailure{fmt.Errorf("%s", outcome.Status)}
	}

	if outcome.Mode == protoex.ModeSigma {
		proof, err := statement.DecodeZKProof(outcome.ProofCBOR)
		if err != nil {
			return protocolError{err}
		}
		if err := statement.VerifyProof(proof); err != nil {
			fmt.Printf("%s: FAIL(%v)\n", outcome.Statement, err)
			return verificationFailure{err}
		}
	}

	fallbackNote := ""
	if outcome.Fallback {
		fallbackNote = " FALLBACK"
	}
	fmt.Printf("%s: OK%s\n", outcome.Statement, fallbackNote)
	return nil
}

func parsePeerMultiaddr(s string) (*libpeer.AddrInfo, error) {
	addr, err := ma.NewMultiaddr(s)
	if err != nil {
		return nil, fmt.Errorf("bad multiaddr: %w", err)
	}
	info, err := libpeer.AddrInfoFromP2pAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("bad peer multiaddr: %w", err)
	}
	return info, nil
}

// badUsage, protocolError, and verificationFailure tag an error with the
// exit code it maps to per spec §6: 3 bad usage, 2 protocol/timeout, 1
// verification failure.
type badUsage struct{ err error }

func (b badUsage) Error() string { return b.err.Error() }

type protocolError struct{ err error }

func (p protocolError) Error() string { return p.err.Error() }

type verificationFailure struct{ err error }

func (v verificationFailure) Error() string { return v.err.Error() }

func exitCodeFor(err error) int {
	switch err.(type) {
	case nil:
		return 0
	case verificationFailure:
		return 1
	case protocolError:
		return 2
	case badUsage:
		return 3
	default:
		return 2
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zk-verify: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}
