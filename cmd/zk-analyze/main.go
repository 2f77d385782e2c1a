// Command zk-analyze drives the full privacy-analysis demo against a
// peer: membership, continuity, and unlinkability in one request (spec
// §6). The "all" path gates on every statement returning OK with no
// fallback marker.
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

type analyzeFlags struct {
	zkPeer      string
	zkStatement string
	zkTimeout   int
	zkAssetsDir string
}

var flags analyzeFlags

var rootCmd = &cobra.Command{
	Use:   "zk-analyze",
	Short: "Run the privacy-analysis demo against a peer over the proof-exchange protocol",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flags.zkPeer, "zk-peer", "", "multiaddr of the server to query (required)")
	rootCmd.Flags().StringVar(&flags.zkStatement, "zk-statement", protoex.StatementAll, "membership|continuity|unlinkability|all")
	rootCmd.Flags().IntVar(&flags.zkTimeout, "zk-timeout", 0, "seconds to wait (default from ZK_TIMEOUT or 120)")
	rootCmd.Flags().StringVar(&flags.zkAssetsDir, "zk-assets-dir", "", "root of the pre-generated circuit assets")
}

func run(cmd *cobra.Command, args []string) error {
	if flags.zkPeer == "" {
		return badUsage{fmt.Errorf("--zk-peer is required")}
	}

	cfg := zkconfig.FromEnv()
	cfg.ApplyAssetsDir(flags.zkAssetsDir, cmd.Flags().Changed("zk-assets-dir"))
	cfg.ApplyTimeoutSeconds(flags.zkTimeout, cmd.Flags().Changed("zk-timeout"))

	logger := log.NewFromEnv()
	defer logger.Sync()

	addr, err := ma.NewMultiaddr(flags.zkPeer)
	if err != nil {
		return badUsage{fmt.Errorf("bad multiaddr: %w", err)}
	}
	addrInfo, err := libpeer.AddrInfoFromP2pAddr(addr)
	if err != nil {
		return badUsage{fmt.Errorf("bad peer multiaddr: %w", err)}
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
		Statement:     flags.zkStatement,
		SchemaVersion: 2,
		Depth:         16,
		Timeout:       cfg.Timeout,
	})
	if err != nil {
		return protocolError{err}
	}

	allOK := len(outcomes) > 0
	anyFallback := false
	anyFail := false
	for _, o := range outcomes {
		status := o.Status
		if o.Status == protoex.StatusOK && o.Mode == protoex.ModeSigma {
			if proof, decErr := statement.DecodeZKProof(o.ProofCBOR); decErr == nil {
				if verErr := statement.VerifyProof(proof); verErr != nil {
					status = fmt.Sprintf("FAIL(%v)", verErr)
				}
			}
		}
		fmt.Printf("%s: %s\n", o.Statement, status)

		if status != protoex.StatusOK {
			allOK = false
			anyFail = true
		}
		if o.Fallback {
			anyFallback = true
		}
	}

	if anyFallback {
		fmt.Println("NOTE: one or more statements used a simulated (FALLBACK) proof")
	}

	demoStatusOK := allOK && !anyFallback
	fmt.Printf("demo-status: %v\n", demoStatusOK)

	if anyFail {
		return verificationFailure{fmt.Errorf("one or more statements failed")}
	}
	return nil
}

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
		fmt.Fprintf(os.Stderr, "zk-analyze: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}
