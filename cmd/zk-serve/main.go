// Command zk-serve runs the proof-exchange server (spec §6): it offers
// "/privacyzk/1.0.0" over a libp2p host and answers ProofRequest frames
// in either prove-mode "real" (forwarding pre-generated circuit
// artifacts) or "sigma" (running the in-process Sigma prover).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	libp2p "github.com/libp2p/go-libp2p"
	"github.com/spf13/cobra"

	"github.com/weisyn/privacyzk/internal/log"
	"github.com/weisyn/privacyzk/internal/zkconfig"
	"github.com/weisyn/privacyzk/pkg/assets"
	"github.com/weisyn/privacyzk/pkg/protoex"
)

// serveFlags holds this command's flag values.
type serveFlags struct {
	listenAddr string
	proveMode  string
	assetsDir  string
}

var flags serveFlags

var rootCmd = &cobra.Command{
	Use:   "zk-serve",
	Short: "Serve the privacyzk proof-exchange protocol over libp2p",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flags.listenAddr, "listen-addr", "/ip4/0.0.0.0/tcp/0", "multiaddr to listen on")
	rootCmd.Flags().StringVar(&flags.proveMode, "prove-mode", "sigma", "prove mode: real|sigma")
	rootCmd.Flags().StringVar(&flags.assetsDir, "assets-dir", "", "root of the pre-generated circuit assets (defaults to ASSETS_DIR or "+zkconfig.DefaultAssetsDir)
}

func run(cmd *cobra.Command, args []string) error {
	cfg := zkconfig.FromEnv()
	cfg.ApplyAssetsDir(flags.assetsDir, cmd.Flags().Changed("assets-dir"))

	logger := log.NewFromEnv()
	defer logger.Sync()

	var mode protoex.ProveMode
	switch flags.proveMode {
	case "real":
		mode = protoex.ProveModeReal
	case "sigma":
		mode = protoex.ProveModeSigma
	default:
		return fmt.Errorf("bad usage: --prove-mode must be real|sigma, got %q", flags.proveMode)
	}

	var loader *assets.Loader
	if mode == protoex.ProveModeReal {
		var err error
		loader, err = assets.New(cfg.AssetsDir, logger)
		if err != nil {
			return fmt.Errorf("building asset loader: %w", err)
		}
		defer loader.Close()
	}

	host, err := libp2p.New(libp2p.ListenAddrStrings(flags.listenAddr))
	if err != nil {
		return fmt.Errorf("starting libp2p host: %w", err)
	}
	defer host.Close()

	metrics := protoex.NewMetrics()
	if _, err := protoex.NewServer(host, mode, loader, logger, metrics); err != nil {
		return fmt.Errorf("starting protoex server: %w", err)
	}

	logger.Infof("zk-serve listening id=%s mode=%s addrs=%v", host.ID(), mode, host.Addrs())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("zk-serve shutting down")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zk-serve: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a top-level error to spec §6's exit codes: 0
// success, 1 verification failure, 2 protocol/timeout error, 3 bad
// usage. zk-serve never runs verification, so it only ever exits 0
// (clean shutdown) or 3 (bad flags/startup failure).
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 3
}
