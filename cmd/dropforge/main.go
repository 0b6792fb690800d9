package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropforge/dropforge/internal/airdrop"
	"github.com/dropforge/dropforge/internal/api"
	"github.com/dropforge/dropforge/internal/api/handlers"
	"github.com/dropforge/dropforge/internal/chain"
	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/db"
	"github.com/dropforge/dropforge/internal/logging"
	"github.com/dropforge/dropforge/internal/models"
	"github.com/dropforge/dropforge/internal/parse"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("dropforge %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: dropforge <command>

Commands:
  serve     Start the HTTP server
  check     Parse and validate a recipients file offline
  version   Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting dropforge",
		"version", version,
		"chainId", cfg.ChainID,
		"port", cfg.Port,
	)

	if cfg.RPCURL == "" {
		return fmt.Errorf("%w: DROPFORGE_RPC_URL is required for serve", config.ErrInvalidConfig)
	}

	contracts, err := airdrop.ResolveContracts(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve drop contracts: %w", err)
	}

	client, err := chain.Dial(cfg.RPCURL, cfg.RPCRps)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	api.Version = version
	deps := &handlers.AirdropDeps{
		Client:    client,
		Contracts: contracts,
		Monitor:   airdrop.NewMonitor(client),
		DB:        database,
		Config:    cfg,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	standardFlag := fs.String("standard", "ERC20", "token standard: NATIVE, ERC20, ERC721, ERC1155")
	decimalsFlag := fs.Int("decimals", 18, "token decimals (fungible standards)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: dropforge check [-standard S] [-decimals N] <file>")
	}

	standard, err := models.ParseStandard(*standardFlag)
	if err != nil {
		return err
	}
	if *decimalsFlag < 0 || *decimalsFlag > 77 {
		return fmt.Errorf("decimals out of range: %d", *decimalsFlag)
	}

	content, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read recipients file: %w", err)
	}

	tuples := parse.Text(standard, string(content))

	if standard == models.StandardERC721 {
		if err := parse.CheckDuplicateTokenIDs(tuples); err != nil {
			return err
		}
	}

	recipients, err := parse.Recipients(standard, uint8(*decimalsFlag), tuples)
	if err != nil {
		return err
	}

	required := airdrop.Compute(standard, recipients)

	fmt.Printf("recipients: %d\n", len(recipients))
	switch standard {
	case models.StandardERC1155:
		for _, t := range required.PerTokenID {
			fmt.Printf("token id %s: %s required\n", t.TokenID, t.Total)
		}
	case models.StandardERC721:
		fmt.Printf("tokens to send: %s\n", required.Total)
	default:
		fmt.Printf("required total: %s (%s)\n",
			required.Total, parse.FormatUnits(required.Total, uint8(*decimalsFlag)))
	}

	return nil
}
