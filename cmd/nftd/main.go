// nftd serves the NFT lifecycle API for a local .cwt wallet.
// Usage: SOLANA_WALLET_FILE=./wallet.cwt go run ./cmd/nftd
//
// @title        NFT Lifecycle API
// @version      1.0
// @description  Mint, update and burn Metaplex NFTs with a local Solana wallet
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jam1729/create-update-burn-nft/docs"
	"github.com/jam1729/create-update-burn-nft/internal/api"
	"github.com/jam1729/create-update-burn-nft/internal/capture"
	"github.com/jam1729/create-update-burn-nft/internal/client"
	"github.com/jam1729/create-update-burn-nft/internal/config"
	"github.com/jam1729/create-update-burn-nft/internal/handler"
	"github.com/jam1729/create-update-burn-nft/internal/media"
	"github.com/jam1729/create-update-burn-nft/internal/store"
	"github.com/jam1729/create-update-burn-nft/internal/wallet"
	"github.com/jam1729/create-update-burn-nft/nft"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	walletFile := config.GetWalletFile()
	if walletFile != "" {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := client.NewSolanaClient(config.GetSolanaRPCURL(), client.Options{
		PollInterval:   cfg.ConfirmPollInterval,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, logger)

	tokens, err := store.OpenBadger(ctx, cfg.StoreDir, logger)
	if err != nil {
		return err
	}
	defer tokens.Close()

	files, err := media.NewFileStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return err
	}
	images := capture.New(cfg.ImagesDir, cfg.ImageFileName)

	session := wallet.NewSession(logger)
	defer session.Close()
	unsubscribe := session.Subscribe(func(ev wallet.Event) {
		logger.Debug("wallet event", zap.Stringer("kind", ev.Kind), zap.Stringer("publicKey", ev.PublicKey))
	})
	defer unsubscribe()
	password := wallet.PasswordFunc(config.GetWalletPasswordBytes)
	if session.TryAutoDetect(wallet.DetectLocal(walletFile, password, logger)) {
		if err := session.Connect(ctx); err != nil {
			logger.Warn("wallet connect", zap.Error(err))
		}
	}

	manager := nft.NewManager(session, conn, images, files, tokens, nft.Options{
		MaxSupply:           cfg.MaxSupply,
		MintFundingLamports: cfg.MintFundingLamports,
	}, logger)

	walletHandler, err := handler.NewWalletHandler(session, conn, walletFile, password, cfg.KeystoreScryptN, logger)
	if err != nil {
		return err
	}
	nftHandler, err := handler.NewNFTHandler(manager, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: ":" + config.GetPort(),
		Handler: api.SetupRouter(api.Handlers{
			Wallet:   walletHandler,
			NFT:      nftHandler,
			MediaDir: files.Root(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("cluster", cfg.SolanaCluster),
			zap.String("rpc", conn.URL()),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
