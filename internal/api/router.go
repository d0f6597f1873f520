package api

import (
	"net/http"

	"github.com/jam1729/create-update-burn-nft/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router serves
type Handlers struct {
	Wallet   *handler.WalletHandler
	NFT      *handler.NFTHandler
	MediaDir string
}

// SetupRouter sets up router with handlers
func SetupRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Published images and metadata manifests
	if h.MediaDir != "" {
		mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(h.MediaDir))))
	}

	// Wallet endpoints
	mux.HandleFunc("/wallet", h.Wallet.Get)
	mux.HandleFunc("/wallet/connect", h.Wallet.Connect)
	mux.HandleFunc("/wallet/disconnect", h.Wallet.Disconnect)
	mux.HandleFunc("/wallet/generate", h.Wallet.Generate)

	// NFT endpoints
	mux.HandleFunc("/nft/mint", h.NFT.Mint)
	mux.HandleFunc("/nft/update", h.NFT.Update)
	mux.HandleFunc("/nft/burn", h.NFT.Burn)
	mux.HandleFunc("/nft/tokens", h.NFT.Tokens)

	return mux
}
