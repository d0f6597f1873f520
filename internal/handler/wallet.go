package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/jam1729/create-update-burn-nft/internal/common"
	"github.com/jam1729/create-update-burn-nft/internal/model"
	"github.com/jam1729/create-update-burn-nft/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// BalanceReader reads SOL balances in lamports
type BalanceReader interface {
	Balance(ctx context.Context, owner solana.PublicKey) (uint64, error)
}

// WalletHandler exposes the wallet session
type WalletHandler struct {
	session    *wallet.Session
	balances   BalanceReader
	walletFile string
	password   wallet.PasswordFunc
	scryptN    int
	log        *zap.Logger
}

// NewWalletHandler creates a handler for session. walletFile is where
// POST /wallet/generate writes a new keystore sealed at scryptN. balances may be nil.
func NewWalletHandler(session *wallet.Session, balances BalanceReader, walletFile string, password wallet.PasswordFunc, scryptN int, logger *zap.Logger) (*WalletHandler, error) {
	if session == nil {
		return nil, errors.New("wallet session is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletHandler{
		session:    session,
		balances:   balances,
		walletFile: walletFile,
		password:   password,
		scryptN:    scryptN,
		log:        logger,
	}, nil
}

func (h *WalletHandler) response() model.WalletResponse {
	resp := model.WalletResponse{State: h.session.State().String()}
	if id, ok := h.session.CurrentIdentity(); ok {
		resp.PublicKey = id.PublicKey
		resp.Connected = true
	}
	return resp
}

// Get handles GET /wallet
// @Summary      Wallet state
// @Description  Returns the connection state, owner public key and SOL balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	resp := h.response()
	if resp.Connected && h.balances != nil {
		if owner, err := common.ParsePublicKey(resp.PublicKey); err == nil {
			lamports, err := h.balances.Balance(r.Context(), owner)
			if err != nil {
				h.log.Warn("failed to check balance", zap.String("publicKey", resp.PublicKey), zap.Error(err))
			} else {
				resp.BalanceSOL = common.LamportsToSOL(lamports)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Asks the signing agent to connect. Completion is observed via GET /wallet.
// @Tags         wallet
// @Produce      json
// @Success      202  {object}  model.WalletResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if !h.session.HasAgent() {
		writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: "no provider found", Code: "NO_PROVIDER"})
		return
	}
	// the connect outlives this request
	if err := h.session.Connect(context.WithoutCancel(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.response())
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.session.Disconnect(); err != nil {
		h.log.Warn("wallet disconnect", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, h.response())
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new keypair, saves it to the .cwt keystore and attaches it to the session
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}
	if h.walletFile == "" {
		writeError(w, http.StatusBadRequest, errors.New("SOLANA_WALLET_FILE not set"))
		return
	}
	if h.password == nil {
		writeError(w, http.StatusBadRequest, errors.New("password not set"))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes)

	address, err := wallet.GenerateKeystore(h.walletFile, passwordBytes, h.scryptN)
	if err != nil {
		if wallet.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.session.TryAutoDetect(wallet.DetectLocal(h.walletFile, h.password, h.log))

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}
