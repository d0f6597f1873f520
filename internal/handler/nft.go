package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jam1729/create-update-burn-nft/internal/model"
	"github.com/jam1729/create-update-burn-nft/nft"

	"go.uber.org/zap"
)

// NFTHandler exposes the token lifecycle
type NFTHandler struct {
	manager *nft.Manager
	log     *zap.Logger
}

// NewNFTHandler creates a handler driving manager
func NewNFTHandler(manager *nft.Manager, logger *zap.Logger) (*NFTHandler, error) {
	if manager == nil {
		return nil, errors.New("nft manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NFTHandler{manager: manager, log: logger}, nil
}

func tokenResponse(t *nft.Token) model.TokenResponse {
	rec := t.Record()
	return model.TokenResponse{
		ID:         rec.ID,
		Phase:      rec.Phase,
		State:      rec.State,
		Operations: rec.Operations,
	}
}

// Mint handles POST /nft/mint
// @Summary      Mint NFT
// @Description  Captures the element image and mints a one-of-one token owned by the connected wallet
// @Tags         nft
// @Accept       json
// @Produce      json
// @Param        request  body      model.MintRequest  true  "Mint data"
// @Success      200      {object}  model.TokenResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/mint [post]
func (h *NFTHandler) Mint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var tok *nft.Token
	if req.TokenID != "" {
		t, err := h.manager.Token(req.TokenID)
		if err != nil {
			writeError(w, operationStatus(err), err)
			return
		}
		tok = t
	} else {
		tok = h.manager.NewToken()
	}

	// a confirmed transaction must be recorded even if the client goes away
	ctx := context.WithoutCancel(r.Context())
	if err := h.manager.Mint(ctx, tok, req.ElementID, req.Name, req.Symbol); err != nil {
		writeError(w, operationStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(tok))
}

// Update handles POST /nft/update
// @Summary      Update NFT metadata
// @Description  Rewrites name, symbol and image of a token. mintKey defaults to the token's own mint.
// @Tags         nft
// @Accept       json
// @Produce      json
// @Param        request  body      model.UpdateRequest  true  "Update data"
// @Success      200      {object}  model.TokenResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/update [post]
func (h *NFTHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var tok *nft.Token
	if req.TokenID != "" {
		t, err := h.manager.Token(req.TokenID)
		if err != nil {
			writeError(w, operationStatus(err), err)
			return
		}
		tok = t
	}

	mintKey := strings.TrimSpace(req.MintKey)
	ctx := context.WithoutCancel(r.Context())
	if err := h.manager.Update(ctx, tok, req.ElementID, req.Name, req.Symbol, mintKey); err != nil {
		writeError(w, operationStatus(err), err)
		return
	}
	if tok == nil {
		writeJSON(w, http.StatusOK, model.TokenResponse{
			Phase: nft.PhaseUpdated.String(),
			State: model.TokenState{MintKey: mintKey},
		})
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(tok))
}

// Burn handles POST /nft/burn
// @Summary      Burn NFT
// @Description  Burns the single unit of a minted token
// @Tags         nft
// @Accept       json
// @Produce      json
// @Param        request  body      model.BurnRequest  true  "Burn data"
// @Success      200      {object}  model.TokenResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/burn [post]
func (h *NFTHandler) Burn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.BurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.TokenID == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "tokenId is required", Code: "INVALID_INPUT"})
		return
	}

	tok, err := h.manager.Token(req.TokenID)
	if err != nil {
		writeError(w, operationStatus(err), err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	if _, err := h.manager.Burn(ctx, tok); err != nil {
		writeError(w, operationStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(tok))
}

// Tokens handles GET /nft/tokens
// @Summary      List tokens
// @Description  Lists every managed token, or one token when id is given
// @Tags         nft
// @Produce      json
// @Param        id   query     string  false  "Token ID"
// @Success      200  {object}  model.TokenListResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /nft/tokens [get]
func (h *NFTHandler) Tokens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		tok, err := h.manager.Token(id)
		if err != nil {
			writeError(w, operationStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, model.TokenListResponse{Tokens: []model.TokenResponse{tokenResponse(tok)}})
		return
	}

	tokens, err := h.manager.Tokens()
	if err != nil {
		h.log.Error("failed to list tokens", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := model.TokenListResponse{Tokens: make([]model.TokenResponse, 0, len(tokens))}
	for _, t := range tokens {
		resp.Tokens = append(resp.Tokens, tokenResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}
