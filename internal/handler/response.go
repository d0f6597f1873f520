package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jam1729/create-update-burn-nft/internal/model"
	"github.com/jam1729/create-update-burn-nft/nft"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: errorCode(err)})
}

// operationStatus maps lifecycle failures to HTTP status codes
func operationStatus(err error) int {
	switch nft.KindOf(err) {
	case nft.ErrNotConnected:
		return http.StatusConflict
	case nft.ErrInvalidInput, nft.ErrMissingMintKey:
		return http.StatusBadRequest
	case nft.ErrOperationInFlight:
		return http.StatusTooManyRequests
	case nft.ErrSubmissionFailed:
		return http.StatusBadGateway
	}
	if errors.Is(err, nft.ErrUnknownToken) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	switch nft.KindOf(err) {
	case nft.ErrNotConnected:
		return "NOT_CONNECTED"
	case nft.ErrInvalidInput:
		return "INVALID_INPUT"
	case nft.ErrMissingMintKey:
		return "MISSING_MINT_KEY"
	case nft.ErrOperationInFlight:
		return "OPERATION_IN_FLIGHT"
	case nft.ErrSubmissionFailed:
		return "SUBMISSION_FAILED"
	}
	if errors.Is(err, nft.ErrUnknownToken) {
		return "UNKNOWN_TOKEN"
	}
	return ""
}
