package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/dropforge/dropforge/internal/airdrop"
	"github.com/dropforge/dropforge/internal/chain"
	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
	"github.com/dropforge/dropforge/internal/parse"
)

// TokenResponse is the wire form of a token descriptor.
type TokenResponse struct {
	Standard         string `json:"standard"`
	ContractAddress  string `json:"contractAddress,omitempty"`
	Name             string `json:"name,omitempty"`
	Symbol           string `json:"symbol,omitempty"`
	Decimals         uint8  `json:"decimals"`
	Balance          string `json:"balance"`
	FormattedBalance string `json:"formattedBalance"`
	Allowance        string `json:"allowance,omitempty"`
	IsApprovedForAll bool   `json:"isApprovedForAll,omitempty"`
}

// GetToken handles GET /api/token/{address}?owner=0x…: fetch a fresh
// descriptor for the contract, including the drop contract's current
// permission.
func GetToken(client *chain.Client, contracts airdrop.Contracts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractParam := chi.URLParam(r, "address")
		ownerParam := r.URL.Query().Get("owner")

		if !common.IsHexAddress(contractParam) {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "invalid contract address")
			return
		}
		if !common.IsHexAddress(ownerParam) {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "owner query parameter must be an address")
			return
		}

		token, err := client.FetchToken(r.Context(),
			common.HexToAddress(contractParam),
			common.HexToAddress(ownerParam),
			chain.Operators{Drop: contracts.Drop, Drop1155: contracts.Drop1155},
		)
		if err != nil {
			slog.Error("token fetch failed", "contract", contractParam, "error", err)
			writeError(w, http.StatusBadGateway, config.CodeForError(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse(token))
	}
}

// GetNativeToken handles GET /api/token/native?owner=0x…&symbol=ETH.
func GetNativeToken(client *chain.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerParam := r.URL.Query().Get("owner")
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			symbol = "ETH"
		}

		if !common.IsHexAddress(ownerParam) {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "owner query parameter must be an address")
			return
		}

		token, err := client.NativeToken(r.Context(), common.HexToAddress(ownerParam), symbol)
		if err != nil {
			slog.Error("native balance fetch failed", "owner", ownerParam, "error", err)
			writeError(w, http.StatusBadGateway, config.CodeForError(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse(token))
	}
}

func tokenResponse(token models.Token) TokenResponse {
	resp := TokenResponse{
		Standard:         string(token.Standard),
		Name:             token.Name,
		Symbol:           token.Symbol,
		Decimals:         token.Decimals,
		Balance:          "0",
		IsApprovedForAll: token.IsApprovedForAll,
	}
	if token.Standard != models.StandardNative {
		resp.ContractAddress = token.ContractAddress.Hex()
	}
	if token.Balance != nil {
		resp.Balance = token.Balance.String()
		resp.FormattedBalance = parse.FormatUnits(token.Balance, token.Decimals)
	}
	if token.Allowance != nil {
		resp.Allowance = token.Allowance.String()
	}
	return resp
}
