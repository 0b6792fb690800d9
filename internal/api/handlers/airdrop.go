package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dropforge/dropforge/internal/airdrop"
	"github.com/dropforge/dropforge/internal/chain"
	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/db"
	"github.com/dropforge/dropforge/internal/models"
	"github.com/dropforge/dropforge/internal/parse"
)

// AirdropDeps holds all dependencies needed by airdrop handlers.
type AirdropDeps struct {
	Client    *chain.Client
	Contracts airdrop.Contracts
	Monitor   *airdrop.Monitor
	DB        *db.DB
	Config    *config.Config
}

// PreviewRequest describes a batch the user is about to confirm.
type PreviewRequest struct {
	Standard        string         `json:"standard"`
	ContractAddress string         `json:"contractAddress,omitempty"`
	Owner           string         `json:"owner"`
	Symbol          string         `json:"symbol,omitempty"`
	Recipients      []apiRecipient `json:"recipients"`
}

// CallResponse is an unsigned call for the wallet to sign and send.
type CallResponse struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// PreviewResponse carries everything the confirmation screen needs.
type PreviewResponse struct {
	RequiredTotal  string        `json:"requiredTotal"`
	FormattedTotal string        `json:"formattedTotal"`
	HasApprovals   bool          `json:"hasApprovals"`
	Sufficient     bool          `json:"sufficient"`
	ShortTokenIDs  []string      `json:"shortTokenIds,omitempty"`
	RecipientCount int           `json:"recipientCount"`
	ApprovalCall   *CallResponse `json:"approvalCall,omitempty"`
	BatchCall      CallResponse  `json:"batchCall"`
	DropID         int64         `json:"dropId"`
	ExplorerTxURL  string        `json:"explorerTxUrl"`
}

// PreviewAirdrop handles POST /api/airdrop/preview: fetch a fresh token
// descriptor, compute the requirement, check sufficiency, and encode both
// the approval call (when needed) and the batch call.
func PreviewAirdrop(deps *AirdropDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		standard, err := models.ParseStandard(req.Standard)
		if err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorUnknownStandard, err.Error())
			return
		}
		if !common.IsHexAddress(req.Owner) {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "owner must be an address")
			return
		}

		recipients, err := toRecipients(standard, req.Recipients)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, config.CodeForError(err), err.Error())
			return
		}
		if standard == models.StandardERC721 {
			if err := checkWireDuplicateTokenIDs(recipients); err != nil {
				writeError(w, http.StatusUnprocessableEntity, config.CodeForError(err), err.Error())
				return
			}
		}

		owner := common.HexToAddress(req.Owner)
		token, err := fetchDescriptor(r, deps, standard, req, owner)
		if err != nil {
			slog.Error("preview token fetch failed", "standard", standard, "error", err)
			writeError(w, http.StatusBadGateway, config.CodeForError(err), err.Error())
			return
		}

		required := airdrop.Compute(standard, recipients)

		sufficiency, err := airdrop.CheckSufficiency(r.Context(), deps.Client, owner, token, recipients)
		if err != nil {
			// A broken balance check is not "insufficient funds"; the
			// frontend renders the two states differently.
			writeError(w, http.StatusBadGateway, config.ErrorBalanceFetchFailed, err.Error())
			return
		}

		batch, err := airdrop.Encode(token, recipients, deps.Contracts)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, config.ErrEmptyBatch) {
				status = http.StatusBadRequest
			}
			writeError(w, status, config.CodeForError(err), err.Error())
			return
		}

		resp := PreviewResponse{
			RequiredTotal:  required.Total.String(),
			FormattedTotal: parse.FormatUnits(required.Total, totalDecimals(standard, token)),
			HasApprovals:   airdrop.HasApprovals(token, required),
			Sufficient:     sufficiency.Sufficient,
			ShortTokenIDs:  sufficiency.ShortIDs,
			RecipientCount: len(airdrop.Active(recipients)),
			BatchCall: CallResponse{
				To:    batch.To.Hex(),
				Data:  hexutil.Encode(batch.Calldata),
				Value: batch.Value.String(),
			},
		}

		if !resp.HasApprovals {
			call, err := airdrop.ApprovalCall(token, required, deps.Contracts)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, config.CodeForError(err), err.Error())
				return
			}
			if call != nil {
				resp.ApprovalCall = &CallResponse{
					To:    call.To.Hex(),
					Data:  hexutil.Encode(call.Data),
					Value: call.Value.String(),
				}
			}
		}

		drop := models.Drop{
			ChainID:        deps.Config.ChainID,
			Standard:       string(standard),
			RecipientCount: resp.RecipientCount,
			RequiredTotal:  required.Total.String(),
			Status:         models.DropStatusPrepared,
		}
		if standard != models.StandardNative {
			drop.TokenAddress = token.ContractAddress.Hex()
		}
		id, err := deps.DB.InsertDrop(drop)
		if err != nil {
			slog.Error("failed to record drop", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to record drop")
			return
		}
		resp.DropID = id
		resp.ExplorerTxURL = airdrop.ExplorerTxURL(deps.Config.ChainID, "")

		slog.Info("airdrop previewed",
			"standard", standard,
			"recipients", resp.RecipientCount,
			"requiredTotal", resp.RequiredTotal,
			"hasApprovals", resp.HasApprovals,
			"sufficient", resp.Sufficient,
			"dropId", id,
		)

		writeJSON(w, http.StatusOK, resp)
	}
}

// SufficiencyRequest re-checks balances for the current recipient set.
type SufficiencyRequest struct {
	Standard        string         `json:"standard"`
	ContractAddress string         `json:"contractAddress,omitempty"`
	Owner           string         `json:"owner"`
	Recipients      []apiRecipient `json:"recipients"`
}

// SufficiencyResponse reports the outcome of an asynchronous check.
type SufficiencyResponse struct {
	Sufficient    bool     `json:"sufficient"`
	ShortTokenIDs []string `json:"shortTokenIds,omitempty"`
}

// CheckSufficiency handles POST /api/airdrop/sufficiency. Each request
// supersedes any in-flight check through the monitor, so a stale result
// never answers for a newer recipient set.
func CheckSufficiency(deps *AirdropDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SufficiencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		standard, err := models.ParseStandard(req.Standard)
		if err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorUnknownStandard, err.Error())
			return
		}
		if !common.IsHexAddress(req.Owner) {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "owner must be an address")
			return
		}

		recipients, err := toRecipients(standard, req.Recipients)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, config.CodeForError(err), err.Error())
			return
		}

		owner := common.HexToAddress(req.Owner)
		token, err := fetchDescriptor(r, deps, standard, PreviewRequest{
			Standard:        req.Standard,
			ContractAddress: req.ContractAddress,
			Owner:           req.Owner,
		}, owner)
		if err != nil {
			writeError(w, http.StatusBadGateway, config.CodeForError(err), err.Error())
			return
		}

		done := deps.Monitor.Trigger(r.Context(), owner, token, recipients)
		<-done

		result, checkErr, ok := deps.Monitor.Latest()
		if !ok || result == nil {
			if checkErr != nil {
				writeError(w, http.StatusBadGateway, config.ErrorBalanceFetchFailed, checkErr.Error())
				return
			}
			// Superseded by a newer request; that request will answer.
			writeError(w, http.StatusConflict, config.ErrorInvalidRequest, "check superseded by a newer request")
			return
		}

		writeJSON(w, http.StatusOK, SufficiencyResponse{
			Sufficient:    result.Sufficient,
			ShortTokenIDs: result.ShortIDs,
		})
	}
}

func fetchDescriptor(r *http.Request, deps *AirdropDeps, standard models.Standard, req PreviewRequest, owner common.Address) (models.Token, error) {
	if standard == models.StandardNative {
		symbol := req.Symbol
		if symbol == "" {
			symbol = "ETH"
		}
		return deps.Client.NativeToken(r.Context(), owner, symbol)
	}

	if !common.IsHexAddress(req.ContractAddress) {
		return models.Token{}, config.ErrInvalidAddress
	}

	token, err := deps.Client.FetchToken(r.Context(),
		common.HexToAddress(req.ContractAddress), owner,
		chain.Operators{Drop: deps.Contracts.Drop, Drop1155: deps.Contracts.Drop1155},
	)
	if err != nil {
		return models.Token{}, err
	}

	// The descriptor probe can disagree with the caller's declared
	// standard (e.g. an ERC-20 address pasted into an NFT drop); the
	// declared standard wins for shaping, the probe wins for metadata.
	token.Standard = standard
	return token, nil
}

func totalDecimals(standard models.Standard, token models.Token) uint8 {
	if standard.Fungible() {
		return token.Decimals
	}
	return 0
}
