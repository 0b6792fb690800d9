package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
	"github.com/dropforge/dropforge/internal/parse"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.APIError{
		Error: models.APIErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// apiRecipient is the wire form of a recipient. Amounts and token ids travel
// as decimal strings in the token's smallest unit, exactly as the parse
// endpoint handed them out, so no scaling happens on the way back in.
type apiRecipient struct {
	Address  string `json:"address"`
	Amount   string `json:"amount"`
	TokenID  string `json:"tokenId,omitempty"`
	Excluded bool   `json:"excluded,omitempty"`
}

// toRecipients rebuilds canonical records from wire recipients.
func toRecipients(standard models.Standard, wire []apiRecipient) ([]models.Recipient, error) {
	recipients := make([]models.Recipient, 0, len(wire))
	for i, r := range wire {
		if !common.IsHexAddress(r.Address) || len(r.Address) != 42 {
			return nil, fmt.Errorf("%w: row %d: %q", config.ErrInvalidAddress, i+1, r.Address)
		}
		amount, err := parse.ParseInteger(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rec := models.Recipient{
			Address:  common.HexToAddress(r.Address),
			Amount:   amount,
			Excluded: r.Excluded,
		}
		if standard == models.StandardERC1155 {
			id, err := parse.ParseInteger(r.TokenID)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %q", config.ErrInvalidTokenID, i+1, r.TokenID)
			}
			rec.TokenID = id
		}
		recipients = append(recipients, rec)
	}
	return recipients, nil
}

// checkWireDuplicateTokenIDs re-runs the token id uniqueness check on
// recipients that arrive over the wire, since a client can skip the parse
// endpoint and post straight to preview. Excluded recipients do not contend
// for an id.
func checkWireDuplicateTokenIDs(recipients []models.Recipient) error {
	tuples := make([]parse.Tuple, 0, len(recipients))
	for _, r := range recipients {
		if r.Excluded {
			continue
		}
		tuples = append(tuples, parse.Tuple{Address: r.Address.Hex(), Amount: r.Amount.String()})
	}
	return parse.CheckDuplicateTokenIDs(tuples)
}

// fromRecipients converts canonical records to their wire form.
func fromRecipients(recipients []models.Recipient) []apiRecipient {
	wire := make([]apiRecipient, len(recipients))
	for i, r := range recipients {
		wire[i] = apiRecipient{
			Address:  r.Address.Hex(),
			Amount:   r.Amount.String(),
			Excluded: r.Excluded,
		}
		if r.TokenID != nil {
			wire[i].TokenID = r.TokenID.String()
		}
	}
	return wire
}
