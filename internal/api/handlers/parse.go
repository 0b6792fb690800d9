package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
	"github.com/dropforge/dropforge/internal/parse"
)

// ParseRequest carries either free text or uploaded CSV rows.
type ParseRequest struct {
	Standard string     `json:"standard"`
	Decimals uint8      `json:"decimals"`
	Text     string     `json:"text,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
}

// ParseResponse returns the canonical recipient list.
type ParseResponse struct {
	Standard   string         `json:"standard"`
	Recipients []apiRecipient `json:"recipients"`
	Count      int            `json:"count"`
}

// ParseRecipients handles POST /api/recipients/parse: lex the input, check
// ERC-721 duplicates, validate the whole batch.
func ParseRecipients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ParseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		standard, err := models.ParseStandard(req.Standard)
		if err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorUnknownStandard, err.Error())
			return
		}

		var tuples []parse.Tuple
		switch {
		case len(req.Rows) > 0:
			tuples = parse.Rows(standard, req.Rows)
		default:
			tuples = parse.Text(standard, req.Text)
		}

		if standard == models.StandardERC721 {
			if err := parse.CheckDuplicateTokenIDs(tuples); err != nil {
				slog.Warn("duplicate token ids in upload", "error", err)
				writeError(w, http.StatusUnprocessableEntity, config.CodeForError(err), err.Error())
				return
			}
		}

		recipients, err := parse.Recipients(standard, req.Decimals, tuples)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, config.ErrEmptyBatch) {
				status = http.StatusBadRequest
			}
			writeError(w, status, config.CodeForError(err), err.Error())
			return
		}

		slog.Info("recipients parsed",
			"standard", standard,
			"count", len(recipients),
		)

		writeJSON(w, http.StatusOK, ParseResponse{
			Standard:   string(standard),
			Recipients: fromRecipients(recipients),
			Count:      len(recipients),
		})
	}
}
