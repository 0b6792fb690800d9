package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropforge/dropforge/internal/airdrop"
	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/db"
	"github.com/dropforge/dropforge/internal/models"
)

// DropsResponse is a page of recorded drops.
type DropsResponse struct {
	Drops    []models.Drop `json:"drops"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Total    int64         `json:"total"`
}

// ListDrops handles GET /api/drops.
func ListDrops(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		pageSize := queryInt(r, "pageSize", 50)

		drops, total, err := database.ListDrops(page, pageSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to list drops")
			return
		}

		writeJSON(w, http.StatusOK, DropsResponse{
			Drops:    drops,
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		})
	}
}

// DropStatusRequest reports the outcome of a wallet submission back to the
// history log.
type DropStatusRequest struct {
	Status string `json:"status"`
	TxHash string `json:"txHash,omitempty"`
}

// UpdateDropStatus handles POST /api/drops/{id}/status.
func UpdateDropStatus(database *db.DB, chainID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid drop id")
			return
		}

		var req DropStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		switch req.Status {
		case models.DropStatusSubmitted, models.DropStatusFailed:
		default:
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "status must be submitted or failed")
			return
		}

		drop, err := database.GetDrop(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to load drop")
			return
		}
		if drop == nil {
			writeError(w, http.StatusNotFound, config.ErrorInvalidRequest, "drop not found")
			return
		}

		if err := database.UpdateDropStatus(id, req.Status, req.TxHash); err != nil {
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to update drop")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":        req.Status,
			"explorerTxUrl": airdrop.ExplorerTxURL(chainID, req.TxHash),
		})
	}
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
