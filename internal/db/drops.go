package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dropforge/dropforge/internal/models"
)

// InsertDrop records a prepared batch and returns the auto-generated ID.
func (d *DB) InsertDrop(drop models.Drop) (int64, error) {
	slog.Debug("inserting drop",
		"chainId", drop.ChainID,
		"standard", drop.Standard,
		"tokenAddress", drop.TokenAddress,
		"recipients", drop.RecipientCount,
		"requiredTotal", drop.RequiredTotal,
	)

	result, err := d.conn.Exec(
		`INSERT INTO drops (chain_id, standard, token_address, recipient_count, required_total, tx_hash, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		drop.ChainID,
		drop.Standard,
		drop.TokenAddress,
		drop.RecipientCount,
		drop.RequiredTotal,
		drop.TxHash,
		drop.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("insert drop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}

	return id, nil
}

// UpdateDropStatus updates the status of a recorded drop, attaching the
// transaction hash once known.
func (d *DB) UpdateDropStatus(id int64, status, txHash string) error {
	_, err := d.conn.Exec(
		"UPDATE drops SET status = ?, tx_hash = ? WHERE id = ?",
		status, txHash, id,
	)
	if err != nil {
		return fmt.Errorf("update drop %d status: %w", id, err)
	}

	slog.Info("drop status updated", "id", id, "status", status, "txHash", txHash)
	return nil
}

// GetDrop fetches a single recorded drop by ID.
func (d *DB) GetDrop(id int64) (*models.Drop, error) {
	row := d.conn.QueryRow(
		`SELECT id, chain_id, standard, token_address, recipient_count, required_total, tx_hash, status, created_at
		 FROM drops WHERE id = ?`, id,
	)

	var drop models.Drop
	err := row.Scan(&drop.ID, &drop.ChainID, &drop.Standard, &drop.TokenAddress,
		&drop.RecipientCount, &drop.RequiredTotal, &drop.TxHash, &drop.Status, &drop.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get drop %d: %w", id, err)
	}
	return &drop, nil
}

// ListDrops returns recorded drops newest first, with basic pagination.
func (d *DB) ListDrops(page, pageSize int) ([]models.Drop, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM drops").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count drops: %w", err)
	}

	rows, err := d.conn.Query(
		`SELECT id, chain_id, standard, token_address, recipient_count, required_total, tx_hash, status, created_at
		 FROM drops ORDER BY id DESC LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list drops: %w", err)
	}
	defer rows.Close()

	drops := make([]models.Drop, 0, pageSize)
	for rows.Next() {
		var drop models.Drop
		if err := rows.Scan(&drop.ID, &drop.ChainID, &drop.Standard, &drop.TokenAddress,
			&drop.RecipientCount, &drop.RequiredTotal, &drop.TxHash, &drop.Status, &drop.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan drop row: %w", err)
		}
		drops = append(drops, drop)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate drop rows: %w", err)
	}

	return drops, total, nil
}
