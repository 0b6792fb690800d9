package parse

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// Recipients validates and normalizes coarse tuples into canonical recipient
// records for the given standard. decimals is consulted for fungible
// standards only.
//
// Any invalid row fails the entire batch: partial success would silently
// under- or over-send, so the caller gets either the full recipient list or
// an error naming the first offending row.
func Recipients(standard models.Standard, decimals uint8, tuples []Tuple) ([]models.Recipient, error) {
	// A CSV upload may carry a header row; drop the first tuple when its
	// first field is not a syntactically valid address.
	if len(tuples) > 0 && !addressTokenRegex.MatchString(tuples[0].Address) {
		slog.Debug("dropping header row", "field", tuples[0].Address)
		tuples = tuples[1:]
	}

	if len(tuples) == 0 {
		return nil, config.ErrEmptyBatch
	}
	if len(tuples) > config.MaxRecipientsPerBatch {
		return nil, fmt.Errorf("%w: %d recipients, maximum %d",
			config.ErrBatchTooLarge, len(tuples), config.MaxRecipientsPerBatch)
	}

	recipients := make([]models.Recipient, 0, len(tuples))

	for i, tuple := range tuples {
		if len(tuple.Address) != 42 || !addressTokenRegex.MatchString(tuple.Address) {
			return nil, fmt.Errorf("%w: row %d: %q", config.ErrInvalidAddress, i+1, tuple.Address)
		}

		rec := models.Recipient{Address: common.HexToAddress(tuple.Address)}

		switch standard {
		case models.StandardERC721:
			// The amount field carries the token id; no scaling.
			id, err := ParseInteger(tuple.Amount)
			if err != nil {
				return nil, fmt.Errorf("row %d: token id: %w", i+1, err)
			}
			rec.Amount = id

		case models.StandardERC1155:
			id, err := ParseInteger(tuple.TokenID)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %q", config.ErrInvalidTokenID, i+1, tuple.TokenID)
			}
			amount, err := ParseInteger(tuple.Amount)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec.TokenID = id
			rec.Amount = amount

		default:
			amount, err := ParseUnits(tuple.Amount, decimals)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec.Amount = amount
		}

		recipients = append(recipients, rec)
	}

	slog.Debug("recipients validated",
		"standard", standard,
		"count", len(recipients),
	)

	return recipients, nil
}
