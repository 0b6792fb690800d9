package airdrop

import (
	"math/big"

	"github.com/dropforge/dropforge/internal/models"
)

// Active returns the non-excluded recipients in original order. The source
// slice is never reordered or shrunk; exclusion is a view concern so the user
// can re-include an entry later.
func Active(recipients []models.Recipient) []models.Recipient {
	active := make([]models.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if !r.Excluded {
			active = append(active, r)
		}
	}
	return active
}

// ToggleExclusion flips the excluded flag of the recipient at idx and
// returns a new slice; the input is left untouched. Out-of-range indexes
// return the input unchanged.
func ToggleExclusion(recipients []models.Recipient, idx int) []models.Recipient {
	if idx < 0 || idx >= len(recipients) {
		return recipients
	}
	out := make([]models.Recipient, len(recipients))
	copy(out, recipients)
	out[idx].Excluded = !out[idx].Excluded
	return out
}

// Compute derives the total value the batch call will consume from the
// current recipient set. The result is never cached: exclusion toggles make
// any stored total stale.
//
// NATIVE/ERC20: exact integer sum of amounts. ERC721: one token per
// recipient, so the count. ERC1155: zero, since the 1155 contracts use operator
// approval rather than a numeric allowance, and sufficiency is a per-id
// balance question instead.
func Compute(standard models.Standard, recipients []models.Recipient) models.Requirement {
	active := Active(recipients)

	switch standard {
	case models.StandardERC1155:
		return models.Requirement{
			Total:      big.NewInt(0),
			PerTokenID: perTokenIDTotals(active),
		}

	case models.StandardERC721:
		return models.Requirement{Total: big.NewInt(int64(len(active)))}

	default:
		total := new(big.Int)
		for _, r := range active {
			total.Add(total, r.Amount)
		}
		return models.Requirement{Total: total}
	}
}

// perTokenIDTotals sums required amounts per ERC-1155 token id, in
// first-occurrence order for deterministic reporting.
func perTokenIDTotals(active []models.Recipient) []models.TokenIDTotal {
	index := make(map[string]int, len(active))
	totals := make([]models.TokenIDTotal, 0, len(active))

	for _, r := range active {
		key := r.TokenID.String()
		i, seen := index[key]
		if !seen {
			index[key] = len(totals)
			totals = append(totals, models.TokenIDTotal{
				TokenID: new(big.Int).Set(r.TokenID),
				Total:   new(big.Int).Set(r.Amount),
			})
			continue
		}
		totals[i].Total.Add(totals[i].Total, r.Amount)
	}
	return totals
}

// HasApprovals reports whether the drop contract already has permission to
// move the required value, i.e. whether an approval transaction can be
// skipped. Native transfers need no approval; ERC-721/1155 use the
// all-or-nothing operator flag; ERC-20 compares the granted allowance
// against the required total.
func HasApprovals(token models.Token, required models.Requirement) bool {
	switch token.Standard {
	case models.StandardNative:
		return true
	case models.StandardERC721, models.StandardERC1155:
		return token.IsApprovedForAll
	default:
		return token.Allowance != nil && token.Allowance.Cmp(required.Total) >= 0
	}
}
