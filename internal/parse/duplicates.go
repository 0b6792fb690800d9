package parse

import (
	"fmt"
	"strings"

	"github.com/dropforge/dropforge/internal/config"
)

// DuplicateTokenIDs returns every token id that appears more than once among
// the coarse tuples, in first-occurrence order. For ERC-721 tuples the
// Amount field carries the id.
//
// This runs on pre-validation tuples so a duplicate report covers the whole
// upload even when some rows would fail validation.
func DuplicateTokenIDs(tuples []Tuple) []string {
	counts := make(map[string]int, len(tuples))
	order := make([]string, 0, len(tuples))

	for _, t := range tuples {
		id := t.Amount
		if t.TokenID != "" {
			id = t.TokenID
		}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var dupes []string
	for _, id := range order {
		if counts[id] > 1 {
			dupes = append(dupes, id)
		}
	}
	return dupes
}

// CheckDuplicateTokenIDs fails an ERC-721 batch that would send the same
// token id twice. All offending ids are reported in one error, never just
// the first.
func CheckDuplicateTokenIDs(tuples []Tuple) error {
	dupes := DuplicateTokenIDs(tuples)
	if len(dupes) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", config.ErrDuplicateTokenID, strings.Join(dupes, ", "))
}
