package airdrop

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// BalanceReader is the narrow slice of the chain collaborator the
// sufficiency check needs: per-id ERC-1155 balances. Everything else comes
// from the token descriptor snapshot.
type BalanceReader interface {
	ERC1155BalanceOf(ctx context.Context, contract, owner common.Address, tokenID *big.Int) (*big.Int, error)
}

// SufficiencyResult reports whether the sender can cover the batch. For
// ERC-1155 the ids that fall short are listed in first-occurrence order.
type SufficiencyResult struct {
	Sufficient bool
	ShortIDs   []string
}

// CheckSufficiency decides whether the sender's holdings cover the batch.
//
// NATIVE/ERC20: balance must cover the required total. ERC721: raw balanceOf
// count must cover the recipient count; per-id ownership is not verified,
// matching the drop contract's own failure mode. ERC1155: each distinct
// token id's required
// sum is compared against a freshly fetched per-id balance; any shortfall
// makes the whole batch insufficient.
//
// A failed balance fetch returns an error rather than an insufficiency:
// "the check broke" and "you lack funds" demand different user action.
func CheckSufficiency(ctx context.Context, reader BalanceReader, owner common.Address, token models.Token, recipients []models.Recipient) (SufficiencyResult, error) {
	required := Compute(token.Standard, recipients)

	if token.Standard != models.StandardERC1155 {
		if token.Balance == nil {
			return SufficiencyResult{}, fmt.Errorf("%w: token descriptor has no balance", config.ErrBalanceFetchFailed)
		}
		return SufficiencyResult{Sufficient: token.Balance.Cmp(required.Total) >= 0}, nil
	}

	var short []string
	for _, idTotal := range required.PerTokenID {
		balance, err := reader.ERC1155BalanceOf(ctx, token.ContractAddress, owner, idTotal.TokenID)
		if err != nil {
			return SufficiencyResult{}, fmt.Errorf("%w: id %s: %v",
				config.ErrBalanceFetchFailed, idTotal.TokenID, err)
		}
		if balance.Cmp(idTotal.Total) < 0 {
			short = append(short, idTotal.TokenID.String())
			slog.Debug("erc1155 token id short",
				"tokenId", idTotal.TokenID.String(),
				"required", idTotal.Total.String(),
				"balance", balance.String(),
			)
		}
	}

	return SufficiencyResult{Sufficient: len(short) == 0, ShortIDs: short}, nil
}

// Monitor re-runs the sufficiency check whenever the recipient set, token,
// or standard changes. Each Trigger supersedes any in-flight check: a stale
// result is discarded instead of overwriting a newer one.
type Monitor struct {
	reader BalanceReader

	mu     sync.Mutex
	gen    uint64
	result *SufficiencyResult
	err    error
}

// NewMonitor creates a sufficiency monitor backed by the given reader.
func NewMonitor(reader BalanceReader) *Monitor {
	return &Monitor{reader: reader}
}

// Trigger starts an asynchronous sufficiency check. The returned channel is
// closed when this particular check finishes, whether or not its result was
// kept. Inputs are snapshotted at call time; later mutations of the caller's
// slice do not race with the check.
func (m *Monitor) Trigger(ctx context.Context, owner common.Address, token models.Token, recipients []models.Recipient) <-chan struct{} {
	snapshot := make([]models.Recipient, len(recipients))
	copy(snapshot, recipients)

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		result, err := CheckSufficiency(ctx, m.reader, owner, token, snapshot)

		m.mu.Lock()
		defer m.mu.Unlock()
		if gen != m.gen {
			slog.Debug("discarding superseded sufficiency result", "gen", gen, "current", m.gen)
			return
		}
		if err != nil {
			m.result, m.err = nil, err
			return
		}
		m.result, m.err = &result, nil
	}()

	return done
}

// Latest returns the most recent kept result. ok is false while no check has
// completed yet. A non-nil error means the last check itself failed
// (BalanceFetchFailed), which is distinct from an insufficient result.
func (m *Monitor) Latest() (result *SufficiencyResult, err error, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil && m.err == nil {
		return nil, nil, false
	}
	return m.result, m.err, true
}
