package airdrop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// Submitter is the external collaborator that signs, broadcasts, and waits
// out a prepared call. The engine only supplies correctly shaped arguments.
type Submitter interface {
	Submit(ctx context.Context, call TxCall) (common.Hash, error)
	WaitConfirmed(ctx context.Context, hash common.Hash) error
}

// Flow drives one batch attempt end to end: approval first when needed, then
// the batch call. The two submissions are strictly sequential: the batch
// call never runs until the approval is confirmed, and an approval failure
// aborts the attempt. There is no built-in retry; a failed attempt surfaces
// as an error and the user resubmits explicitly.
type Flow struct {
	submitter Submitter
	contracts Contracts
}

// NewFlow creates a flow bound to a submitter and the chain's deployments.
func NewFlow(submitter Submitter, contracts Contracts) *Flow {
	return &Flow{submitter: submitter, contracts: contracts}
}

// Run executes one batch attempt and returns the batch transaction hash.
func (f *Flow) Run(ctx context.Context, owner common.Address, token models.Token, recipients []models.Recipient) (common.Hash, error) {
	required := Compute(token.Standard, recipients)

	if !HasApprovals(token, required) {
		if err := f.approve(ctx, token, required); err != nil {
			return common.Hash{}, err
		}
	}

	batch, err := Encode(token, recipients, f.contracts)
	if err != nil {
		return common.Hash{}, err
	}

	hash, err := f.submitter.Submit(ctx, TxCall{To: batch.To, Data: batch.Calldata, Value: batch.Value})
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", config.ErrSubmissionFailed, err)
	}

	slog.Info("batch submitted",
		"function", batch.FunctionName,
		"to", batch.To.Hex(),
		"txHash", hash.Hex(),
	)

	if err := f.submitter.WaitConfirmed(ctx, hash); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", config.ErrSubmissionFailed, err)
	}

	return hash, nil
}

func (f *Flow) approve(ctx context.Context, token models.Token, required models.Requirement) error {
	call, err := ApprovalCall(token, required, f.contracts)
	if err != nil {
		return err
	}
	if call == nil {
		return nil
	}

	hash, err := f.submitter.Submit(ctx, *call)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrApprovalFailed, err)
	}

	slog.Info("approval submitted",
		"standard", token.Standard,
		"token", token.ContractAddress.Hex(),
		"txHash", hash.Hex(),
	)

	if err := f.submitter.WaitConfirmed(ctx, hash); err != nil {
		return fmt.Errorf("%w: %v", config.ErrApprovalFailed, err)
	}

	return nil
}
