package airdrop

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// fakeSubmitter records submitted calls and can be told to fail at a given
// call index.
type fakeSubmitter struct {
	calls     []TxCall
	failAt    int // 1-based call index that fails; 0 never fails
	confirmed []common.Hash
}

func (f *fakeSubmitter) Submit(_ context.Context, call TxCall) (common.Hash, error) {
	f.calls = append(f.calls, call)
	if f.failAt == len(f.calls) {
		return common.Hash{}, errors.New("nonce too low")
	}
	var hash common.Hash
	hash[31] = byte(len(f.calls))
	return hash, nil
}

func (f *fakeSubmitter) WaitConfirmed(_ context.Context, hash common.Hash) error {
	f.confirmed = append(f.confirmed, hash)
	return nil
}

func TestFlow_ApprovalPrecedesBatch(t *testing.T) {
	submitter := &fakeSubmitter{}
	flow := NewFlow(submitter, testContracts)

	tokenAddr := common.HexToAddress("0x4444444444444444444444444444444444444444")
	token := models.Token{
		Standard:        models.StandardERC20,
		ContractAddress: tokenAddr,
		Allowance:       big.NewInt(0),
	}
	recipients := []models.Recipient{recipient(testAddrA, 100)}

	hash, err := flow.Run(context.Background(), testAddrA, token, recipients)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(submitter.calls) != 2 {
		t.Fatalf("got %d calls, want approval then batch", len(submitter.calls))
	}
	// Approval targets the token contract, the batch targets the drop.
	if submitter.calls[0].To != tokenAddr {
		t.Errorf("call 0 to = %s, want token contract", submitter.calls[0].To.Hex())
	}
	if submitter.calls[1].To != testContracts.Drop {
		t.Errorf("call 1 to = %s, want drop contract", submitter.calls[1].To.Hex())
	}
	// Each submission is confirmed before the next begins.
	if len(submitter.confirmed) != 2 {
		t.Errorf("got %d confirmations, want 2", len(submitter.confirmed))
	}
	if hash[31] != 2 {
		t.Errorf("returned hash is not the batch hash: %s", hash.Hex())
	}
}

func TestFlow_SkipsApprovalWhenGranted(t *testing.T) {
	submitter := &fakeSubmitter{}
	flow := NewFlow(submitter, testContracts)

	token := models.Token{
		Standard:        models.StandardERC20,
		ContractAddress: common.HexToAddress("0x4444444444444444444444444444444444444444"),
		Allowance:       big.NewInt(100),
	}
	recipients := []models.Recipient{recipient(testAddrA, 100)}

	if _, err := flow.Run(context.Background(), testAddrA, token, recipients); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(submitter.calls) != 1 {
		t.Errorf("got %d calls, want batch only", len(submitter.calls))
	}
}

func TestFlow_ApprovalFailureAborts(t *testing.T) {
	submitter := &fakeSubmitter{failAt: 1}
	flow := NewFlow(submitter, testContracts)

	token := models.Token{
		Standard:        models.StandardERC20,
		ContractAddress: common.HexToAddress("0x4444444444444444444444444444444444444444"),
		Allowance:       big.NewInt(0),
	}
	recipients := []models.Recipient{recipient(testAddrA, 100)}

	_, err := flow.Run(context.Background(), testAddrA, token, recipients)
	if !errors.Is(err, config.ErrApprovalFailed) {
		t.Fatalf("error = %v, want ErrApprovalFailed", err)
	}
	// The batch call never went out.
	if len(submitter.calls) != 1 {
		t.Errorf("got %d calls after approval failure, want 1", len(submitter.calls))
	}
}

func TestFlow_SubmissionFailure(t *testing.T) {
	submitter := &fakeSubmitter{failAt: 1}
	flow := NewFlow(submitter, testContracts)

	token := models.Token{Standard: models.StandardNative}
	recipients := []models.Recipient{recipient(testAddrA, 100)}

	_, err := flow.Run(context.Background(), testAddrA, token, recipients)
	if !errors.Is(err, config.ErrSubmissionFailed) {
		t.Errorf("error = %v, want ErrSubmissionFailed", err)
	}
}

func TestFlow_NativeSendsValue(t *testing.T) {
	submitter := &fakeSubmitter{}
	flow := NewFlow(submitter, testContracts)

	token := models.Token{Standard: models.StandardNative}
	recipients := []models.Recipient{
		recipient(testAddrA, 100),
		recipient(testAddrB, 150),
	}

	if _, err := flow.Run(context.Background(), testAddrA, token, recipients); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(submitter.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(submitter.calls))
	}
	if submitter.calls[0].Value.String() != "250" {
		t.Errorf("value = %s, want 250", submitter.calls[0].Value)
	}
}
