package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

func TestRecipients_Fungible(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, Amount: "1.5"},
		{Address: addrB, Amount: "0.5"},
	}

	recipients, err := Recipients(models.StandardERC20, 18, tuples)
	if err != nil {
		t.Fatalf("Recipients() error = %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("got %d recipients, want 2", len(recipients))
	}
	if recipients[0].Address != common.HexToAddress(addrA) {
		t.Errorf("address = %s", recipients[0].Address.Hex())
	}
	if recipients[0].Amount.String() != "1500000000000000000" {
		t.Errorf("amount = %s", recipients[0].Amount)
	}
	if recipients[1].Amount.String() != "500000000000000000" {
		t.Errorf("amount = %s", recipients[1].Amount)
	}
}

func TestRecipients_ERC721(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, Amount: "7"},
		{Address: addrB, Amount: "12"},
	}

	recipients, err := Recipients(models.StandardERC721, 0, tuples)
	if err != nil {
		t.Fatalf("Recipients() error = %v", err)
	}
	// Token ids carry through unscaled.
	if recipients[0].Amount.String() != "7" || recipients[1].Amount.String() != "12" {
		t.Errorf("ids = %s, %s", recipients[0].Amount, recipients[1].Amount)
	}
}

func TestRecipients_ERC1155(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, TokenID: "1", Amount: "5"},
		{Address: addrB, TokenID: "2", Amount: "3"},
	}

	recipients, err := Recipients(models.StandardERC1155, 0, tuples)
	if err != nil {
		t.Fatalf("Recipients() error = %v", err)
	}
	if recipients[0].TokenID.String() != "1" || recipients[0].Amount.String() != "5" {
		t.Errorf("recipient 0 = %+v", recipients[0])
	}
	if recipients[1].TokenID.String() != "2" || recipients[1].Amount.String() != "3" {
		t.Errorf("recipient 1 = %+v", recipients[1])
	}
}

func TestRecipients_DropsHeaderRow(t *testing.T) {
	tuples := []Tuple{
		{Address: "address", Amount: "amount"},
		{Address: addrA, Amount: "5"},
	}

	recipients, err := Recipients(models.StandardERC20, 18, tuples)
	if err != nil {
		t.Fatalf("Recipients() error = %v", err)
	}
	if len(recipients) != 1 {
		t.Fatalf("got %d recipients, want 1 after header drop", len(recipients))
	}
}

func TestRecipients_HeaderOnlyIsEmpty(t *testing.T) {
	tuples := []Tuple{{Address: "address", Amount: "amount"}}
	_, err := Recipients(models.StandardERC20, 18, tuples)
	if !errors.Is(err, config.ErrEmptyBatch) {
		t.Errorf("error = %v, want ErrEmptyBatch", err)
	}
}

func TestRecipients_EmptyBatch(t *testing.T) {
	_, err := Recipients(models.StandardERC20, 18, nil)
	if !errors.Is(err, config.ErrEmptyBatch) {
		t.Errorf("error = %v, want ErrEmptyBatch", err)
	}
}

func TestRecipients_BatchTooLarge(t *testing.T) {
	tuples := make([]Tuple, config.MaxRecipientsPerBatch+1)
	for i := range tuples {
		tuples[i] = Tuple{Address: addrA, Amount: "1"}
	}
	_, err := Recipients(models.StandardERC20, 18, tuples)
	if !errors.Is(err, config.ErrBatchTooLarge) {
		t.Errorf("error = %v, want ErrBatchTooLarge", err)
	}
}

func TestRecipients_WholeBatchFailsOnOneBadRow(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, Amount: "5"},
		{Address: addrB, Amount: "bogus"},
		{Address: addrC, Amount: "3"},
	}

	_, err := Recipients(models.StandardERC20, 18, tuples)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, config.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
	// The failing row is named for the user.
	if want := "row 2"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name %q", err, want)
	}
}

func TestRecipients_InvalidAddressMidBatch(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, Amount: "5"},
		{Address: "0xZZ", Amount: "5"},
	}

	_, err := Recipients(models.StandardERC20, 18, tuples)
	if !errors.Is(err, config.ErrInvalidAddress) {
		t.Errorf("error = %v, want ErrInvalidAddress", err)
	}
}

func TestRecipients_InvalidTokenID(t *testing.T) {
	tuples := []Tuple{
		{Address: addrA, TokenID: "x", Amount: "5"},
	}

	_, err := Recipients(models.StandardERC1155, 0, tuples)
	if !errors.Is(err, config.ErrInvalidTokenID) {
		t.Errorf("error = %v, want ErrInvalidTokenID", err)
	}
}
