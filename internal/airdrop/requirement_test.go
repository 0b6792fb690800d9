package airdrop

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/models"
)

var (
	testAddrA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAddrB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testAddrC = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func recipient(addr common.Address, amount int64) models.Recipient {
	return models.Recipient{Address: addr, Amount: big.NewInt(amount)}
}

func recipient1155(addr common.Address, tokenID, amount int64) models.Recipient {
	return models.Recipient{Address: addr, TokenID: big.NewInt(tokenID), Amount: big.NewInt(amount)}
}

func TestCompute_FungibleSum(t *testing.T) {
	recipients := []models.Recipient{
		recipient(testAddrA, 100),
		recipient(testAddrB, 250),
		recipient(testAddrC, 50),
	}

	required := Compute(models.StandardERC20, recipients)
	if required.Total.String() != "400" {
		t.Errorf("total = %s, want 400", required.Total)
	}
}

func TestCompute_SkipsExcluded(t *testing.T) {
	recipients := []models.Recipient{
		recipient(testAddrA, 100),
		recipient(testAddrB, 250),
	}
	recipients[1].Excluded = true

	required := Compute(models.StandardERC20, recipients)
	if required.Total.String() != "100" {
		t.Errorf("total = %s, want 100", required.Total)
	}
}

func TestCompute_ERC721Count(t *testing.T) {
	recipients := []models.Recipient{
		recipient(testAddrA, 7),
		recipient(testAddrB, 12),
		recipient(testAddrC, 99),
	}

	required := Compute(models.StandardERC721, recipients)
	if required.Total.String() != "3" {
		t.Errorf("total = %s, want 3", required.Total)
	}
}

func TestCompute_ERC1155PerTokenID(t *testing.T) {
	recipients := []models.Recipient{
		recipient1155(testAddrA, 2, 5),
		recipient1155(testAddrB, 1, 3),
		recipient1155(testAddrC, 2, 4),
	}

	required := Compute(models.StandardERC1155, recipients)
	if required.Total.Sign() != 0 {
		t.Errorf("total = %s, want 0", required.Total)
	}
	if len(required.PerTokenID) != 2 {
		t.Fatalf("got %d id totals, want 2", len(required.PerTokenID))
	}
	// First-occurrence order: id 2 before id 1.
	if required.PerTokenID[0].TokenID.String() != "2" || required.PerTokenID[0].Total.String() != "9" {
		t.Errorf("id total 0 = %+v", required.PerTokenID[0])
	}
	if required.PerTokenID[1].TokenID.String() != "1" || required.PerTokenID[1].Total.String() != "3" {
		t.Errorf("id total 1 = %+v", required.PerTokenID[1])
	}
}

func TestCompute_RecomputesAfterToggle(t *testing.T) {
	recipients := []models.Recipient{
		recipient(testAddrA, 100),
		recipient(testAddrB, 200),
	}

	toggled := ToggleExclusion(recipients, 0)
	if got := Compute(models.StandardERC20, toggled); got.Total.String() != "200" {
		t.Errorf("after exclude: total = %s, want 200", got.Total)
	}

	restored := ToggleExclusion(toggled, 0)
	if got := Compute(models.StandardERC20, restored); got.Total.String() != "300" {
		t.Errorf("after re-include: total = %s, want 300", got.Total)
	}
}

func TestToggleExclusion_InputUntouched(t *testing.T) {
	recipients := []models.Recipient{recipient(testAddrA, 1)}

	out := ToggleExclusion(recipients, 0)
	if !out[0].Excluded {
		t.Error("toggle did not set flag")
	}
	if recipients[0].Excluded {
		t.Error("input slice mutated")
	}

	if got := ToggleExclusion(recipients, 5); len(got) != 1 || got[0].Excluded {
		t.Errorf("out-of-range toggle changed slice: %v", got)
	}
}

func TestActive_PreservesOrder(t *testing.T) {
	recipients := []models.Recipient{
		recipient(testAddrA, 1),
		recipient(testAddrB, 2),
		recipient(testAddrC, 3),
	}
	recipients[1].Excluded = true

	active := Active(recipients)
	if len(active) != 2 {
		t.Fatalf("got %d active, want 2", len(active))
	}
	if active[0].Address != testAddrA || active[1].Address != testAddrC {
		t.Errorf("order not preserved: %v", active)
	}
}

func TestHasApprovals(t *testing.T) {
	required := models.Requirement{Total: big.NewInt(100)}

	tests := []struct {
		name  string
		token models.Token
		want  bool
	}{
		{"native never needs approval", models.Token{Standard: models.StandardNative}, true},
		{"erc20 allowance covers", models.Token{Standard: models.StandardERC20, Allowance: big.NewInt(100)}, true},
		{"erc20 allowance exceeds", models.Token{Standard: models.StandardERC20, Allowance: big.NewInt(101)}, true},
		{"erc20 allowance short", models.Token{Standard: models.StandardERC20, Allowance: big.NewInt(99)}, false},
		{"erc20 nil allowance", models.Token{Standard: models.StandardERC20}, false},
		{"erc721 operator set", models.Token{Standard: models.StandardERC721, IsApprovedForAll: true}, true},
		{"erc721 operator unset", models.Token{Standard: models.StandardERC721}, false},
		{"erc1155 operator set", models.Token{Standard: models.StandardERC1155, IsApprovedForAll: true}, true},
		{"erc1155 operator unset", models.Token{Standard: models.StandardERC1155}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasApprovals(tt.token, required); got != tt.want {
				t.Errorf("HasApprovals() = %v, want %v", got, tt.want)
			}
		})
	}
}
