package airdrop

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// TxCall is an unsigned contract call handed to the external submission
// collaborator. The engine never signs or broadcasts.
type TxCall struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}

// ApprovalCall builds the approval transaction that must confirm before the
// batch call runs. Returns nil when no approval is needed (native drops).
//
// ERC-20 grants the drop contract exactly the required total; ERC-721 and
// ERC-1155 grant the operator flag on the collection.
func ApprovalCall(token models.Token, required models.Requirement, contracts Contracts) (*TxCall, error) {
	switch token.Standard {
	case models.StandardNative:
		return nil, nil

	case models.StandardERC20:
		data, err := erc20ApproveABI.Pack("approve", contracts.Drop, required.Total)
		if err != nil {
			return nil, fmt.Errorf("pack approve: %w", err)
		}
		return &TxCall{To: token.ContractAddress, Data: data, Value: big.NewInt(0)}, nil

	case models.StandardERC721:
		data, err := setApprovalForAllABI.Pack("setApprovalForAll", contracts.Drop, true)
		if err != nil {
			return nil, fmt.Errorf("pack setApprovalForAll: %w", err)
		}
		return &TxCall{To: token.ContractAddress, Data: data, Value: big.NewInt(0)}, nil

	case models.StandardERC1155:
		if !contracts.Has1155 {
			return nil, fmt.Errorf("%w: no ERC-1155 deployment", config.ErrNoDropContract)
		}
		data, err := setApprovalForAllABI.Pack("setApprovalForAll", contracts.Drop1155, true)
		if err != nil {
			return nil, fmt.Errorf("pack setApprovalForAll: %w", err)
		}
		return &TxCall{To: token.ContractAddress, Data: data, Value: big.NewInt(0)}, nil

	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownStandard, token.Standard)
	}
}
