package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// ERC-165 interface ids used to classify a contract.
var (
	erc721InterfaceID  = mustInterfaceID(config.ERC721InterfaceID)
	erc1155InterfaceID = mustInterfaceID("d9b67a26")
)

func mustInterfaceID(hexID string) [4]byte {
	b, err := hex.DecodeString(hexID)
	if err != nil || len(b) != 4 {
		panic(fmt.Sprintf("bad interface id %q", hexID))
	}
	var id [4]byte
	copy(id[:], b)
	return id
}

// Operators names the drop contracts whose permissions the descriptor
// reports: the allowance/approval checks are always relative to the
// contract that will move the tokens.
type Operators struct {
	Drop     common.Address
	Drop1155 common.Address
}

// FetchToken builds an immutable token descriptor for one batch attempt:
// standard, metadata, the sender's balance, and whatever permission the
// relevant drop contract currently holds. The standard is probed via
// ERC-165, falling back to ERC-20 for contracts that predate it.
func (c *Client) FetchToken(ctx context.Context, contract, owner common.Address, ops Operators) (models.Token, error) {
	switch {
	case c.supportsInterface(ctx, contract, erc721InterfaceID):
		return c.fetchERC721(ctx, contract, owner, ops.Drop)
	case c.supportsInterface(ctx, contract, erc1155InterfaceID):
		return c.fetchERC1155(ctx, contract, owner, ops.Drop1155)
	default:
		return c.fetchERC20(ctx, contract, owner, ops.Drop)
	}
}

// NativeToken builds the descriptor for a native currency drop: 18 decimals
// and the sender's wei balance, no contract surface at all.
func (c *Client) NativeToken(ctx context.Context, owner common.Address, symbol string) (models.Token, error) {
	balance, err := c.NativeBalance(ctx, owner)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}
	return models.Token{
		Standard: models.StandardNative,
		Symbol:   symbol,
		Decimals: 18,
		Balance:  balance,
	}, nil
}

func (c *Client) fetchERC20(ctx context.Context, contract, owner, spender common.Address) (models.Token, error) {
	name, err := c.name(ctx, contract)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrTokenLookupFailed, err)
	}
	symbol, err := c.symbol(ctx, contract)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrTokenLookupFailed, err)
	}
	decimals, err := c.decimals(ctx, contract)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrTokenLookupFailed, err)
	}
	balance, err := c.erc20BalanceOf(ctx, contract, owner)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}
	allowance, err := c.allowance(ctx, contract, owner, spender)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}

	slog.Debug("erc20 token fetched",
		"contract", contract.Hex(),
		"symbol", symbol,
		"decimals", decimals,
		"balance", balance.String(),
		"allowance", allowance.String(),
	)

	return models.Token{
		Standard:        models.StandardERC20,
		ContractAddress: contract,
		Name:            name,
		Symbol:          symbol,
		Decimals:        decimals,
		Balance:         balance,
		Allowance:       allowance,
	}, nil
}

func (c *Client) fetchERC721(ctx context.Context, contract, owner, operator common.Address) (models.Token, error) {
	name, err := c.name(ctx, contract)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrTokenLookupFailed, err)
	}
	symbol, err := c.symbol(ctx, contract)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrTokenLookupFailed, err)
	}
	balance, err := c.erc20BalanceOf(ctx, contract, owner)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}
	approved, err := c.isApprovedForAll(ctx, contract, owner, operator)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}

	return models.Token{
		Standard:         models.StandardERC721,
		ContractAddress:  contract,
		Name:             name,
		Symbol:           symbol,
		Decimals:         0,
		Balance:          balance,
		IsApprovedForAll: approved,
	}, nil
}

func (c *Client) fetchERC1155(ctx context.Context, contract, owner, operator common.Address) (models.Token, error) {
	// 1155 metadata is optional; name/symbol failures are tolerated.
	name, _ := c.name(ctx, contract)
	symbol, _ := c.symbol(ctx, contract)

	approved, err := c.isApprovedForAll(ctx, contract, owner, operator)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", config.ErrBalanceFetchFailed, err)
	}

	// No aggregate balance exists for 1155; sufficiency is checked per
	// token id by the monitor.
	return models.Token{
		Standard:         models.StandardERC1155,
		ContractAddress:  contract,
		Name:             name,
		Symbol:           symbol,
		Decimals:         0,
		Balance:          big.NewInt(0),
		IsApprovedForAll: approved,
	}, nil
}
