package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Caller is the minimal eth client interface the engine reads through.
// ethclient.Client satisfies it; tests supply a mock.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// 4-byte selectors for the read calls the engine issues.
var (
	balanceOfSelector         = crypto.Keccak256([]byte("balanceOf(address)"))[:4]
	balanceOf1155Selector     = crypto.Keccak256([]byte("balanceOf(address,uint256)"))[:4]
	allowanceSelector         = crypto.Keccak256([]byte("allowance(address,address)"))[:4]
	isApprovedForAllSelector  = crypto.Keccak256([]byte("isApprovedForAll(address,address)"))[:4]
	decimalsSelector          = crypto.Keccak256([]byte("decimals()"))[:4]
	nameSelector              = crypto.Keccak256([]byte("name()"))[:4]
	symbolSelector            = crypto.Keccak256([]byte("symbol()"))[:4]
	supportsInterfaceSelector = crypto.Keccak256([]byte("supportsInterface(bytes4)"))[:4]
)

// Client is a rate-limited read-only view of the chain. It never signs or
// broadcasts anything.
type Client struct {
	caller Caller
	rl     *RateLimiter
	rpcURL string
}

// Dial connects to a JSON-RPC endpoint.
func Dial(rpcURL string, rps int) (*Client, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC %s: %w", rpcURL, err)
	}

	slog.Info("rpc client connected", "rpcURL", rpcURL, "rps", rps)

	return &Client{
		caller: ec,
		rl:     NewRateLimiter(rpcURL, rps),
		rpcURL: rpcURL,
	}, nil
}

// NewClient wraps an existing caller; used by tests.
func NewClient(caller Caller, rl *RateLimiter) *Client {
	return &Client{caller: caller, rl: rl}
}

// NativeBalance fetches the sender's native currency balance in wei.
func (c *Client) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	balance, err := c.caller.BalanceAt(ctx, owner, nil)
	if err != nil {
		return nil, fmt.Errorf("native balance for %s: %w", owner.Hex(), err)
	}
	return balance, nil
}

// ERC1155BalanceOf fetches the per-id balance via balanceOf(address,uint256).
func (c *Client) ERC1155BalanceOf(ctx context.Context, contract, owner common.Address, tokenID *big.Int) (*big.Int, error) {
	data := make([]byte, 0, 68)
	data = append(data, balanceOf1155Selector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(tokenID.Bytes(), 32)...)

	result, err := c.callContract(ctx, contract, data)
	if err != nil {
		return nil, fmt.Errorf("balanceOf(%s, %s): %w", owner.Hex(), tokenID, err)
	}
	return bytesToUint(result)
}

// erc20BalanceOf fetches an ERC-20/721 balanceOf(address).
func (c *Client) erc20BalanceOf(ctx context.Context, contract, owner common.Address) (*big.Int, error) {
	data := make([]byte, 0, 36)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)

	result, err := c.callContract(ctx, contract, data)
	if err != nil {
		return nil, fmt.Errorf("balanceOf(%s): %w", owner.Hex(), err)
	}
	return bytesToUint(result)
}

// allowance fetches the ERC-20 allowance granted by owner to spender.
func (c *Client) allowance(ctx context.Context, contract, owner, spender common.Address) (*big.Int, error) {
	data := make([]byte, 0, 68)
	data = append(data, allowanceSelector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(spender.Bytes(), 32)...)

	result, err := c.callContract(ctx, contract, data)
	if err != nil {
		return nil, fmt.Errorf("allowance(%s, %s): %w", owner.Hex(), spender.Hex(), err)
	}
	return bytesToUint(result)
}

// isApprovedForAll fetches the operator approval flag.
func (c *Client) isApprovedForAll(ctx context.Context, contract, owner, operator common.Address) (bool, error) {
	data := make([]byte, 0, 68)
	data = append(data, isApprovedForAllSelector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(operator.Bytes(), 32)...)

	result, err := c.callContract(ctx, contract, data)
	if err != nil {
		return false, fmt.Errorf("isApprovedForAll(%s, %s): %w", owner.Hex(), operator.Hex(), err)
	}
	n, err := bytesToUint(result)
	if err != nil {
		return false, err
	}
	return n.Sign() != 0, nil
}

// supportsInterface probes ERC-165 support for an interface id. A revert is
// treated as "no": pre-165 contracts reject the call outright.
func (c *Client) supportsInterface(ctx context.Context, contract common.Address, interfaceID [4]byte) bool {
	data := make([]byte, 0, 36)
	data = append(data, supportsInterfaceSelector...)
	data = append(data, common.RightPadBytes(interfaceID[:], 32)...)

	result, err := c.callContract(ctx, contract, data)
	if err != nil || len(result) < 32 {
		return false
	}
	return new(big.Int).SetBytes(result[:32]).Sign() != 0
}

// decimals fetches the ERC-20 decimal precision.
func (c *Client) decimals(ctx context.Context, contract common.Address) (uint8, error) {
	result, err := c.callContract(ctx, contract, decimalsSelector)
	if err != nil {
		return 0, fmt.Errorf("decimals(): %w", err)
	}
	n, err := bytesToUint(result)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() || n.Uint64() > 77 {
		return 0, fmt.Errorf("implausible decimals value %s", n)
	}
	return uint8(n.Uint64()), nil
}

// name fetches the token name; a revert yields an empty string.
func (c *Client) name(ctx context.Context, contract common.Address) (string, error) {
	result, err := c.callContract(ctx, contract, nameSelector)
	if err != nil {
		return "", fmt.Errorf("name(): %w", err)
	}
	return decodeString(result), nil
}

// symbol fetches the token symbol.
func (c *Client) symbol(ctx context.Context, contract common.Address) (string, error) {
	result, err := c.callContract(ctx, contract, symbolSelector)
	if err != nil {
		return "", fmt.Errorf("symbol(): %w", err)
	}
	return decodeString(result), nil
}

func (c *Client) callContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	return c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
}

func bytesToUint(result []byte) (*big.Int, error) {
	if len(result) < 32 {
		return nil, fmt.Errorf("call returned %d bytes, expected 32", len(result))
	}
	return new(big.Int).SetBytes(result[:32]), nil
}

// decodeString unpacks an ABI-encoded dynamic string return value. Some
// legacy tokens return bytes32 instead; that case falls back to trimming the
// fixed word.
func decodeString(result []byte) string {
	if len(result) == 32 {
		return string(trimRightZeros(result))
	}
	if len(result) < 64 {
		return ""
	}
	// Compare with subtraction only: adding to attacker-supplied offsets or
	// lengths can wrap around uint64 and defeat the bounds check.
	size := uint64(len(result))
	offset := new(big.Int).SetBytes(result[:32])
	if !offset.IsUint64() || offset.Uint64() > size-32 {
		return ""
	}
	start := offset.Uint64()
	length := new(big.Int).SetBytes(result[start : start+32])
	if !length.IsUint64() || length.Uint64() > size-start-32 {
		return ""
	}
	return string(result[start+32 : start+32+length.Uint64()])
}

func trimRightZeros(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}
