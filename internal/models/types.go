package models

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Standard represents a supported token standard.
type Standard string

const (
	StandardNative  Standard = "NATIVE"
	StandardERC20   Standard = "ERC20"
	StandardERC721  Standard = "ERC721"
	StandardERC1155 Standard = "ERC1155"
)

// AllStandards is the ordered list of supported standards.
var AllStandards = []Standard{StandardNative, StandardERC20, StandardERC721, StandardERC1155}

// ParseStandard normalizes a user-supplied standard string.
func ParseStandard(s string) (Standard, error) {
	switch Standard(strings.ToUpper(strings.TrimSpace(s))) {
	case StandardNative:
		return StandardNative, nil
	case StandardERC20:
		return StandardERC20, nil
	case StandardERC721:
		return StandardERC721, nil
	case StandardERC1155:
		return StandardERC1155, nil
	}
	return "", fmt.Errorf("unsupported standard %q", s)
}

// Fungible reports whether amounts for this standard are scaled by decimals.
func (s Standard) Fungible() bool {
	return s == StandardNative || s == StandardERC20
}

// Recipient is the canonical unit of work for a batch.
//
// The meaning of Amount depends on the batch standard: the scaled transfer
// value for NATIVE/ERC20, the token id for ERC721, and the per-id quantity
// for ERC1155. TokenID is set only for ERC1155 recipients; the validator
// guarantees it is nil for every other standard.
type Recipient struct {
	Address  common.Address
	Amount   *big.Int
	TokenID  *big.Int
	Excluded bool
}

// Token is an immutable descriptor of the asset being dropped, fetched per
// batch attempt by the chain collaborator and never mutated by the engine.
type Token struct {
	Standard         Standard
	ContractAddress  common.Address // zero address for native drops
	Name             string
	Symbol           string
	Decimals         uint8
	Balance          *big.Int
	Allowance        *big.Int // ERC-20 only
	IsApprovedForAll bool     // ERC-721/1155 only
}

// TokenIDTotal is the required amount for one ERC-1155 token id.
type TokenIDTotal struct {
	TokenID *big.Int
	Total   *big.Int
}

// Requirement is the value a batch call will consume. Derived fresh from the
// current recipient set each time; never cached across exclusion toggles.
type Requirement struct {
	Total *big.Int
	// PerTokenID holds ERC-1155 per-id sums in first-occurrence order.
	// Nil for other standards.
	PerTokenID []TokenIDTotal
}

// AmountGroup is a leaf of the ERC-1155 batch shape: every listed address
// receives exactly Amount units of the enclosing token id.
type AmountGroup struct {
	Amount     *big.Int
	Recipients []common.Address
}

// TokenGroup collects the amount groups for one ERC-1155 token id.
type TokenGroup struct {
	TokenID *big.Int
	Groups  []AmountGroup
}

// EncodedBatch is the call-ready structure handed to the submission
// collaborator. Built once per submission attempt and discarded after use.
type EncodedBatch struct {
	To           common.Address // the drop contract
	FunctionName string
	Calldata     []byte
	Value        *big.Int // native drops carry the required total as call value

	// Positional arguments, kept for display alongside the packed calldata.
	Addresses []common.Address
	Amounts   []*big.Int
	Groups    []TokenGroup // ERC-1155 only
}

// Drop is a recorded batch submission.
type Drop struct {
	ID             int64  `json:"id"`
	ChainID        int64  `json:"chainId"`
	Standard       string `json:"standard"`
	TokenAddress   string `json:"tokenAddress,omitempty"`
	RecipientCount int    `json:"recipientCount"`
	RequiredTotal  string `json:"requiredTotal"`
	TxHash         string `json:"txHash,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

// Drop statuses.
const (
	DropStatusPrepared  = "prepared"
	DropStatusSubmitted = "submitted"
	DropStatusFailed    = "failed"
)

// APIError is the standard error response.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail contains error code and message.
type APIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
