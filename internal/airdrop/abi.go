package airdrop

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ABI fragments for the batch-drop contracts and the token approval
// surfaces the engine constructs calls against.
const (
	dropABIJSON = `[
		{"type":"function","name":"airdropETH","stateMutability":"payable","inputs":[
			{"name":"addresses","type":"address[]"},
			{"name":"amounts","type":"uint256[]"}],"outputs":[]},
		{"type":"function","name":"airdropERC20","stateMutability":"nonpayable","inputs":[
			{"name":"token","type":"address"},
			{"name":"addresses","type":"address[]"},
			{"name":"amounts","type":"uint256[]"},
			{"name":"totalAmount","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"airdropERC721","stateMutability":"nonpayable","inputs":[
			{"name":"nft","type":"address"},
			{"name":"addresses","type":"address[]"},
			{"name":"tokenIds","type":"uint256[]"}],"outputs":[]}
	]`

	drop1155ABIJSON = `[
		{"type":"function","name":"airdropERC1155","stateMutability":"nonpayable","inputs":[
			{"name":"nft","type":"address"},
			{"name":"airdropTokens","type":"tuple[]","components":[
				{"name":"tokenId","type":"uint256"},
				{"name":"airdropAmounts","type":"tuple[]","components":[
					{"name":"amount","type":"uint256"},
					{"name":"recipients","type":"address[]"}]}]}],"outputs":[]}
	]`

	erc20ApproveABIJSON = `[
		{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[
			{"name":"spender","type":"address"},
			{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
	]`

	setApprovalForAllABIJSON = `[
		{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[
			{"name":"operator","type":"address"},
			{"name":"approved","type":"bool"}],"outputs":[]}
	]`
)

var (
	dropABI              = mustParseABI(dropABIJSON)
	drop1155ABI          = mustParseABI(drop1155ABIJSON)
	erc20ApproveABI      = mustParseABI(erc20ApproveABIJSON)
	setApprovalForAllABI = mustParseABI(setApprovalForAllABIJSON)
)

func mustParseABI(src string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("parse embedded ABI: %v", err))
	}
	return parsed
}

// Packing shapes for the nested ERC-1155 tuple argument. Field names must
// mirror the ABI component names for the abi package to match them.
type airdropTokenAmount struct {
	Amount     *big.Int
	Recipients []common.Address
}

type airdropToken struct {
	TokenId        *big.Int
	AirdropAmounts []airdropTokenAmount
}
