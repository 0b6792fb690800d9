package airdrop

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
	"github.com/dropforge/dropforge/internal/models"
)

// Encode reshapes the validated recipient set into the exact call the batch
// contract expects and packs the calldata. Excluded recipients are filtered
// out here, immediately before grouping; the source list keeps its order.
func Encode(token models.Token, recipients []models.Recipient, contracts Contracts) (*models.EncodedBatch, error) {
	active := Active(recipients)
	if len(active) == 0 {
		return nil, config.ErrEmptyBatch
	}

	required := Compute(token.Standard, recipients)

	switch token.Standard {
	case models.StandardERC1155:
		return encodeERC1155(token, active, contracts)

	case models.StandardERC721:
		addresses, ids := parallelArrays(active)
		calldata, err := dropABI.Pack("airdropERC721", token.ContractAddress, addresses, ids)
		if err != nil {
			return nil, fmt.Errorf("pack airdropERC721: %w", err)
		}
		return &models.EncodedBatch{
			To:           contracts.Drop,
			FunctionName: "airdropERC721",
			Calldata:     calldata,
			Value:        big.NewInt(0),
			Addresses:    addresses,
			Amounts:      ids,
		}, nil

	case models.StandardERC20:
		addresses, amounts := parallelArrays(active)
		calldata, err := dropABI.Pack("airdropERC20", token.ContractAddress, addresses, amounts, required.Total)
		if err != nil {
			return nil, fmt.Errorf("pack airdropERC20: %w", err)
		}
		return &models.EncodedBatch{
			To:           contracts.Drop,
			FunctionName: "airdropERC20",
			Calldata:     calldata,
			Value:        big.NewInt(0),
			Addresses:    addresses,
			Amounts:      amounts,
		}, nil

	case models.StandardNative:
		addresses, amounts := parallelArrays(active)
		calldata, err := dropABI.Pack("airdropETH", addresses, amounts)
		if err != nil {
			return nil, fmt.Errorf("pack airdropETH: %w", err)
		}
		return &models.EncodedBatch{
			To:           contracts.Drop,
			FunctionName: "airdropETH",
			Calldata:     calldata,
			Value:        required.Total,
			Addresses:    addresses,
			Amounts:      amounts,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownStandard, token.Standard)
	}
}

func encodeERC1155(token models.Token, active []models.Recipient, contracts Contracts) (*models.EncodedBatch, error) {
	if !contracts.Has1155 {
		return nil, fmt.Errorf("%w: no ERC-1155 deployment", config.ErrNoDropContract)
	}

	groups := GroupERC1155(active)

	packed := make([]airdropToken, len(groups))
	for i, g := range groups {
		amounts := make([]airdropTokenAmount, len(g.Groups))
		for j, ag := range g.Groups {
			amounts[j] = airdropTokenAmount{Amount: ag.Amount, Recipients: ag.Recipients}
		}
		packed[i] = airdropToken{TokenId: g.TokenID, AirdropAmounts: amounts}
	}

	calldata, err := drop1155ABI.Pack("airdropERC1155", token.ContractAddress, packed)
	if err != nil {
		return nil, fmt.Errorf("pack airdropERC1155: %w", err)
	}

	slog.Debug("erc1155 batch grouped",
		"recipients", len(active),
		"tokenIds", len(groups),
	)

	return &models.EncodedBatch{
		To:           contracts.Drop1155,
		FunctionName: "airdropERC1155",
		Calldata:     calldata,
		Value:        big.NewInt(0),
		Groups:       groups,
	}, nil
}

// GroupERC1155 regroups a flat recipient list into the nested shape the 1155
// batch call expects: recipients partitioned by token id, then by amount
// within each id, both in first-occurrence order. Every active recipient
// lands in exactly one leaf list, so flattening the groups reconstructs the
// input multiset.
func GroupERC1155(active []models.Recipient) []models.TokenGroup {
	idIndex := make(map[string]int, len(active))
	groups := make([]models.TokenGroup, 0, len(active))

	for _, r := range active {
		idKey := r.TokenID.String()
		gi, seen := idIndex[idKey]
		if !seen {
			idIndex[idKey] = len(groups)
			groups = append(groups, models.TokenGroup{
				TokenID: new(big.Int).Set(r.TokenID),
			})
			gi = len(groups) - 1
		}

		group := &groups[gi]
		amountKey := r.Amount.String()
		found := false
		for ai := range group.Groups {
			if group.Groups[ai].Amount.String() == amountKey {
				group.Groups[ai].Recipients = append(group.Groups[ai].Recipients, r.Address)
				found = true
				break
			}
		}
		if !found {
			group.Groups = append(group.Groups, models.AmountGroup{
				Amount:     new(big.Int).Set(r.Amount),
				Recipients: []common.Address{r.Address},
			})
		}
	}

	return groups
}

func parallelArrays(active []models.Recipient) ([]common.Address, []*big.Int) {
	addresses := make([]common.Address, len(active))
	amounts := make([]*big.Int, len(active))
	for i, r := range active {
		addresses[i] = r.Address
		amounts[i] = r.Amount
	}
	return addresses, amounts
}
