package airdrop

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
)

// Contracts holds the resolved batch-drop deployments for one chain.
type Contracts struct {
	Drop     common.Address
	Drop1155 common.Address
	Has1155  bool
}

// ResolveContracts looks up the drop deployments for the configured chain,
// honoring env overrides. A missing 1155 deployment is not an error, since
// some chains only carry the base contract, but a chain with no base
// deployment and no override cannot airdrop at all.
func ResolveContracts(cfg *config.Config) (Contracts, error) {
	var c Contracts

	drop := cfg.DropContract
	if drop == "" {
		drop = config.DropContracts[cfg.ChainID]
	}
	if drop == "" {
		return c, fmt.Errorf("%w: chain %d", config.ErrNoDropContract, cfg.ChainID)
	}
	if !common.IsHexAddress(drop) {
		return c, fmt.Errorf("%w: drop contract %q is not an address", config.ErrInvalidConfig, drop)
	}
	c.Drop = common.HexToAddress(drop)

	drop1155 := cfg.Drop1155Contract
	if drop1155 == "" {
		drop1155 = config.Drop1155Contracts[cfg.ChainID]
	}
	if drop1155 != "" {
		if !common.IsHexAddress(drop1155) {
			return c, fmt.Errorf("%w: 1155 drop contract %q is not an address", config.ErrInvalidConfig, drop1155)
		}
		c.Drop1155 = common.HexToAddress(drop1155)
		c.Has1155 = true
	}

	return c, nil
}

// ExplorerTxURL returns the explorer link for a transaction on the given
// chain, falling back to Etherscan mainnet.
func ExplorerTxURL(chainID int64, txHash string) string {
	prefix, ok := config.ExplorerTxURLs[chainID]
	if !ok {
		prefix = config.ExplorerTxURLs[config.ChainIDMainnet]
	}
	return prefix + txHash
}
