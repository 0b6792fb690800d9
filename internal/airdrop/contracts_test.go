package airdrop

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dropforge/dropforge/internal/config"
)

func TestResolveContracts_KnownChain(t *testing.T) {
	cfg := &config.Config{ChainID: config.ChainIDBase}

	c, err := ResolveContracts(cfg)
	if err != nil {
		t.Fatalf("ResolveContracts() error = %v", err)
	}
	if c.Drop != common.HexToAddress(config.DropContracts[config.ChainIDBase]) {
		t.Errorf("drop = %s", c.Drop.Hex())
	}
	if !c.Has1155 {
		t.Error("Base carries a 1155 deployment")
	}
}

func TestResolveContracts_ChainWithout1155(t *testing.T) {
	cfg := &config.Config{ChainID: config.ChainIDBlast}

	c, err := ResolveContracts(cfg)
	if err != nil {
		t.Fatalf("ResolveContracts() error = %v", err)
	}
	if c.Has1155 {
		t.Error("Blast has no 1155 deployment")
	}
}

func TestResolveContracts_UnknownChain(t *testing.T) {
	cfg := &config.Config{ChainID: 999999}

	_, err := ResolveContracts(cfg)
	if !errors.Is(err, config.ErrNoDropContract) {
		t.Errorf("error = %v, want ErrNoDropContract", err)
	}
}

func TestResolveContracts_EnvOverride(t *testing.T) {
	override := "0x5555555555555555555555555555555555555555"
	cfg := &config.Config{ChainID: 999999, DropContract: override}

	c, err := ResolveContracts(cfg)
	if err != nil {
		t.Fatalf("ResolveContracts() error = %v", err)
	}
	if c.Drop != common.HexToAddress(override) {
		t.Errorf("drop = %s, want override", c.Drop.Hex())
	}
}

func TestResolveContracts_BadOverride(t *testing.T) {
	cfg := &config.Config{ChainID: 1, DropContract: "not-hex"}

	_, err := ResolveContracts(cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestExplorerTxURL(t *testing.T) {
	if got := ExplorerTxURL(config.ChainIDBase, "0xabc"); got != "https://basescan.org/tx/0xabc" {
		t.Errorf("url = %q", got)
	}
	// Unknown chains fall back to Etherscan.
	if got := ExplorerTxURL(424242, "0xabc"); got != "https://etherscan.io/tx/0xabc" {
		t.Errorf("fallback url = %q", got)
	}
}
