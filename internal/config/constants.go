package config

import "time"

// Chain IDs with a known batch-drop deployment.
const (
	ChainIDMainnet     = 1
	ChainIDOptimism    = 10
	ChainIDBSC         = 56
	ChainIDPolygon     = 137
	ChainIDZora        = 7777777
	ChainIDBase        = 8453
	ChainIDArbitrum    = 42161
	ChainIDSepolia     = 11155111
	ChainIDBaseSepolia = 84532
	ChainIDBlast       = 81457
	ChainIDDegen       = 666666666
	ChainIDSanko       = 1996
	ChainIDApeChain    = 33139
	ChainIDAbstract    = 2741
)

// DropContracts maps chain id to the deployed batch-drop contract handling
// native, ERC-20, and ERC-721 airdrops.
var DropContracts = map[int64]string{
	ChainIDMainnet:     "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDSepolia:     "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDArbitrum:    "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDOptimism:    "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDPolygon:     "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDBase:        "0x09350F89e2D7B6e96bA730783c2d76137B045FEF",
	ChainIDBaseSepolia: "0xf6c3555139aeA30f4a2be73EBC46ba64BAB8ac12",
	ChainIDBSC:         "0xf6c3555139aeA30f4a2be73EBC46ba64BAB8ac12",
	ChainIDBlast:       "0x2EA391c57bDE02019EFbBEb0C05f104877c975C4",
	ChainIDZora:        "0x0eBa170fDC5edC7f528AdbEebC6a1bFc55343181",
	ChainIDDegen:       "0x0eBa170fDC5edC7f528AdbEebC6a1bFc55343181",
	ChainIDSanko:       "0x0eBa170fDC5edC7f528AdbEebC6a1bFc55343181",
	ChainIDApeChain:    "0x54b5cd30582ddc305d814c95138a5bce04419249",
	ChainIDAbstract:    "0xe231Aa7183862CEe136D8414E5638764c4297E79",
}

// Drop1155Contracts maps chain id to the deployed ERC-1155 batch-drop
// contract. The 1155 variant is not deployed everywhere.
var Drop1155Contracts = map[int64]string{
	ChainIDMainnet:     "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDSepolia:     "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDArbitrum:    "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDOptimism:    "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDPolygon:     "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDBase:        "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDBaseSepolia: "0x1155D79afC98dad97Ee4b0c747398DcF5b631155",
	ChainIDBSC:         "0x53d097F8f78Ada73085fAF3A4c36B9Ec58E7E172",
	ChainIDSanko:       "0xeCC9a57543bFDe6BBc01420680Fc4a1BC51B6D1A",
}

// ExplorerTxURLs maps chain id to the explorer transaction URL prefix.
var ExplorerTxURLs = map[int64]string{
	ChainIDMainnet:     "https://etherscan.io/tx/",
	ChainIDSepolia:     "https://sepolia.etherscan.io/tx/",
	ChainIDOptimism:    "https://optimistic.etherscan.io/tx/",
	ChainIDArbitrum:    "https://arbiscan.io/tx/",
	ChainIDPolygon:     "https://polygonscan.com/tx/",
	ChainIDBase:        "https://basescan.org/tx/",
	ChainIDBaseSepolia: "https://sepolia.basescan.org/tx/",
	ChainIDBSC:         "https://bscscan.com/tx/",
	ChainIDZora:        "https://zora.superscan.network/tx/",
	ChainIDBlast:       "https://blastscan.io/tx/",
	ChainIDDegen:       "https://explorer.degen.tips/tx/",
	ChainIDSanko:       "https://explorer.sanko.xyz/tx/",
	ChainIDApeChain:    "https://apescan.io/tx/",
	ChainIDAbstract:    "https://abscan.org/tx/",
}

// ERC-165 interface id for ERC-721, used to probe a contract's standard.
const ERC721InterfaceID = "80ac58cd"

// Server
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 60 * time.Second
	APITimeout         = 30 * time.Second
)

// Logging
const (
	LogFilePattern = "dropforge-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)

// Parsing
const (
	// MaxRecipientsPerBatch caps a single batch call. The drop contracts
	// themselves have no limit; beyond this calldata exceeds practical
	// block gas anyway.
	MaxRecipientsPerBatch = 2_000
)
