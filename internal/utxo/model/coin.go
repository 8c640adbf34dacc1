package model

// Network names the Bitcoin network a ledger source serves.
type Network string

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// Provider names the ledger query service backing a run.
type Provider string

var (
	// BlockchainInfo is the public blockchain.info REST API.
	BlockchainInfo Provider = "blockchaininfo"
	// BitcoinCore is a Bitcoin Core node reached over JSON-RPC.
	BitcoinCore Provider = "bitcoincore"
)
