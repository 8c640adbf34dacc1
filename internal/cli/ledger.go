// Package cli holds the flag groups and output helpers shared by the analysis binaries.
package cli

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/blockchaininfo"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"go.uber.org/zap"
)

// LedgerOptions selects and configures the ledger source. Embed it in a binary's config
// with a group tag.
type LedgerOptions struct {
	Provider      model.Provider `long:"provider" env:"PROVIDER" description:"ledger provider" choice:"blockchaininfo" choice:"bitcoincore" default:"blockchaininfo"`
	Network       model.Network  `long:"network" env:"NETWORK" description:"network name" choice:"mainnet" choice:"testnet" default:"mainnet"`
	APIURL        string         `long:"api-url" env:"API_URL" description:"blockchain.info base URL" default:"https://blockchain.info"`
	Timeout       time.Duration  `long:"timeout" env:"TIMEOUT" description:"blockchain.info request timeout" default:"15s"`
	RPCURL        string         `long:"rpc-url" env:"RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string         `long:"rpc-user" env:"RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string         `long:"rpc-password" env:"RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPS           int            `long:"rps" env:"RPS" description:"max ledger requests per second, 0 disables pacing" default:"5"`
	DecodeScripts bool           `long:"decode-scripts" env:"DECODE_SCRIPTS" description:"derive missing output addresses from scripts"`
}

// Open builds the configured ledger source. The returned close func releases provider
// resources and is never nil.
func (o LedgerOptions) Open(logger *zap.Logger) (chain.LedgerSource, func(), error) {
	noop := func() {}
	ledgerMetrics := metrics.NewLedgerClient(o.Provider, o.Network)

	switch o.Provider {
	case model.BlockchainInfo:
		client, err := blockchaininfo.New(blockchaininfo.Config{
			BaseURL:       o.APIURL,
			Network:       o.Network,
			RPS:           o.RPS,
			Timeout:       o.Timeout,
			DecodeScripts: o.DecodeScripts,
		}, ledgerMetrics, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("init blockchain.info client: %w", err)
		}
		return client, noop, nil

	case model.BitcoinCore:
		rpcClient, err := newRPCClient(o.RPCURL, o.RPCUser, o.RPCPassword)
		if err != nil {
			return nil, noop, fmt.Errorf("init bitcoin rpc client: %w", err)
		}
		closeFn := func() {
			rpcClient.Shutdown()
			rpcClient.WaitForShutdown()
		}
		source, err := bitcoin.NewSource(
			bitcoin.NewObservedClient(rpcClient, ledgerMetrics),
			bitcoin.Config{Network: o.Network, RPS: o.RPS, DecodeScripts: o.DecodeScripts},
			logger,
		)
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return source, closeFn, nil

	default:
		return nil, noop, fmt.Errorf("%w: provider %q", chain.ErrValidation, o.Provider)
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}
