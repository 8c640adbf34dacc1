// Package bitcoin implements chain.LedgerSource on top of a Bitcoin Core node.
package bitcoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/normalize"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// getrawtransaction verbosity that includes previous outputs and the fee.
	txVerbosityPrevout = 2
	// getblock verbosity that includes transactions with previous outputs.
	blockVerbosityPrevout = 3
)

// Config configures a Source.
type Config struct {
	Network       model.Network
	RPS           int
	DecodeScripts bool
}

// Source is a ledger source backed by Bitcoin Core RPC. The node must run with
// txindex for FetchTransaction to resolve arbitrary transactions.
type Source struct {
	rpc        RPCClient
	limiter    *rate.Limiter
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

var _ chain.LedgerSource = (*Source)(nil)

// NewSource creates a Source reading through rpc.
func NewSource(rpc RPCClient, cfg Config, logger *zap.Logger) (*Source, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	// the node labels script addresses itself; decoding only fills gaps
	opts := []normalize.Option{}
	if cfg.DecodeScripts {
		decoder, err := normalize.NewScriptDecoder(cfg.Network)
		if err != nil {
			return nil, err
		}
		opts = append(opts, normalize.WithScriptDecoder(decoder))
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &Source{
		rpc:        rpc,
		limiter:    limiter,
		normalizer: normalize.New(normalize.BTC, opts...),
		logger:     logger.Named("bitcoin"),
	}, nil
}

// FetchBlocksAtHeight returns the active-chain block at height. The node only reports
// one block per height; an unknown height yields none.
func (s *Source) FetchBlocksAtHeight(ctx context.Context, height uint64) ([]model.BlockSummary, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("%w: block height %d exceeds rpc limit", chain.ErrValidation, height)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		if isOutOfRange(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get block hash at height %d: %v", chain.ErrService, height, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := s.rpc.GetBlockVerbose(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: get block %s: %v", chain.ErrService, hash, err)
	}
	summary, err := summaryFromVerbose(res)
	if err != nil {
		return nil, err
	}
	return []model.BlockSummary{summary}, nil
}

// FetchTransaction returns the transaction with previous outputs and the spent state of
// every spendable output.
func (s *Source) FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error) {
	hash, err := parseHash(txid)
	if err != nil {
		return nil, err
	}
	doc, err := s.raw(ctx, "getrawtransaction", txid, txVerbosityPrevout)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", txid, err)
	}
	tx, err := s.normalizer.Transaction(doc)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", txid, err)
	}
	if tx.TxID == "" {
		tx.TxID = txid
	}

	unspendable := nullDataOutputs(doc)
	for idx := range tx.Outputs {
		if unspendable[idx] {
			continue
		}
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", txid, err)
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		utxo, err := s.rpc.GetTxOut(hash, index, true)
		if err != nil {
			return nil, fmt.Errorf("%w: get tx out %s:%d: %v", chain.ErrService, txid, idx, err)
		}
		tx.Outputs[idx].Spent = model.Known(utxo == nil)
	}
	return tx, nil
}

// FetchBlocksByTimestamp lists active-chain blocks whose header time falls on the UTC
// day containing at. The first block is located by binary search over heights, which
// assumes header times grow with height around day boundaries.
func (s *Source) FetchBlocksByTimestamp(ctx context.Context, at time.Time) ([]model.BlockSummary, error) {
	start := at.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("%w: get block count: %v", chain.ErrService, err)
	}
	tip, err := safe.Uint64(count)
	if err != nil {
		return nil, fmt.Errorf("%w: block count %d: %v", chain.ErrService, count, err)
	}

	lo, hi := uint64(0), tip+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		header, err := s.headerAt(ctx, mid)
		if err != nil {
			return nil, err
		}
		if header.Timestamp.Before(start) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	var out []model.BlockSummary
	for height := lo; height <= tip; height++ {
		header, err := s.headerAt(ctx, height)
		if err != nil {
			return nil, err
		}
		if !header.Timestamp.Before(end) {
			break
		}
		if !header.Timestamp.Before(start) {
			out = append(out, header)
		}
	}
	s.logger.Debug("located day blocks",
		zap.Time("day", start),
		zap.Uint64("first_height", lo),
		zap.Int("blocks", len(out)),
	)
	return out, nil
}

// FetchRawBlock returns a block with full transactions and previous outputs.
func (s *Source) FetchRawBlock(ctx context.Context, hash string) (*model.Block, error) {
	if _, err := parseHash(hash); err != nil {
		return nil, err
	}
	doc, err := s.raw(ctx, "getblock", hash, blockVerbosityPrevout)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	block, err := s.normalizer.Block(doc)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	return block, nil
}

func (s *Source) headerAt(ctx context.Context, height uint64) (model.BlockSummary, error) {
	if height > math.MaxInt64 {
		return model.BlockSummary{}, fmt.Errorf("%w: block height %d exceeds rpc limit", chain.ErrValidation, height)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return model.BlockSummary{}, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("%w: get block hash at height %d: %v", chain.ErrService, height, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return model.BlockSummary{}, err
	}
	header, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("%w: get block header %s: %v", chain.ErrService, hash, err)
	}
	h, err := safe.Uint64(header.Height)
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s height: %v", chain.ErrShape, header.Hash, err)
	}
	return model.BlockSummary{
		Hash:      header.Hash,
		Height:    h,
		Timestamp: time.Unix(header.Time, 0).UTC(),
	}, nil
}

func (s *Source) raw(ctx context.Context, method string, params ...any) (any, error) {
	encoded := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode %s params: %w", method, err)
		}
		encoded = append(encoded, b)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := s.rpc.RawRequest(method, encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", chain.ErrService, method, err)
	}
	return normalize.Decode(res)
}

func summaryFromVerbose(res *btcjson.GetBlockVerboseResult) (model.BlockSummary, error) {
	if res == nil {
		return model.BlockSummary{}, fmt.Errorf("%w: empty block result", chain.ErrService)
	}
	height, err := safe.Uint64(res.Height)
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s height: %v", chain.ErrShape, res.Hash, err)
	}
	return model.BlockSummary{
		Hash:      res.Hash,
		Height:    height,
		Timestamp: time.Unix(res.Time, 0).UTC(),
		TxIDs:     append([]string(nil), res.Tx...),
	}, nil
}

// nullDataOutputs marks OP_RETURN outputs; the node never tracks them as unspent.
func nullDataOutputs(doc any) map[int]bool {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	vout, ok := m["vout"].([]any)
	if !ok {
		return nil
	}
	out := make(map[int]bool)
	for idx, raw := range vout {
		o, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		script, ok := o["scriptPubKey"].(map[string]any)
		if ok && script["type"] == "nulldata" {
			out[idx] = true
		}
	}
	return out
}

func parseHash(s string) (*chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w: hash %q", chain.ErrValidation, s)
	}
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hash %q: %v", chain.ErrValidation, s, err)
	}
	return hash, nil
}

func isOutOfRange(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCInvalidParameter
}
