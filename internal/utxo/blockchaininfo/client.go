// Package blockchaininfo implements chain.LedgerSource on top of the blockchain.info REST API.
package blockchaininfo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/normalize"
	"github.com/valyala/fasthttp"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public blockchain.info endpoint.
const DefaultBaseURL = "https://blockchain.info"

type (
	// HTTPDoer performs a single HTTP exchange.
	HTTPDoer interface {
		DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
	}
	// Metrics records ledger call outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Config configures a Client.
type Config struct {
	BaseURL       string
	Network       model.Network
	RPS           int
	Timeout       time.Duration
	DecodeScripts bool
}

// Client is a blockchain.info ledger source. Each method issues exactly one request.
type Client struct {
	baseURL    string
	http       HTTPDoer
	limiter    ratelimit.Limiter
	timeout    time.Duration
	normalizer *normalize.Normalizer
	metrics    Metrics
	logger     *zap.Logger
}

var _ chain.LedgerSource = (*Client)(nil)

// New builds a Client from cfg.
func New(cfg Config, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("base url missing host")
	}

	var opts []normalize.Option
	if cfg.DecodeScripts {
		decoder, err := normalize.NewScriptDecoder(cfg.Network)
		if err != nil {
			return nil, err
		}
		opts = append(opts, normalize.WithScriptDecoder(decoder))
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		http:       &fasthttp.Client{Name: userAgent},
		limiter:    limiter,
		timeout:    timeout,
		normalizer: normalize.New(normalize.Satoshi, opts...),
		metrics:    metrics,
		logger:     logger.Named("blockchaininfo"),
	}, nil
}

// FetchBlocksAtHeight lists the blocks blockchain.info knows at height.
func (c *Client) FetchBlocksAtHeight(ctx context.Context, height uint64) ([]model.BlockSummary, error) {
	doc, err := c.get(ctx, "block_height", "/block-height/"+strconv.FormatUint(height, 10)+"?format=json")
	if err != nil {
		return nil, fmt.Errorf("blocks at height %d: %w", height, err)
	}
	blocks, err := c.normalizer.BlockSummaries(doc)
	if err != nil {
		return nil, fmt.Errorf("blocks at height %d: %w", height, err)
	}
	return blocks, nil
}

// FetchTransaction returns the transaction with inline previous outputs.
func (c *Client) FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error) {
	if err := validateHash(txid); err != nil {
		return nil, err
	}
	doc, err := c.get(ctx, "rawtx", "/rawtx/"+txid)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", txid, err)
	}
	tx, err := c.normalizer.Transaction(doc)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", txid, err)
	}
	if tx.TxID == "" {
		tx.TxID = txid
	}
	return tx, nil
}

// FetchBlocksByTimestamp lists the blocks of the day containing at. The API takes the
// time in milliseconds.
func (c *Client) FetchBlocksByTimestamp(ctx context.Context, at time.Time) ([]model.BlockSummary, error) {
	ms := at.UnixMilli()
	if ms < 0 {
		return nil, fmt.Errorf("%w: timestamp %s before epoch", chain.ErrValidation, at)
	}
	doc, err := c.get(ctx, "blocks_by_time", "/blocks/"+strconv.FormatInt(ms, 10)+"?format=json")
	if err != nil {
		return nil, fmt.Errorf("blocks at %d ms: %w", ms, err)
	}
	blocks, err := c.normalizer.BlockSummaries(doc)
	if err != nil {
		return nil, fmt.Errorf("blocks at %d ms: %w", ms, err)
	}
	return blocks, nil
}

// FetchRawBlock returns a block with full transactions.
func (c *Client) FetchRawBlock(ctx context.Context, hash string) (*model.Block, error) {
	if err := validateHash(hash); err != nil {
		return nil, err
	}
	doc, err := c.get(ctx, "rawblock", "/rawblock/"+hash)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	block, err := c.normalizer.Block(doc)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	return block, nil
}

func (c *Client) get(ctx context.Context, operation, path string) (_ any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.limiter.Take()

	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err = c.http.DoTimeout(req, resp, c.timeout); err != nil {
		c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: GET %s: %v", chain.ErrService, path, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		c.logger.Warn("unexpected status", zap.String("path", path), zap.Int("status", status))
		err = fmt.Errorf("%w: GET %s: status %d", chain.ErrService, path, status)
		return nil, err
	}

	doc, err := normalize.Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return doc, nil
}

func validateHash(hash string) error {
	if _, err := chainhash.NewHashFromStr(hash); err != nil || len(hash) != chainhash.MaxHashStringSize {
		return fmt.Errorf("%w: hash %q", chain.ErrValidation, hash)
	}
	return nil
}
