package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/service/analyzer"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Ledger      cli.LedgerOptions `group:"Ledger Options" env-namespace:"BTC_COINBASE_SCANNER"`
	FromHeight  uint64            `long:"from-height" env:"BTC_COINBASE_SCANNER_FROM_HEIGHT" description:"first height to scan" default:"0"`
	ToHeight    uint64            `long:"to-height" env:"BTC_COINBASE_SCANNER_TO_HEIGHT" description:"last height to scan, inclusive" default:"99"`
	HeightPause time.Duration     `long:"height-pause" env:"BTC_COINBASE_SCANNER_HEIGHT_PAUSE" description:"pause between heights" default:"1s"`
	NoProgress  bool              `long:"no-progress" env:"BTC_COINBASE_SCANNER_NO_PROGRESS" description:"disable the progress bar"`
	MetricsAddr string            `long:"metrics-addr" env:"BTC_COINBASE_SCANNER_METRICS_ADDR" description:"address for metrics server, empty disables it"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("coinbase scanner failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	cli.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	source, closeSource, err := cfg.Ledger.Open(logger)
	if err != nil {
		return err
	}
	defer closeSource()

	svc, err := analyzer.NewCoinbaseScannerService(
		source,
		metrics.NewAnalyzer("coinbase_scan", cfg.Ledger.Network),
		cfg.Ledger.Network,
		logger,
	)
	if err != nil {
		return err
	}

	req := analyzer.ScanRequest{From: cfg.FromHeight, To: cfg.ToHeight, Pause: cfg.HeightPause}
	if !cfg.NoProgress && cfg.FromHeight <= cfg.ToHeight {
		bar, advance := cli.NewHeightProgress(cfg.ToHeight-cfg.FromHeight+1, logger)
		defer func() {
			_ = bar.Finish()
		}()
		req.OnHeight = advance
	}

	report, err := svc.Scan(ctx, req)
	if report != nil {
		fmt.Println()
		cli.RenderCoinbaseScan(os.Stdout, report)
	}
	return err
}
