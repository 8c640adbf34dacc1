package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/service/analyzer"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Ledger      cli.LedgerOptions `group:"Ledger Options" env-namespace:"BTC_FEE_RATIO"`
	Height      uint64            `long:"height" env:"BTC_FEE_RATIO_HEIGHT" description:"block height to analyze" default:"399810"`
	Mode        string            `long:"mode" env:"BTC_FEE_RATIO_MODE" description:"how transactions are read" choice:"block" choice:"per-tx" default:"block"`
	MetricsAddr string            `long:"metrics-addr" env:"BTC_FEE_RATIO_METRICS_ADDR" description:"address for metrics server, empty disables it"`
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
		logger.Fatal("fee ratio analysis failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	mode, err := analyzer.ParseRatioMode(cfg.Mode)
	if err != nil {
		return err
	}

	cli.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	source, closeSource, err := cfg.Ledger.Open(logger)
	if err != nil {
		return err
	}
	defer closeSource()

	svc, err := analyzer.NewFeeRatioService(
		source,
		metrics.NewAnalyzer("fee_ratio", cfg.Ledger.Network),
		cfg.Ledger.Network,
		logger,
	)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(ctx, cfg.Height, mode)
	if err != nil {
		return err
	}
	cli.RenderFeeRatio(os.Stdout, report)
	return nil
}
