package analytics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// WindowSize is the number of consecutive blocks a window analysis covers.
const WindowSize = 10

// feeBlockIndex is the window position whose average fee is reported (the fifth block).
const feeBlockIndex = 4

// AggregateWindow computes the block-level statistics of an ordered window.
func AggregateWindow(blocks []model.Block) model.WindowStats {
	stats := model.WindowStats{Blocks: len(blocks)}

	var totalInterval time.Duration
	for i, block := range blocks {
		stats.TotalTransactions += block.TxCount()
		if size, ok := block.Size.Get(); ok {
			stats.TotalSizeBytes = saturatingAdd(stats.TotalSizeBytes, size)
		} else {
			stats.UnsizedBlocks++
		}

		if i == 0 || block.Hash < stats.SmallestHash {
			stats.SmallestHash = block.Hash
		}
		if i > 0 {
			interval := block.Timestamp.Sub(blocks[i-1].Timestamp)
			if interval < 0 {
				interval = -interval
			}
			stats.InterBlockTimes = append(stats.InterBlockTimes, interval)
			totalInterval += interval
		}
	}
	if n := len(stats.InterBlockTimes); n > 0 {
		stats.AvgBlockTime = totalInterval / time.Duration(n)
	}

	if len(blocks) > feeBlockIndex {
		stats.AvgFeeBlock5 = model.Known(AverageFee(blocks[feeBlockIndex]))
	}
	return stats
}

// AverageFee is the block's clamped lump fee divided by max(1, txCount-1).
func AverageFee(block model.Block) float64 {
	denominator := block.TxCount() - 1
	if denominator < 1 {
		denominator = 1
	}
	return float64(LumpFee(block)) / float64(denominator)
}
