package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/olekukonko/tablewriter"
)

// FormatSatoshis renders an amount in satoshis together with its BTC value.
func FormatSatoshis(sats uint64) string {
	if sats > math.MaxInt64 {
		return strconv.FormatUint(sats, 10) + " sat"
	}
	return fmt.Sprintf("%d sat (%s)", sats, btcutil.Amount(int64(sats)))
}

// RenderCoinbaseScan writes the spent coinbases found by a scan.
func RenderCoinbaseScan(w io.Writer, r *model.CoinbaseScanReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Height", "Block Hash", "Coinbase TxID"})
	table.SetBorder(true)
	for _, s := range r.Spent {
		table.Append([]string{strconv.FormatUint(s.Height, 10), s.BlockHash, s.CoinbaseTxID})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d..%d", r.FromHeight, r.ToHeight),
		fmt.Sprintf("checked: %d", r.Checked),
		fmt.Sprintf("spent: %d", len(r.Spent)),
	})
	table.Render()

	RenderFailures(w, r.Failures)
}

// RenderFeeRatio writes the ratio extremes of a block.
func RenderFeeRatio(w io.Writer, r *model.FeeRatioReport) {
	_, _ = fmt.Fprintf(w, "Block %s at height %d, %d transactions with a ratio\n", r.BlockHash, r.Height, r.Evaluated)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Extreme", "TxID", "Fee", "Output Value", "Ratio"})
	table.SetBorder(true)
	for _, row := range []struct {
		label  string
		record *model.RatioRecord
	}{
		{"min", r.Min},
		{"max", r.Max},
	} {
		if row.record == nil {
			table.Append([]string{row.label, "-", "-", "-", "-"})
			continue
		}
		table.Append([]string{
			row.label,
			row.record.TxID,
			FormatSatoshis(row.record.Fee),
			FormatSatoshis(row.record.TotalOutputValue),
			row.record.Ratio.FloatString(10),
		})
	}
	table.Render()

	RenderFailures(w, r.Failures)
}

// RenderWindow writes the aggregates and miner breakdown of a window.
func RenderWindow(w io.Writer, r *model.WindowReport) {
	stats := r.Stats

	avgFee := "undefined"
	if fee, ok := stats.AvgFeeBlock5.Get(); ok {
		avgFee = strconv.FormatFloat(fee, 'f', 2, 64) + " sat"
	}

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.SetBorder(true)
	summary.AppendBulk([][]string{
		{"Day", r.Day.Format(time.DateOnly)},
		{"Blocks", fmt.Sprintf("%d %v", stats.Blocks, r.Heights)},
		{"Transactions", strconv.Itoa(stats.TotalTransactions)},
		{"Size", sizeCell(stats)},
		{"Avg block time", stats.AvgBlockTime.String()},
		{"Smallest hash", stats.SmallestHash},
		{"Avg fee, block 5", avgFee},
	})
	summary.Render()

	intervals := tablewriter.NewWriter(w)
	intervals.SetHeader([]string{"From", "To", "Interval"})
	intervals.SetBorder(true)
	for i, d := range stats.InterBlockTimes {
		if i+1 >= len(r.Heights) {
			break
		}
		intervals.Append([]string{
			strconv.FormatUint(r.Heights[i], 10),
			strconv.FormatUint(r.Heights[i+1], 10),
			d.String(),
		})
	}
	intervals.Render()

	miners := tablewriter.NewWriter(w)
	miners.SetHeader([]string{"Miner", "Blocks", "Fees"})
	miners.SetBorder(true)
	for _, m := range r.Miners.Miners {
		miners.Append([]string{m.Address, strconv.Itoa(m.BlockCount), FormatSatoshis(m.AccumulatedFees)})
	}
	miners.Render()

	if top, ok := r.Miners.TopMiner.Get(); ok {
		_, _ = fmt.Fprintf(w, "Top miner %s: %d blocks, %s in fees, involved in %d transactions\n",
			top.Address, top.BlockCount, FormatSatoshis(top.AccumulatedFees), r.Miners.AddressInvolvementCount)
	} else {
		_, _ = fmt.Fprintln(w, "No miner address found in the window")
	}
}

// RenderFailures lists records a run treated as unknown.
func RenderFailures(w io.Writer, failures []model.RecordFailure) {
	if len(failures) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operation", "Key", "Error"})
	table.SetBorder(true)
	for _, f := range failures {
		table.Append([]string{f.Operation, f.Key, f.Err.Error()})
	}
	table.Render()
}

func sizeCell(stats model.WindowStats) string {
	if stats.Blocks > 0 && stats.UnsizedBlocks == stats.Blocks {
		return "unknown"
	}
	cell := fmt.Sprintf("%d bytes", stats.TotalSizeBytes)
	if stats.UnsizedBlocks > 0 {
		cell += fmt.Sprintf(" (%d blocks without size)", stats.UnsizedBlocks)
	}
	return cell
}
