package model

import (
	"math/big"
	"time"
)

// RecordFailure describes one record that could not be fetched or decoded and was
// treated as unknown by the run that reports it.
type RecordFailure struct {
	Operation string
	Key       string
	Err       error
}

// SpentCoinbase identifies a block whose coinbase output has been spent.
type SpentCoinbase struct {
	Height       uint64
	BlockHash    string
	CoinbaseTxID string
}

// CoinbaseScanReport is the outcome of scanning a height range for spent coinbases.
type CoinbaseScanReport struct {
	FromHeight uint64
	ToHeight   uint64
	Checked    int
	Spent      []SpentCoinbase
	Failures   []RecordFailure
}

// RatioRecord is a transaction's fee relative to the value it moves.
type RatioRecord struct {
	Ratio            *big.Rat
	TxID             string
	Fee              uint64
	TotalOutputValue uint64
}

// Float64 returns the ratio as the nearest float64.
func (r RatioRecord) Float64() float64 {
	if r.Ratio == nil {
		return 0
	}
	f, _ := r.Ratio.Float64()
	return f
}

// FeeRatioReport holds the ratio extremes of one block.
type FeeRatioReport struct {
	Height    uint64
	BlockHash string
	Evaluated int
	Min       *RatioRecord
	Max       *RatioRecord
	Failures  []RecordFailure
}

// MinerStat accumulates what one coinbase address earned inside a window.
type MinerStat struct {
	Address         string
	BlockCount      int
	AccumulatedFees uint64
}

// MinerStats keeps per-address stats in first-seen order.
type MinerStats struct {
	order []string
	stats map[string]*MinerStat
}

// NewMinerStats returns an empty MinerStats.
func NewMinerStats() *MinerStats {
	return &MinerStats{stats: make(map[string]*MinerStat)}
}

// Credit counts one block mined by addr and adds its fee income.
func (m *MinerStats) Credit(addr string, fees uint64) {
	st, ok := m.stats[addr]
	if !ok {
		st = &MinerStat{Address: addr}
		m.stats[addr] = st
		m.order = append(m.order, addr)
	}
	st.BlockCount++
	st.AccumulatedFees += fees
}

// Ordered returns a copy of the stats in first-seen order.
func (m *MinerStats) Ordered() []MinerStat {
	out := make([]MinerStat, 0, len(m.order))
	for _, addr := range m.order {
		out = append(out, *m.stats[addr])
	}
	return out
}

// WindowStats are the block-level aggregates of a window.
type WindowStats struct {
	Blocks            int
	TotalTransactions int
	TotalSizeBytes    uint64
	UnsizedBlocks     int
	InterBlockTimes   []time.Duration
	AvgBlockTime      time.Duration
	SmallestHash      string
	AvgFeeBlock5      Optional[float64]
}

// MinerAttribution is the per-address breakdown of a window.
type MinerAttribution struct {
	Miners                  []MinerStat
	TopMiner                Optional[MinerStat]
	AddressInvolvementCount int
}

// WindowReport combines the window aggregates for one calendar day.
type WindowReport struct {
	Day     time.Time
	Heights []uint64
	Stats   WindowStats
	Miners  MinerAttribution
}
