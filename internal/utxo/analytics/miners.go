package analytics

import "github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"

// CoinbaseAddress returns the address of the coinbase transaction's first output.
func CoinbaseAddress(block model.Block) (string, bool) {
	if len(block.Txs) == 0 || len(block.Txs[0].Outputs) == 0 {
		return "", false
	}
	addr := block.Txs[0].Outputs[0].Address
	return addr, addr != ""
}

// AttributeMiners credits every block to its coinbase address together with the block's
// clamped non-coinbase fees, picks the address with the most blocks (earliest first-seen on
// ties) and counts the window transactions it takes part in.
func AttributeMiners(blocks []model.Block) model.MinerAttribution {
	stats := model.NewMinerStats()
	for _, block := range blocks {
		addr, ok := CoinbaseAddress(block)
		if !ok {
			continue
		}
		stats.Credit(addr, LumpFee(block))
	}

	result := model.MinerAttribution{Miners: stats.Ordered()}
	top, ok := TopMiner(result.Miners)
	if !ok {
		return result
	}
	result.TopMiner = model.Known(top)
	result.AddressInvolvementCount = InvolvementCount(blocks, top.Address)
	return result
}

// TopMiner returns the stat with the highest block count; the earliest wins ties.
func TopMiner(miners []model.MinerStat) (model.MinerStat, bool) {
	if len(miners) == 0 {
		return model.MinerStat{}, false
	}
	top := miners[0]
	for _, m := range miners[1:] {
		if m.BlockCount > top.BlockCount {
			top = m
		}
	}
	return top, true
}

// InvolvementCount counts transactions in which addr receives an output or funds an input.
func InvolvementCount(blocks []model.Block, addr string) int {
	count := 0
	for _, block := range blocks {
		for _, tx := range block.Txs {
			if tx.InvolvesAddress(addr) {
				count++
			}
		}
	}
	return count
}
