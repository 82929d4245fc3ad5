package quote

import "etfboard/internal/basket"

// Compiled fallbacks for the tracked ETFs and indices, used whenever
// the corresponding upstream call returned no tick. The response is
// always fully populated; a degraded upstream only flattens values.
var (
    kodexRef = etfRef{base: 81860, prevClose: 81975}
    tigerRef = etfRef{base: 40890, prevClose: 40950}

    defaultKospi     = IndexData{Value: 2682.30}
    defaultKosdaq    = IndexData{Value: 868.93}
    defaultKosdaq150 = IndexData{Value: 1483.55}
    defaultUsdKrw    = IndexData{Value: 1391.50}
)

// Assemble builds the full snapshot: per-member rows joined by code,
// both ETF summaries, the index block, and the market status flag.
// Row order follows basket file order; no sorting is imposed here.
func (n *Normalizer) Assemble(members []basket.Member, ticks map[string]Tick, live, marketOpen bool) Snapshot {
    rows := make([]StockRow, 0, len(members))
    for _, m := range members {
        rows = append(rows, StockRow{Member: m, Quote: n.Stock(m, ticks, live)})
    }

    status := StatusClosed
    if marketOpen {
        status = StatusOpen
    }

    return Snapshot{
        ETF:   n.etf(n.EtfCode, ticks, kodexRef, live),
        Tiger: n.etf(n.TigerCode, ticks, tigerRef, live),
        MarketIndices: Indices{
            Kospi:     n.index(SymbolKospi, ticks, defaultKospi, indexMoveSpan, live),
            Kosdaq:    n.index(SymbolKosdaq, ticks, defaultKosdaq, indexMoveSpan, live),
            Kosdaq150: n.index(SymbolKosdaq150, ticks, defaultKosdaq150, indexMoveSpan, live),
            UsdKrw:    n.index(SymbolUsdKrw, ticks, defaultUsdKrw, fxMoveSpan, live),
        },
        Stocks:       rows,
        MarketStatus: status,
    }
}
