// Package quote merges the static basket with polled upstream ticks
// into the dashboard snapshot, optionally layering a simulated random
// walk on top so the UI keeps moving between real updates.
package quote

import (
    "context"
    "encoding/json"

    "etfboard/internal/basket"
)

// Polling services understood by the upstream realtime endpoint.
const (
    ServiceStock  = "SERVICE_ITEM"
    ServiceIndex  = "SERVICE_INDEX"
    ServiceMarket = "MARKET_INDEX"
)

// Index and indicator symbols tracked alongside the basket.
const (
    SymbolKospi     = "KOSPI"
    SymbolKosdaq    = "KOSDAQ"
    SymbolKosdaq150 = "KOSDAQ150"
    SymbolUsdKrw    = "FX_USDKRW"
)

// Tick is one upstream observation for an instrument or index at fetch
// time. Absent codes simply have no entry in the tick map.
type Tick struct {
    Code   string
    Price  float64
    Change float64
    Rate   float64
    Volume int64
}

// Source fetches the latest ticks for a set of codes from one polling
// service. Implementations must honor ctx cancellation.
type Source interface {
    Poll(ctx context.Context, service string, codes []string) (map[string]Tick, error)
}

// Quote is the normalized per-instrument result the dashboard consumes.
type Quote struct {
    Code         string  `json:"code"`
    Price        int64   `json:"price"`
    ChangeAmount int64   `json:"changeAmount"`
    ChangeRate   float64 `json:"changeRate"`
    Volume       int64   `json:"volume"`
}

// EtfQuote is the summary line for one of the tracked ETFs.
type EtfQuote struct {
    Price        int64   `json:"price"`
    ChangeAmount int64   `json:"changeAmount"`
    ChangeRate   float64 `json:"changeRate"`
}

// IndexData is a broad-index or FX snapshot value.
type IndexData struct {
    Value  float64 `json:"value"`
    Change float64 `json:"change"`
    Rate   float64 `json:"rate"`
}

// Indices groups the tracked market indices for the response payload.
type Indices struct {
    Kospi     IndexData `json:"kospi"`
    Kosdaq    IndexData `json:"kosdaq"`
    Kosdaq150 IndexData `json:"kosdaq150"`
    UsdKrw    IndexData `json:"usdKrw"`
}

// StockRow is a basket member merged with its normalized quote. It
// marshals as the union of both objects (quote fields win on clash),
// matching what the dashboard table expects.
type StockRow struct {
    Member basket.Member
    Quote  Quote
}

func (r StockRow) MarshalJSON() ([]byte, error) {
    merged := map[string]json.RawMessage{}
    mb, err := json.Marshal(r.Member)
    if err != nil {
        return nil, err
    }
    if err := json.Unmarshal(mb, &merged); err != nil {
        return nil, err
    }
    qb, err := json.Marshal(r.Quote)
    if err != nil {
        return nil, err
    }
    var q map[string]json.RawMessage
    if err := json.Unmarshal(qb, &q); err != nil {
        return nil, err
    }
    for k, v := range q {
        merged[k] = v
    }
    return json.Marshal(merged)
}

// Snapshot is the complete quotes response contract.
type Snapshot struct {
    ETF           EtfQuote   `json:"etf"`
    Tiger         EtfQuote   `json:"tiger"`
    MarketIndices Indices    `json:"marketIndices"`
    Stocks        []StockRow `json:"stocks"`
    MarketStatus  string     `json:"marketStatus"`
}

// Market status strings.
const (
    StatusOpen   = "OPEN"
    StatusClosed = "CLOSED"
)
