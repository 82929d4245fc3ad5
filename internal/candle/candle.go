// Package candle defines the daily chart unit and the source chain
// (upstream fetch, cache, rate limiting) behind the chart proxy.
package candle

import "context"

// Candle is one daily bar in the shape the chart widget consumes.
type Candle struct {
    Time   string  `json:"time"` // YYYY-MM-DD
    Open   float64 `json:"open"`
    High   float64 `json:"high"`
    Low    float64 `json:"low"`
    Close  float64 `json:"close"`
    Volume int64   `json:"volume"`
}

// Source returns the recent daily candles for one symbol, deduplicated
// by date and sorted ascending.
type Source interface {
    Daily(ctx context.Context, symbol string) ([]Candle, error)
}
