package naver

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "sort"

    "etfboard/internal/candle"
)

// The chart endpoint answers with one of two field-name schemes: the
// monthly period uses localDate/closePrice, the intraday one uses
// localDateTime/currentPrice. Both are declared and resolved with a
// fixed precedence.
type priceInfo struct {
    LocalDate                string      `json:"localDate"`
    LocalDateTime            string      `json:"localDateTime"`
    OpenPrice                json.Number `json:"openPrice"`
    HighPrice                json.Number `json:"highPrice"`
    LowPrice                 json.Number `json:"lowPrice"`
    ClosePrice               json.Number `json:"closePrice"`
    CurrentPrice             json.Number `json:"currentPrice"`
    AccumulatedTradingVolume json.Number `json:"accumulatedTradingVolume"`
}

type chartResponse struct {
    PriceInfos []priceInfo `json:"priceInfos"`
}

// Daily proxies the daily-candle endpoint for one symbol and remaps the
// upstream records onto the chart schema: deduplicated by calendar date
// (later record wins) and sorted ascending by time.
func (c *Client) Daily(ctx context.Context, symbol string) ([]candle.Candle, error) {
    u := fmt.Sprintf("%s/%s?periodType=month&count=%d", c.cfg.ChartURL, url.PathEscape(symbol), c.cfg.ChartCount)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Referer", c.cfg.Referer)
    resp, err := c.client.Do(ctx, req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
        return nil, fmt.Errorf("GET %s -> %d: %s", c.cfg.ChartURL, resp.StatusCode, string(b))
    }

    dec := json.NewDecoder(resp.Body)
    dec.UseNumber()
    var api chartResponse
    if err := dec.Decode(&api); err != nil {
        return nil, fmt.Errorf("decode chart: %w", err)
    }

    byDate := make(map[string]candle.Candle, len(api.PriceInfos))
    for _, p := range api.PriceInfos {
        raw := p.LocalDate
        if raw == "" && len(p.LocalDateTime) >= 8 {
            raw = p.LocalDateTime[:8]
        }
        if len(raw) < 8 {
            continue
        }
        date := raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]

        cl := p.ClosePrice
        if cl == "" {
            cl = p.CurrentPrice
        }
        byDate[date] = candle.Candle{
            Time:   date,
            Open:   numFloat(p.OpenPrice),
            High:   numFloat(p.HighPrice),
            Low:    numFloat(p.LowPrice),
            Close:  numFloat(cl),
            Volume: numInt(p.AccumulatedTradingVolume),
        }
    }

    out := make([]candle.Candle, 0, len(byDate))
    for _, c := range byDate {
        out = append(out, c)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
    return out, nil
}
