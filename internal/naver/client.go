// Package naver implements the upstream clients: the realtime polling
// endpoint behind the quotes gateway and the daily-candle endpoint
// behind the chart proxy.
package naver

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "etfboard/internal/basket"
    "etfboard/internal/quote"
)

// Doer issues one HTTP request. Satisfied by httpx.Client.
//
//go:generate mockgen -package=naver_test -destination=mock_doer_test.go -source=client.go Doer
type Doer interface {
    Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

type Config struct {
    PollingURL string
    ChartURL   string
    Referer    string
    ChartCount int
}

// Client talks to the Naver finance endpoints. Both endpoints insist on
// a Referer header, sent with every request.
type Client struct {
    cfg    Config
    client Doer
}

func New(cfg Config, d Doer) *Client {
    if cfg.PollingURL == "" {
        cfg.PollingURL = "https://polling.finance.naver.com/api/realtime"
    }
    if cfg.ChartURL == "" {
        cfg.ChartURL = "https://api.stock.naver.com/chart/domestic/item"
    }
    if cfg.Referer == "" {
        cfg.Referer = "https://fin.naver.com/"
    }
    if cfg.ChartCount <= 0 {
        cfg.ChartCount = 100
    }
    return &Client{cfg: cfg, client: d}
}

// realtime polling payload: result.areas[].datas[] with abbreviated
// field names (cd code, nv now value, cv change value, cr change rate,
// aq accumulated quantity).
type pollData struct {
    Cd string      `json:"cd"`
    Nv json.Number `json:"nv"`
    Cv json.Number `json:"cv"`
    Cr json.Number `json:"cr"`
    Aq json.Number `json:"aq"`
}

type pollArea struct {
    Name  string     `json:"name"`
    Datas []pollData `json:"datas"`
}

type pollResponse struct {
    ResultCode string `json:"resultCode"`
    Result     struct {
        Areas []pollArea `json:"areas"`
    } `json:"result"`
}

// Poll fetches the latest ticks for codes from one polling service
// (SERVICE_ITEM, SERVICE_INDEX, MARKET_INDEX).
func (c *Client) Poll(ctx context.Context, service string, codes []string) (map[string]quote.Tick, error) {
    if len(codes) == 0 {
        return map[string]quote.Tick{}, nil
    }
    q := service + ":" + strings.Join(codes, ",")
    u := c.cfg.PollingURL + "?query=" + url.QueryEscape(q)
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
        return nil, fmt.Errorf("GET %s -> %d: %s", c.cfg.PollingURL, resp.StatusCode, string(b))
    }

    dec := json.NewDecoder(resp.Body)
    dec.UseNumber()
    var api pollResponse
    if err := dec.Decode(&api); err != nil {
        return nil, fmt.Errorf("decode realtime: %w", err)
    }
    if api.ResultCode != "" && api.ResultCode != "success" {
        return nil, fmt.Errorf("realtime result code %q", api.ResultCode)
    }

    out := make(map[string]quote.Tick, len(codes))
    for _, area := range api.Result.Areas {
        for _, d := range area.Datas {
            code := normCode(d.Cd)
            if code == "" {
                continue
            }
            out[code] = quote.Tick{
                Code:   code,
                Price:  numFloat(d.Nv),
                Change: numFloat(d.Cv),
                Rate:   numFloat(d.Cr),
                Volume: numInt(d.Aq),
            }
        }
    }
    return out, nil
}

// normCode zero-pads numeric instrument codes; index and FX symbols
// (KOSPI, FX_USDKRW, ...) pass through untouched.
func normCode(code string) string {
    code = strings.TrimSpace(code)
    if code == "" {
        return ""
    }
    for _, r := range code {
        if r < '0' || r > '9' {
            return code
        }
    }
    return basket.PadCode(code)
}

func numFloat(n json.Number) float64 {
    if n == "" {
        return 0
    }
    f, err := n.Float64()
    if err != nil {
        return 0
    }
    return f
}

func numInt(n json.Number) int64 {
    if n == "" {
        return 0
    }
    if i, err := n.Int64(); err == nil {
        return i
    }
    f, err := n.Float64()
    if err != nil {
        return 0
    }
    return int64(f)
}
