package main

import (
    "context"
    "encoding/json"
    "log"
    "net/http"
    "time"

    "etfboard/internal/basket"
    "etfboard/internal/candle"
    "etfboard/internal/config"
    "etfboard/internal/markethours"
    "etfboard/internal/portfolio"
    "etfboard/internal/quote"
)

// Narrow views of the gateway and store so handler tests can swap in
// fakes without touching the network or disk.
type tickFetcher interface {
    Fetch(ctx context.Context, codes []string) map[string]quote.Tick
}

type portfolioStore interface {
    Get(ctx context.Context) (portfolio.Record, error)
    Save(ctx context.Context, r portfolio.Record) (portfolio.Record, error)
}

type server struct {
    cfg        *config.Config
    gateway    tickFetcher
    normalizer *quote.Normalizer
    candles    candle.Source
    store      portfolioStore
    now        func() time.Time
}

func (s *server) requestTimeout() time.Duration {
    sec := s.cfg.Server.RequestTimeoutSec
    if sec <= 0 { sec = 10 }
    return time.Duration(sec) * time.Second
}

type errorResponse struct {
    Error string `json:"error"`
}

// The response contract is either a complete payload or this fixed
// envelope; no partial snapshots, no status codes beyond 200/500.
func writeServerError(w http.ResponseWriter) {
    w.WriteHeader(http.StatusInternalServerError)
    writeBody(w, errorResponse{Error: "Internal Server Error"})
}

func writeBody(w http.ResponseWriter, v any) {
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

func (s *server) handleQuotes(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    live := r.URL.Query().Get("live") == "true"

    ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
    defer cancel()

    // authoritative immutable input, reloaded per request
    members, err := basket.Load(s.cfg.Basket.File)
    if err != nil {
        log.Printf("quotes: %v", err)
        writeServerError(w)
        return
    }

    ticks := s.gateway.Fetch(ctx, basket.Codes(members))
    snap := s.normalizer.Assemble(members, ticks, live, markethours.Open(s.now()))
    w.WriteHeader(http.StatusOK)
    writeBody(w, snap)
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    symbol := r.URL.Query().Get("symbol")
    if symbol == "" {
        symbol = s.cfg.Basket.EtfCode
    }
    symbol = basket.PadCode(symbol)

    ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
    defer cancel()

    candles, err := s.candles.Daily(ctx, symbol)
    if err != nil {
        log.Printf("chart %s: %v", symbol, err)
        writeServerError(w)
        return
    }
    if candles == nil {
        candles = []candle.Candle{}
    }
    w.WriteHeader(http.StatusOK)
    writeBody(w, candles)
}

func (s *server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
    ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
    defer cancel()

    switch r.Method {
    case http.MethodGet:
        rec, err := s.store.Get(ctx)
        if err != nil {
            log.Printf("portfolio get: %v", err)
            writeServerError(w)
            return
        }
        w.WriteHeader(http.StatusOK)
        writeBody(w, rec)
    case http.MethodPost:
        var rec portfolio.Record
        if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
            http.Error(w, "invalid JSON body", http.StatusBadRequest)
            return
        }
        saved, err := s.store.Save(ctx, rec)
        if err != nil {
            log.Printf("portfolio save: %v", err)
            writeServerError(w)
            return
        }
        w.WriteHeader(http.StatusOK)
        writeBody(w, saved)
    default:
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    }
}
