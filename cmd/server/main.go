package main

import (
    "compress/gzip"
    "context"
    "io"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "etfboard/internal/candle"
    "etfboard/internal/config"
    "etfboard/internal/httpx"
    "etfboard/internal/naver"
    "etfboard/internal/portfolio"
    "etfboard/internal/quote"
)

func main() {
    cfgPath := os.Getenv("CONFIG_FILE")
    if cfgPath == "" {
        if _, err := os.Stat("config.yaml"); err == nil {
            cfgPath = "config.yaml"
        }
    }
    cfg, err := config.Load(cfgPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    httpClient := httpx.New(time.Duration(cfg.Naver.TimeoutSec) * time.Second)
    // the upstream rejects non-browser agents
    httpClient.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

    nv := naver.New(naver.Config{
        PollingURL: cfg.Naver.PollingURL,
        ChartURL:   cfg.Naver.ChartURL,
        Referer:    cfg.Naver.Referer,
        ChartCount: cfg.Chart.Count,
    }, httpClient)

    var candles candle.Source = nv
    if cfg.Chart.MaxRequestsPerMinute > 0 {
        rate := float64(cfg.Chart.MaxRequestsPerMinute) / 60.0
        burst := cfg.Chart.Burst
        if burst <= 0 { burst = 1 }
        candles = &candle.TokenBucketSource{S: candles, TB: candle.NewTokenBucket(rate, burst)}
    } else if cfg.Chart.MinRequestIntervalSec > 0 {
        candles = &candle.MinInterval{S: candles, Interval: time.Duration(cfg.Chart.MinRequestIntervalSec) * time.Second}
    }
    if cfg.Chart.CacheTTLSeconds > 0 {
        candles = &candle.Cache{S: candles, TTL: time.Duration(cfg.Chart.CacheTTLSeconds) * time.Second}
    }

    store, err := portfolio.Open(cfg.Portfolio.DBPath)
    if err != nil { log.Fatalf("portfolio store: %v", err) }
    defer store.Close()

    sim := quote.NewSim(nil)
    srv := &server{
        cfg:        cfg,
        gateway:    quote.NewGateway(nv, cfg.Naver.BatchSize, cfg.Naver.MaxConcurrency, []string{cfg.Basket.EtfCode, cfg.Basket.TigerCode}),
        normalizer: quote.NewNormalizer(sim, cfg.Basket.EtfCode, cfg.Basket.TigerCode),
        candles:    candles,
        store:      store,
        now:        time.Now,
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/quotes", srv.handleQuotes)
    mux.HandleFunc("/api/chart", srv.handleChart)
    mux.HandleFunc("/api/portfolio", srv.handlePortfolio)

    httpSrv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(limitBody(mux)))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s", cfg.Server.Port)
        if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = httpSrv.Shutdown(shutdownCtx)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
    const maxBody = 1 << 20 // 1MB
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodPost && r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
