package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "os"
    "time"

    "etfboard/internal/basket"
    "etfboard/internal/config"
    "etfboard/internal/httpx"
    "etfboard/internal/markethours"
    "etfboard/internal/naver"
    "etfboard/internal/quote"
)

// One-shot snapshot fetcher for inspection: loads the basket, polls the
// upstream once, and prints the assembled JSON payload to stdout.
func main() {
    var configPath string
    var basketPath string
    var live bool
    var timeout int

    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.yaml (optional)")
    flag.StringVar(&basketPath, "basket", "", "override basket file path")
    flag.BoolVar(&live, "live", false, "apply the simulated random walk on top of fetched prices")
    flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if basketPath != "" { cfg.Basket.File = basketPath }
    if timeout != 0 { cfg.Server.RequestTimeoutSec = timeout }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    members, err := basket.Load(cfg.Basket.File)
    if err != nil { log.Fatalf("basket: %v", err) }
    log.Printf("basket: %d members from %s", len(members), cfg.Basket.File)

    httpClient := httpx.New(time.Duration(cfg.Naver.TimeoutSec) * time.Second)
    httpClient.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

    nv := naver.New(naver.Config{
        PollingURL: cfg.Naver.PollingURL,
        ChartURL:   cfg.Naver.ChartURL,
        Referer:    cfg.Naver.Referer,
        ChartCount: cfg.Chart.Count,
    }, httpClient)

    gw := quote.NewGateway(nv, cfg.Naver.BatchSize, cfg.Naver.MaxConcurrency,
        []string{cfg.Basket.EtfCode, cfg.Basket.TigerCode})
    norm := quote.NewNormalizer(quote.NewSim(nil), cfg.Basket.EtfCode, cfg.Basket.TigerCode)

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    ticks := gw.Fetch(ctx, basket.Codes(members))
    log.Printf("upstream: %d ticks", len(ticks))

    snap := norm.Assemble(members, ticks, live, markethours.Open(time.Now()))
    b, _ := json.MarshalIndent(snap, "", "  ")
    fmt.Println(string(b))
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
