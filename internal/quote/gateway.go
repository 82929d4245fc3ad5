package quote

import (
    "context"
    "log"
    "sync"
)

var indexSymbols = []string{SymbolKospi, SymbolKosdaq, SymbolKosdaq150}

// Gateway fans out one best-effort polling round: the index call, the
// FX call, and the basket codes split into batches. All calls run
// concurrently and every failure degrades to an empty result; the
// merged tick map is whatever actually arrived. No retries.
type Gateway struct {
    Source         Source
    BatchSize      int // max codes per stock call, upstream caps at 100
    MaxConcurrency int
    EtfCodes       []string // appended to the polled universe if absent
}

func NewGateway(src Source, batchSize, maxConcurrency int, etfCodes []string) *Gateway {
    if batchSize <= 0 || batchSize > 100 {
        batchSize = 100
    }
    if maxConcurrency <= 0 {
        maxConcurrency = 1
    }
    return &Gateway{Source: src, BatchSize: batchSize, MaxConcurrency: maxConcurrency, EtfCodes: etfCodes}
}

// Fetch polls everything for one request and blocks until all calls
// have settled. Individual failures are logged, never surfaced.
func (g *Gateway) Fetch(ctx context.Context, codes []string) map[string]Tick {
    type call struct {
        service string
        codes   []string
    }

    universe := make([]string, 0, len(codes)+len(g.EtfCodes))
    seen := make(map[string]struct{}, len(codes)+len(g.EtfCodes))
    for _, c := range codes {
        if _, ok := seen[c]; ok {
            continue
        }
        seen[c] = struct{}{}
        universe = append(universe, c)
    }
    for _, c := range g.EtfCodes {
        if _, ok := seen[c]; ok {
            continue
        }
        seen[c] = struct{}{}
        universe = append(universe, c)
    }

    calls := []call{
        {ServiceIndex, indexSymbols},
        {ServiceMarket, []string{SymbolUsdKrw}},
    }
    for _, batch := range chunkStrings(universe, g.BatchSize) {
        calls = append(calls, call{ServiceStock, batch})
    }

    merged := make(map[string]Tick, len(universe)+len(indexSymbols)+1)
    sem := make(chan struct{}, g.MaxConcurrency)
    var wg sync.WaitGroup
    var mu sync.Mutex
    for _, c := range calls {
        c := c
        wg.Add(1)
        go func() {
            defer wg.Done()
            select {
            case sem <- struct{}{}:
                defer func() { <-sem }()
            case <-ctx.Done():
                return
            }
            ticks, err := g.Source.Poll(ctx, c.service, c.codes)
            if err != nil {
                // empty-result sentinel: dependent fields fall back to defaults
                log.Printf("upstream %s (%d codes): %v", c.service, len(c.codes), err)
                return
            }
            mu.Lock()
            for k, v := range ticks {
                merged[k] = v
            }
            mu.Unlock()
        }()
    }
    wg.Wait()
    return merged
}

func chunkStrings(in []string, size int) [][]string {
    if size <= 0 || len(in) == 0 {
        return [][]string{in}
    }
    out := make([][]string, 0, (len(in)+size-1)/size)
    for i := 0; i < len(in); i += size {
        j := i + size
        if j > len(in) {
            j = len(in)
        }
        out = append(out, in[i:j])
    }
    return out
}
