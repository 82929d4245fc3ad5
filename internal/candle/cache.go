package candle

import (
    "context"
    "sync"
    "time"

    "golang.org/x/sync/singleflight"
)

type entry struct {
    expiresAt time.Time
    candles   []Candle
}

// Cache caches daily candles per symbol for a TTL. Concurrent misses
// for the same symbol are coalesced into a single upstream call, and a
// failed refresh serves the previous candles when any exist.
type Cache struct {
    S   Source
    TTL time.Duration

    mu    sync.RWMutex
    items map[string]entry

    sf singleflight.Group
}

func (c *Cache) Daily(ctx context.Context, symbol string) ([]Candle, error) {
    if c.S == nil || c.TTL <= 0 {
        return c.S.Daily(ctx, symbol)
    }

    now := time.Now()
    c.mu.RLock()
    e, ok := c.items[symbol]
    c.mu.RUnlock()
    if ok && now.Before(e.expiresAt) {
        return e.candles, nil
    }

    v, err, _ := c.sf.Do(symbol, func() (any, error) {
        return c.S.Daily(ctx, symbol)
    })
    if err != nil {
        // stale beats empty for a chart
        if ok {
            return e.candles, nil
        }
        return nil, err
    }
    candles := v.([]Candle)

    c.mu.Lock()
    if c.items == nil {
        c.items = make(map[string]entry)
    }
    c.items[symbol] = entry{expiresAt: time.Now().Add(c.TTL), candles: candles}
    c.mu.Unlock()
    return candles, nil
}
