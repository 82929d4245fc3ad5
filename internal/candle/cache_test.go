package candle

import (
    "context"
    "errors"
    "sync/atomic"
    "testing"
    "time"
)

type countingSource struct {
    calls   atomic.Int64
    fail    atomic.Bool
    candles []Candle
}

func (s *countingSource) Daily(_ context.Context, _ string) ([]Candle, error) {
    s.calls.Add(1)
    if s.fail.Load() {
        return nil, errors.New("upstream down")
    }
    return s.candles, nil
}

func TestCacheServesWithinTTL(t *testing.T) {
    src := &countingSource{candles: []Candle{{Time: "2025-06-02", Close: 81900}}}
    c := &Cache{S: src, TTL: time.Minute}

    first, err := c.Daily(context.Background(), "069500")
    if err != nil {
        t.Fatalf("first: %v", err)
    }
    second, err := c.Daily(context.Background(), "069500")
    if err != nil {
        t.Fatalf("second: %v", err)
    }
    if got := src.calls.Load(); got != 1 {
        t.Fatalf("upstream called %d times, want 1", got)
    }
    if len(first) != 1 || len(second) != 1 || second[0].Close != 81900 {
        t.Fatalf("cached candles: %v / %v", first, second)
    }
}

func TestCacheKeysPerSymbol(t *testing.T) {
    src := &countingSource{candles: []Candle{{Time: "2025-06-02", Close: 1}}}
    c := &Cache{S: src, TTL: time.Minute}

    if _, err := c.Daily(context.Background(), "069500"); err != nil {
        t.Fatal(err)
    }
    if _, err := c.Daily(context.Background(), "102110"); err != nil {
        t.Fatal(err)
    }
    if got := src.calls.Load(); got != 2 {
        t.Fatalf("upstream called %d times, want 2 (one per symbol)", got)
    }
}

func TestCacheServesStaleOnError(t *testing.T) {
    src := &countingSource{candles: []Candle{{Time: "2025-06-02", Close: 81900}}}
    c := &Cache{S: src, TTL: time.Nanosecond}

    if _, err := c.Daily(context.Background(), "069500"); err != nil {
        t.Fatal(err)
    }
    time.Sleep(time.Millisecond) // let the entry expire
    src.fail.Store(true)

    got, err := c.Daily(context.Background(), "069500")
    if err != nil {
        t.Fatalf("stale entry should mask the error, got %v", err)
    }
    if len(got) != 1 || got[0].Close != 81900 {
        t.Fatalf("stale candles: %v", got)
    }
}

func TestCacheErrorWithoutEntry(t *testing.T) {
    src := &countingSource{}
    src.fail.Store(true)
    c := &Cache{S: src, TTL: time.Minute}

    if _, err := c.Daily(context.Background(), "069500"); err == nil {
        t.Fatal("want error when nothing is cached")
    }
}
