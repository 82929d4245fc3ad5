package quote

import (
    "math"

    "etfboard/internal/basket"
)

// Perturbation spans per instrument class. A span of s means each live
// tick moves the value by a uniform draw in (-s/2, +s/2).
const (
    stockMoveFactor = 0.001 // span is 0.1% of price, so roughly +-0.05% per call
    etfMoveSpan     = 15.0  // KRW
    indexMoveSpan   = 2.0   // index points
    fxMoveSpan      = 1.5   // KRW per USD
    volumeBumpCap   = 5000
)

// Normalizer turns basket members plus an upstream tick map into the
// normalized quotes and summaries of the response contract. Live mode
// routes every value through the shared Sim before it is emitted.
type Normalizer struct {
    Sim       *Sim
    EtfCode   string
    TigerCode string
}

func NewNormalizer(sim *Sim, etfCode, tigerCode string) *Normalizer {
    if etfCode == "" {
        etfCode = "069500"
    }
    if tigerCode == "" {
        tigerCode = "102110"
    }
    return &Normalizer{Sim: sim, EtfCode: etfCode, TigerCode: tigerCode}
}

// finite coerces NaN and infinities to zero so every emitted field is a
// well-formed number.
func finite(x float64) float64 {
    if math.IsNaN(x) || math.IsInf(x, 0) {
        return 0
    }
    return x
}

func round2(x float64) float64 {
    return finite(math.Round(finite(x)*100) / 100)
}

// changeRate is change over previous close as a percentage, zero when
// the previous close is zero.
func changeRate(change, prevClose float64) float64 {
    if prevClose == 0 {
        return 0
    }
    return change / prevClose * 100
}

// Stock normalizes one basket member. Base values prefer the upstream
// tick, then the member's static reference fields, then zero. Live mode
// advances the member's cumulative offset and simulated volume.
func (n *Normalizer) Stock(m basket.Member, ticks map[string]Tick, live bool) Quote {
    code := string(m.Code)
    tk, hasTick := ticks[code]

    base := finite(tk.Price)
    change := finite(tk.Change)
    if !hasTick || base == 0 {
        base = float64(m.RefPrice())
        change = float64(m.RefChange())
    }

    var volume int64
    if hasTick && tk.Volume > 0 {
        volume = tk.Volume
    } else {
        // No real volume ever observed for this code; use the stable
        // placeholder so the table does not show a flat zero.
        volume = n.Sim.PlaceholderVolume(code)
    }

    prevClose := finite(base - change)
    price := base
    rate := finite(tk.Rate)
    if !hasTick || rate == 0 {
        rate = changeRate(change, prevClose)
    }

    if live {
        price = base + n.Sim.Advance(code, stockMoveFactor*base)
        change = math.Round(finite(price)) - prevClose
        rate = changeRate(change, prevClose)
        volume = n.Sim.BumpVolume(code, volume, volumeBumpCap)
    }

    return Quote{
        Code:         code,
        Price:        int64(math.Round(finite(price))),
        ChangeAmount: int64(math.Round(finite(change))),
        ChangeRate:   round2(rate),
        Volume:       volume,
    }
}

// etfRef is the compiled fallback used when no tick exists for an ETF.
type etfRef struct {
    base      float64
    prevClose float64
}

func (n *Normalizer) etf(code string, ticks map[string]Tick, ref etfRef, live bool) EtfQuote {
    base, prev := ref.base, ref.prevClose
    if tk, ok := ticks[code]; ok && tk.Price > 0 {
        base = finite(tk.Price)
        prev = finite(tk.Price - tk.Change)
    }
    price := base
    if live {
        price = base + n.Sim.Advance(code, etfMoveSpan)
    }
    p := math.Round(finite(price))
    change := p - finite(prev)
    return EtfQuote{
        Price:        int64(p),
        ChangeAmount: int64(math.Round(change)),
        ChangeRate:   round2(changeRate(change, prev)),
    }
}

func (n *Normalizer) index(key string, ticks map[string]Tick, def IndexData, span float64, live bool) IndexData {
    base, change, rate := def.Value, def.Change, def.Rate
    if tk, ok := ticks[key]; ok && tk.Price > 0 {
        base = finite(tk.Price)
        change = finite(tk.Change)
        rate = finite(tk.Rate)
    }
    prev := base - change
    value := base
    if live {
        value = base + n.Sim.Advance(key, span)
        change = value - prev
        rate = changeRate(change, prev)
    }
    return IndexData{
        Value:  round2(value),
        Change: round2(change),
        Rate:   round2(rate),
    }
}
