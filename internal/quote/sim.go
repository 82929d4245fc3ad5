package quote

import (
    "math/rand"
    "sync"
)

// Rand is the randomness the simulator draws from. Injectable so tests
// can supply a deterministic sequence and assert exact trajectories.
type Rand interface {
    Float64() float64
    Intn(n int) int
}

type stdRand struct{}

func (stdRand) Float64() float64 { return rand.Float64() }
func (stdRand) Intn(n int) int   { return rand.Intn(n) }

// Sim owns the process-lifetime simulation state: one cumulative price
// offset and one monotonically increasing volume per instrument key.
// Entries are created lazily on first touch and live until process
// exit. All access goes through the mutex; concurrent live-mode
// requests must not lose updates.
type Sim struct {
    mu      sync.Mutex
    rng     Rand
    offsets map[string]float64
    volumes map[string]int64
}

// NewSim returns an empty simulator. A nil rng uses the package-global
// math/rand source.
func NewSim(rng Rand) *Sim {
    if rng == nil {
        rng = stdRand{}
    }
    return &Sim{
        rng:     rng,
        offsets: make(map[string]float64),
        volumes: make(map[string]int64),
    }
}

// Advance draws one perturbation uniform in (-span/2, +span/2), adds it
// to the key's cumulative offset and returns the new offset. The offset
// is never reset within a request; successive calls compound.
func (s *Sim) Advance(key string, span float64) float64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.offsets[key] += (s.rng.Float64() - 0.5) * span
    return s.offsets[key]
}

// Offset returns the current cumulative offset for key without
// advancing it.
func (s *Sim) Offset(key string) float64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.offsets[key]
}

// BumpVolume seeds the key's simulated volume from base on first touch,
// then increments it by a random amount in [0, cap) and returns it.
func (s *Sim) BumpVolume(key string, base int64, cap int) int64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.volumes[key]; !ok {
        if base < 0 {
            base = 0
        }
        s.volumes[key] = base
    }
    if cap > 0 {
        s.volumes[key] += int64(s.rng.Intn(cap))
    }
    return s.volumes[key]
}

// PlaceholderVolume returns a stable stand-in volume for a code that
// never reported a real one. The value is drawn once, recorded in the
// volume map, and reused afterwards so non-live responses do not
// flicker between requests.
func (s *Sim) PlaceholderVolume(key string) int64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    if v, ok := s.volumes[key]; ok {
        return v
    }
    v := int64(s.rng.Intn(1_000_000)) + 50_000
    s.volumes[key] = v
    return v
}
