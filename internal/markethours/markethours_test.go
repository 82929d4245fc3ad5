package markethours

import (
    "testing"
    "time"
)

func kst(y int, m time.Month, d, hh, mm int) time.Time {
    return time.Date(y, m, d, hh, mm, 0, 0, KST)
}

func TestOpenBoundaries(t *testing.T) {
    // 2025-06-04 is a Wednesday
    cases := []struct {
        at   time.Time
        want bool
    }{
        {kst(2025, time.June, 4, 9, 0), true},
        {kst(2025, time.June, 4, 15, 30), true},
        {kst(2025, time.June, 4, 8, 59), false},
        {kst(2025, time.June, 4, 15, 31), false},
        {kst(2025, time.June, 4, 12, 0), true},
        // weekend at noon
        {kst(2025, time.June, 7, 12, 0), false},
        {kst(2025, time.June, 8, 12, 0), false},
    }
    for _, c := range cases {
        if got := Open(c.at); got != c.want {
            t.Errorf("Open(%v) = %v, want %v", c.at, got, c.want)
        }
    }
}

func TestOpenConvertsFromOtherZones(t *testing.T) {
    // 2025-06-04 00:30 UTC is 09:30 KST the same Wednesday
    if !Open(time.Date(2025, time.June, 4, 0, 30, 0, 0, time.UTC)) {
        t.Fatal("00:30 UTC Wednesday should be open in KST")
    }
    // 2025-06-04 07:00 UTC is 16:00 KST
    if Open(time.Date(2025, time.June, 4, 7, 0, 0, 0, time.UTC)) {
        t.Fatal("16:00 KST should be closed")
    }
}
