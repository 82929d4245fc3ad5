// Package markethours answers whether the Korean exchange is trading.
package markethours

import "time"

// KST is the fixed civil calendar the exchange trades in. No DST.
var KST = time.FixedZone("KST", 9*60*60)

// Open reports whether t falls inside the regular KRX session:
// Mon-Fri, 09:00-15:30 KST inclusive on both ends.
func Open(t time.Time) bool {
    k := t.In(KST)
    switch k.Weekday() {
    case time.Saturday, time.Sunday:
        return false
    }
    mins := k.Hour()*60 + k.Minute()
    return mins >= 9*60 && mins <= 15*60+30
}
