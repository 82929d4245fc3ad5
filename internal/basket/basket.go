package basket

import (
    "encoding/json"
    "fmt"
    "os"
    "strconv"
    "strings"
)

// Field is a scalar from the component file that may arrive as a JSON
// string ("181,200") or a bare number. It normalizes to a string and
// parses leniently: comma grouping is stripped and "-" means zero.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
    s := strings.TrimSpace(string(b))
    if len(s) >= 2 && s[0] == '"' {
        var v string
        if err := json.Unmarshal(b, &v); err != nil {
            return err
        }
        *f = Field(v)
        return nil
    }
    if s == "null" {
        *f = ""
        return nil
    }
    *f = Field(s)
    return nil
}

// Int parses the field as an integer amount. Unparseable values are 0.
func (f Field) Int() int64 {
    s := strings.ReplaceAll(strings.TrimSpace(string(f)), ",", "")
    if s == "" || s == "-" {
        return 0
    }
    if i := strings.IndexByte(s, '.'); i >= 0 {
        s = s[:i]
    }
    n, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
        return 0
    }
    return n
}

// Float parses the field as a float. Unparseable values are 0.
func (f Field) Float() float64 {
    s := strings.ReplaceAll(strings.TrimSpace(string(f)), ",", "")
    s = strings.TrimSuffix(s, "%")
    if s == "" || s == "-" {
        return 0
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return 0
    }
    return v
}

// Member is one basket component as stored in the reference file. The
// JSON keys are the original Korean column names so the merged quotes
// response round-trips the file verbatim for the dashboard table.
type Member struct {
    No     int    `json:"번호"`
    Name   string `json:"종목명"`
    ISIN   string `json:"ISIN"`
    Code   Field  `json:"종목코드"`
    Shares Field  `json:"수량"`
    Weight Field  `json:"비중(%)"`
    Value  Field  `json:"평가금액(원)"`
    Price  Field  `json:"현재가(원)"`
    Change Field  `json:"등락(원)"`
}

// RefPrice is the static reference price from the file, used when no
// upstream tick exists for the code.
func (m Member) RefPrice() int64 { return m.Price.Int() }

// RefChange is the static reference change amount from the file.
func (m Member) RefChange() int64 { return m.Change.Int() }

// WeightPct is the basket weight percentage.
func (m Member) WeightPct() float64 { return m.Weight.Float() }

// Load reads the ordered component list from path. Codes are
// zero-padded to 6 digits. A missing, malformed, empty, or
// duplicate-code file is a configuration error and fails the request.
func Load(path string) ([]Member, error) {
    b, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("basket: read %s: %w", path, err)
    }
    var members []Member
    if err := json.Unmarshal(b, &members); err != nil {
        return nil, fmt.Errorf("basket: parse %s: %w", path, err)
    }
    if len(members) == 0 {
        return nil, fmt.Errorf("basket: %s has no components", path)
    }
    seen := make(map[string]struct{}, len(members))
    for i := range members {
        code := PadCode(string(members[i].Code))
        if code == "" {
            return nil, fmt.Errorf("basket: component %d (%s) has no code", i, members[i].Name)
        }
        if _, dup := seen[code]; dup {
            return nil, fmt.Errorf("basket: duplicate code %s", code)
        }
        seen[code] = struct{}{}
        members[i].Code = Field(code)
    }
    return members, nil
}

// PadCode normalizes an instrument code to the 6-digit zero-padded form.
func PadCode(code string) string {
    code = strings.TrimSpace(code)
    if code == "" {
        return ""
    }
    for len(code) < 6 {
        code = "0" + code
    }
    return code
}

// Codes returns the member codes in file order.
func Codes(members []Member) []string {
    out := make([]string, 0, len(members))
    for _, m := range members {
        out = append(out, string(m.Code))
    }
    return out
}
