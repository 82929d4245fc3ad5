package basket

import (
    "os"
    "path/filepath"
    "testing"
)

func TestLoad(t *testing.T) {
    members, err := Load(filepath.Join("testdata", "components.json"))
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if len(members) != 3 {
        t.Fatalf("want 3 members, got %d", len(members))
    }
    // numeric code from the file is zero-padded
    if got := string(members[0].Code); got != "005930" {
        t.Fatalf("code = %q, want 005930", got)
    }
    if members[0].Name != "삼성전자" {
        t.Fatalf("name = %q", members[0].Name)
    }
    if got := members[0].RefPrice(); got != 71200 {
        t.Fatalf("ref price = %d", got)
    }
    if got := members[1].RefChange(); got != -1500 {
        t.Fatalf("ref change = %d", got)
    }
    // "-" change parses as zero
    if got := members[2].RefChange(); got != 0 {
        t.Fatalf("dash change = %d, want 0", got)
    }
    if got := members[0].WeightPct(); got != 31.09 {
        t.Fatalf("weight = %v", got)
    }
}

func TestLoadMissingFile(t *testing.T) {
    if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
        t.Fatal("missing file should fail")
    }
}

func TestLoadRejectsMalformedAndEmpty(t *testing.T) {
    dir := t.TempDir()

    bad := filepath.Join(dir, "bad.json")
    if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, err := Load(bad); err == nil {
        t.Fatal("malformed file should fail")
    }

    empty := filepath.Join(dir, "empty.json")
    if err := os.WriteFile(empty, []byte("[]"), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, err := Load(empty); err == nil {
        t.Fatal("empty basket should fail")
    }
}

func TestLoadRejectsDuplicateCodes(t *testing.T) {
    dup := filepath.Join(t.TempDir(), "dup.json")
    content := `[
        {"번호": 1, "종목명": "A", "종목코드": "005930", "현재가(원)": "100", "등락(원)": "0"},
        {"번호": 2, "종목명": "B", "종목코드": 5930, "현재가(원)": "100", "등락(원)": "0"}
    ]`
    if err := os.WriteFile(dup, []byte(content), 0o644); err != nil {
        t.Fatal(err)
    }
    if _, err := Load(dup); err == nil {
        t.Fatal("duplicate codes should fail")
    }
}

func TestFieldParsing(t *testing.T) {
    cases := []struct {
        in   Field
        i    int64
        f    float64
    }{
        {"181,200", 181200, 181200},
        {"-1,500", -1500, -1500},
        {"-", 0, 0},
        {"", 0, 0},
        {"31.09", 31, 31.09},
        {"abc", 0, 0},
    }
    for _, c := range cases {
        if got := c.in.Int(); got != c.i {
            t.Errorf("Field(%q).Int() = %d, want %d", c.in, got, c.i)
        }
        if got := c.in.Float(); got != c.f {
            t.Errorf("Field(%q).Float() = %v, want %v", c.in, got, c.f)
        }
    }
}
