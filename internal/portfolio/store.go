// Package portfolio persists the user's two ETF position records.
package portfolio

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "path/filepath"
    "time"

    _ "modernc.org/sqlite"
)

// The dashboard is single-user; everything hangs off one fixed row.
const defaultID = "default"

// Record holds the holdings the dashboard needs to value a portfolio:
// quantity, average buy price, and invested principal per tracked ETF.
type Record struct {
    KodexQuantity  int64     `json:"kodexQuantity"`
    KodexAvgPrice  int64     `json:"kodexAvgPrice"`
    KodexPrincipal int64     `json:"kodexPrincipal"`
    TigerQuantity  int64     `json:"tigerQuantity"`
    TigerAvgPrice  int64     `json:"tigerAvgPrice"`
    TigerPrincipal int64     `json:"tigerPrincipal"`
    UpdatedAt      time.Time `json:"updatedAt"`
}

// Default is what GET returns before anything was ever saved.
func Default() Record {
    return Record{
        KodexQuantity:  27,
        KodexAvgPrice:  76573,
        KodexPrincipal: 27 * 76573,
    }
}

// Store wraps a SQLite database holding the singleton portfolio row.
type Store struct {
    db *sql.DB
}

// Open opens or creates the SQLite database at dbPath.
func Open(dbPath string) (*Store, error) {
    if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
        return nil, fmt.Errorf("create data directory: %w", err)
    }
    db, err := sql.Open("sqlite", dbPath)
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }
    db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
    if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
        return nil, fmt.Errorf("set WAL mode: %w", err)
    }
    if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS portfolio (
        id              TEXT PRIMARY KEY,
        kodex_quantity  INTEGER NOT NULL DEFAULT 0,
        kodex_avg_price INTEGER NOT NULL DEFAULT 0,
        kodex_principal INTEGER NOT NULL DEFAULT 0,
        tiger_quantity  INTEGER NOT NULL DEFAULT 0,
        tiger_avg_price INTEGER NOT NULL DEFAULT 0,
        tiger_principal INTEGER NOT NULL DEFAULT 0,
        updated_at      INTEGER NOT NULL
    )`); err != nil {
        return nil, fmt.Errorf("create table: %w", err)
    }
    return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
    return s.db.Close()
}

// Get returns the stored record, or the defaults when nothing was ever
// saved.
func (s *Store) Get(ctx context.Context) (Record, error) {
    row := s.db.QueryRowContext(ctx, `
        SELECT kodex_quantity, kodex_avg_price, kodex_principal,
               tiger_quantity, tiger_avg_price, tiger_principal, updated_at
        FROM portfolio WHERE id = ?`, defaultID)

    var r Record
    var updatedAtNano int64
    err := row.Scan(
        &r.KodexQuantity, &r.KodexAvgPrice, &r.KodexPrincipal,
        &r.TigerQuantity, &r.TigerAvgPrice, &r.TigerPrincipal,
        &updatedAtNano,
    )
    if err == sql.ErrNoRows {
        return Default(), nil
    }
    if err != nil {
        return Record{}, fmt.Errorf("get portfolio: %w", err)
    }
    r.UpdatedAt = time.Unix(0, updatedAtNano)
    return r, nil
}

// Save upserts the singleton record and returns it with the new
// timestamp.
func (s *Store) Save(ctx context.Context, r Record) (Record, error) {
    r.UpdatedAt = time.Now()
    _, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO portfolio
            (id, kodex_quantity, kodex_avg_price, kodex_principal,
             tiger_quantity, tiger_avg_price, tiger_principal, updated_at)
        VALUES (?,?,?,?,?,?,?,?)`,
        defaultID,
        r.KodexQuantity, r.KodexAvgPrice, r.KodexPrincipal,
        r.TigerQuantity, r.TigerAvgPrice, r.TigerPrincipal,
        r.UpdatedAt.UnixNano(),
    )
    if err != nil {
        return Record{}, fmt.Errorf("save portfolio: %w", err)
    }
    return r, nil
}
