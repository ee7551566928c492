// Package refstore adapts the read-only reference tables (airplane,
// airline, country, icao_type) that an out-of-scope bulk loader
// populates ahead of time. It is a nice-to-have fast path ahead of the
// remote hexdb lookup in the enrichment engine, not a hard dependency:
// a missing database file degrades every query to a miss rather than
// failing startup. A file that exists but cannot be opened is reported
// as an error by Open.
package refstore

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Store is a read-only handle onto the embedded reference database.
type Store struct {
	db *sql.DB
}

// Open opens the DuckDB file at path read-only. If path does not exist,
// Open still succeeds, returning a Store whose queries always miss --
// the reference store is optional, and startup must not fail just
// because the external loader has not run yet.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("refstore: %s not found, reference lookups will miss: %v", path, err)
		return &Store{}, nil
	}
	db, err := sql.Open("duckdb", path+"?access_mode=read_only")
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// queryRow runs a single-row equality query and projects the result to
// a flat column -> value mapping, the same shape model_to_dict produces
// in the system this was modeled on. Multiple matching rows are
// possible for some of these tables; only the first is returned.
func (s *Store) queryRow(table, column string, value string) (map[string]any, bool) {
	if s.db == nil {
		return nil, false
	}

	query := "SELECT * FROM " + table + " WHERE " + column + " = ? LIMIT 1"
	rows, err := s.db.Query(query, value)
	if err != nil {
		log.Printf("refstore: query %s failed: %v", table, err)
		return nil, false
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false
	}

	cols, err := rows.Columns()
	if err != nil {
		log.Printf("refstore: columns %s failed: %v", table, err)
		return nil, false
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		log.Printf("refstore: scan %s failed: %v", table, err)
		return nil, false
	}

	out := make(map[string]any, len(cols))
	for i, c := range cols {
		out[c] = vals[i]
	}
	return out, true
}

// Airplane looks up airplane[icao_code_hex = hex].
func (s *Store) Airplane(hex string) (map[string]any, bool) {
	return s.queryRow("airplanes", "icao_code_hex", hex)
}

// Airline looks up airline[iata_code = code, status = "active"].
func (s *Store) Airline(iataCode string) (map[string]any, bool) {
	if s.db == nil {
		return nil, false
	}
	query := "SELECT * FROM airlines WHERE iata_code = ? AND status = 'active' LIMIT 1"
	rows, err := s.db.Query(query, iataCode)
	if err != nil {
		log.Printf("refstore: query airlines failed: %v", err)
		return nil, false
	}
	defer rows.Close()
	return scanOne(rows)
}

// Country looks up country[country_iso2 = iso2].
func (s *Store) Country(iso2 string) (map[string]any, bool) {
	return s.queryRow("countries", "country_iso2", iso2)
}

// ICAOType looks up icao_type[designator = designator].
func (s *Store) ICAOType(designator string) (map[string]any, bool) {
	return s.queryRow("icao_doc8643_2019", "designator", designator)
}

func scanOne(rows *sql.Rows) (map[string]any, bool) {
	if !rows.Next() {
		return nil, false
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, false
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, false
	}
	out := make(map[string]any, len(cols))
	for i, c := range cols {
		out[c] = vals[i]
	}
	return out, true
}
