// Package aggregate implements the per-aircraft aggregator: sparse SBS
// messages for a hex_ident are merged field-by-field into a coherent
// snapshot with a sliding time-to-live.
package aggregate

import (
	"log"
	"strings"
	"time"

	"github.com/tidwall/buntdb"
)

// TTL is the sliding time-to-live refreshed on every merge.
const TTL = 30 * time.Minute

const keyPrefix = "aggregate:"

// Store is a buntdb-backed aggregator. One key per (hex, field) pair is
// kept so that each field's TTL slides independently on the exact
// write that refreshed it, matching the "most recent non-empty value"
// invariant without ever storing an empty string.
type Store struct {
	db *buntdb.DB
}

// Open opens (creating if necessary) the aggregator database at path.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func fieldKey(hex, field string) string {
	return keyPrefix + hex + ":" + field
}

// Merge drops empty fields from the given field->value mapping, upserts
// the rest into aggregate:<hex>:<field>, and refreshes each written
// key's TTL to 30 minutes. Store failures are logged and swallowed:
// aggregation is best-effort and must never block the processor loop.
func (s *Store) Merge(hex string, fields map[string]string) {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		for field, value := range fields {
			if value == "" {
				continue
			}
			if _, _, err := tx.Set(fieldKey(hex, field), value, &buntdb.SetOptions{Expires: true, TTL: TTL}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("aggregate: merge failed hex=%s err=%v", hex, err)
	}
}

// Snapshot reads back the full field->value mapping for hex. It is
// empty (not an error) when the aircraft has not been seen recently.
func (s *Store) Snapshot(hex string) map[string]string {
	out := make(map[string]string)
	prefix := fieldKey(hex, "")
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(prefix+"*", func(key, value string) bool {
			field := strings.TrimPrefix(key, prefix)
			out[field] = value
			return true
		})
	})
	if err != nil {
		log.Printf("aggregate: snapshot failed hex=%s err=%v", hex, err)
	}
	return out
}
