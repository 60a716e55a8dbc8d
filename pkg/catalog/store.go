// Package catalog provides the immutable, ordered record store the dialogue engine reads from.
package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
)

// Store is an ordered, read-only collection of records.
// It is safe for concurrent use because it is never mutated after New.
type Store struct {
	records []domain.Record
	folded  []string // lowercased names, same order as records
}

// New creates a store holding a private copy of records.
func New(records []domain.Record) (*Store, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	s := &Store{
		records: make([]domain.Record, len(records)),
		folded:  make([]string, len(records)),
	}
	copy(s.records, records)

	for i, r := range s.records {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: record %d has an empty name", domain.ErrCatalogLoad, i)
		}
		s.folded[i] = strings.ToLower(r.Name)
	}
	return s, nil
}

// FindByName returns the first record, in store order, whose name contains query
// case-insensitively.
func (s *Store) FindByName(query string) (domain.Record, bool) {
	q := strings.ToLower(query)
	for i, name := range s.folded {
		if strings.Contains(name, q) {
			return s.records[i], true
		}
	}
	return domain.Record{}, false
}

// FindByLocation returns every record whose location contains query case-insensitively,
// in store order. A blank query matches nothing.
func (s *Store) FindByLocation(query string) []domain.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Record
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Location), q) {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of the records in store order.
func (s *Store) All() []domain.Record {
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
