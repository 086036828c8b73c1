package bib

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateKey is returned when inserted record has citation key already
// present in the store.
var ErrDuplicateKey = errors.New("duplicate citation key")

// Index is all resolvers need from a store: lookup by citation key.
type Index interface {
	Lookup(key string) (*Record, bool)
}

// Store is an ordered collection of records indexed by citation key. Records
// without citation key are kept, but cannot be crossref targets.
// NOTE: presently not to be used concurrently!
type Store struct {
	records []*Record
	byKey   map[string]*Record
}

func NewStore() *Store {
	return &Store{byKey: make(map[string]*Record)}
}

// Insert adds record to the store. Record with duplicate citation key is
// rejected and store is left unchanged.
func (s *Store) Insert(r *Record) error {
	if r == nil {
		return errors.New("nil record")
	}
	if k := r.CitationKey(); k != "" {
		if _, exists := s.byKey[k]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, k)
		}
		s.byKey[k] = r
	}
	s.records = append(s.records, r)
	return nil
}

// Remove takes record out of the store. Records referring to it are not
// touched, their crossref simply stops resolving.
func (s *Store) Remove(r *Record) bool {
	if r == nil {
		return false
	}
	i := slices.IndexFunc(s.records, func(e *Record) bool { return e.ID() == r.ID() })
	if i < 0 {
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	if k := r.CitationKey(); k != "" && s.byKey[k] == r {
		delete(s.byKey, k)
	}
	return true
}

// Lookup finds record by citation key. Keys are compared exactly.
func (s *Store) Lookup(key string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	r, ok := s.byKey[key]
	return r, ok
}

// Records returns records in insertion order.
func (s *Store) Records() []*Record {
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	return len(s.records)
}

// Reindex rebuilds citation key index after keys were changed in place. First
// record wins on collisions and rejected records are returned with an error.
func (s *Store) Reindex() ([]*Record, error) {
	s.byKey = make(map[string]*Record, len(s.records))
	var dups []*Record
	for _, r := range s.records {
		k := r.CitationKey()
		if k == "" {
			continue
		}
		if _, exists := s.byKey[k]; exists {
			dups = append(dups, r)
			continue
		}
		s.byKey[k] = r
	}
	if len(dups) > 0 {
		return dups, fmt.Errorf("%w: %d record(s) not indexed", ErrDuplicateKey, len(dups))
	}
	return nil, nil
}
