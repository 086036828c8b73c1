// Package bib implements bibliographic records, their store and resolution of
// field values through cross-references.
package bib

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"citeview/bib/field"
)

type value struct {
	field field.Field
	text  string
}

// Record is a single bibliographic entity.
// NOTE: not safe for concurrent mutation, readers must not overlap with
// SetField/ClearField.
type Record struct {
	id     uuid.UUID
	typ    string
	key    string
	fields map[string]value
}

// NewRecord creates empty record of a given entry type with fresh identifier.
func NewRecord(entryType string) *Record {
	return &Record{
		id:     newID(),
		typ:    strings.ToLower(strings.TrimSpace(entryType)),
		fields: make(map[string]value),
	}
}

// newID mints process-lifetime identifier, it is never persisted.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func (r *Record) ID() uuid.UUID {
	return r.id
}

func (r *Record) Type() string {
	return r.typ
}

func (r *Record) SetType(entryType string) {
	r.typ = strings.ToLower(strings.TrimSpace(entryType))
}

// CitationKey returns key under which record is indexed in the store.
func (r *Record) CitationKey() string {
	return r.key
}

// SetCitationKey changes citation key. If record is already in a store, the
// store has to be reindexed.
func (r *Record) SetCitationKey(key string) {
	r.key = strings.TrimSpace(key)
}

// SetField sets field value, empty value clears the field. Alternation groups
// cannot be set and false is returned for them.
func (r *Record) SetField(f field.Field, text string) bool {
	if f.IsZero() || f.Kind() == field.KindGroup {
		return false
	}
	if text == "" {
		r.ClearField(f)
		return true
	}
	r.fields[f.Key()] = value{field: f, text: text}
	return true
}

// Field returns value stored directly in the record.
func (r *Record) Field(f field.Field) (string, bool) {
	if f.IsZero() {
		return "", false
	}
	v, ok := r.fields[f.Key()]
	if !ok {
		return "", false
	}
	return v.text, true
}

// ClearField removes field and reports whether it was present.
func (r *Record) ClearField(f field.Field) bool {
	if _, ok := r.fields[f.Key()]; !ok {
		return false
	}
	delete(r.fields, f.Key())
	return true
}

func (r *Record) HasField(f field.Field) bool {
	_, ok := r.fields[f.Key()]
	return ok
}

// Fields returns fields present in the record ordered by key.
func (r *Record) Fields() []field.Field {
	out := make([]field.Field, 0, len(r.fields))
	for _, v := range r.fields {
		out = append(out, v.field)
	}
	slices.SortFunc(out, func(a, b field.Field) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return out
}

// Crossref returns citation key of the record this one inherits from.
func (r *Record) Crossref() (string, bool) {
	v, ok := r.Field(field.Crossref)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
