package bib

import "maps"

// Clone creates a deep copy of the record. Copy gets its own identifier, so
// it can live in the same store next to the original (once its citation key
// is changed).
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return &Record{
		id:     newID(),
		typ:    r.typ,
		key:    r.key,
		fields: maps.Clone(r.fields),
	}
}
