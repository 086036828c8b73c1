package bib

import (
	"citeview/bib/field"
)

// Resolver looks up scalar field value for the record, following crossref
// when necessary.
type Resolver interface {
	ResolveField(r *Record, f field.Field, idx Index) (string, bool)
}

// ResolverFunc adapts ordinary function to Resolver.
type ResolverFunc func(r *Record, f field.Field, idx Index) (string, bool)

func (fn ResolverFunc) ResolveField(r *Record, f field.Field, idx Index) (string, bool) {
	return fn(r, f, idx)
}

var (
	// DirectResolver looks at the field itself and its crossref twin.
	DirectResolver Resolver = ResolverFunc(ResolveField)
	// AliasResolver additionally tries field aliases on every hop.
	AliasResolver Resolver = ResolverFunc(ResolveFieldOrAlias)
)

func crossrefTarget(r *Record, idx Index) (*Record, bool) {
	if idx == nil {
		return nil, false
	}
	key, ok := r.Crossref()
	if !ok {
		return nil, false
	}
	parent, ok := idx.Lookup(key)
	if !ok || parent == nil || parent == r {
		return nil, false
	}
	return parent, true
}

// ResolveField returns field value from the record or, when absent, from the
// record referenced by crossref. Exactly one hop is made: crossref of the
// target is never followed. Dangling crossref is the same as no crossref.
func ResolveField(r *Record, f field.Field, idx Index) (string, bool) {
	return resolveWith(r, f, idx, (*Record).Field)
}

// ResolveFieldOrAlias is ResolveField which also accepts aliased fields.
func ResolveFieldOrAlias(r *Record, f field.Field, idx Index) (string, bool) {
	return resolveWith(r, f, idx, (*Record).FieldOrAlias)
}

func resolveWith(r *Record, f field.Field, idx Index, get func(*Record, field.Field) (string, bool)) (string, bool) {
	if r == nil || f.IsZero() {
		return "", false
	}
	if f.Kind() == field.KindGroup {
		return ResolveGroupWith(ResolverFunc(func(r *Record, f field.Field, idx Index) (string, bool) {
			return resolveWith(r, f, idx, get)
		}), r, f, idx)
	}
	if v, ok := get(r, f); ok && v != "" {
		return v, true
	}
	if parent, ok := crossrefTarget(r, idx); ok {
		if v, ok := get(parent, f); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ResolveGroup walks alternation group in declaration order and returns the
// first non-empty value. Every member is resolved exactly once via scalar
// resolution (so each member gets its own crossref hop).
func ResolveGroup(r *Record, g field.Field, idx Index) (string, bool) {
	return ResolveGroupWith(DirectResolver, r, g, idx)
}

// ResolveGroupWith is ResolveGroup with caller supplied scalar resolver.
func ResolveGroupWith(res Resolver, r *Record, g field.Field, idx Index) (string, bool) {
	for _, f := range g.Members() {
		if v, ok := res.ResolveField(r, f, idx); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Resolve dispatches on field kind using the given resolver.
func Resolve(res Resolver, r *Record, f field.Field, idx Index) (string, bool) {
	if res == nil {
		res = DirectResolver
	}
	if f.Kind() == field.KindGroup {
		return ResolveGroupWith(res, r, f, idx)
	}
	return res.ResolveField(r, f, idx)
}
