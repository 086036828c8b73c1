// Package field defines identities of record attributes.
package field

import (
	"strings"
)

// Kind tells which variant of field identity we are dealing with.
type Kind int

const (
	KindUnknown Kind = iota
	KindStandard
	KindSpecial
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindSpecial:
		return "special"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Field identifies record attribute. Identity is case-insensitive: all
// comparisons and map keys use canonical lower-cased form returned by Key().
// Zero value is an unknown field with empty name and should not be used.
type Field struct {
	kind    Kind
	name    string
	key     string
	members []Field
}

func newScalar(kind Kind, name string) Field {
	name = strings.TrimSpace(name)
	return Field{kind: kind, name: name, key: strings.ToLower(name)}
}

// Unknown creates free-form field with arbitrary name.
func Unknown(name string) Field {
	return newScalar(KindUnknown, name)
}

// Group creates ordered alternation of fields. Nested groups are flattened,
// group of a single member collapses to that member.
func Group(fields ...Field) Field {
	members := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.kind == KindGroup {
			members = append(members, f.members...)
			continue
		}
		if f.key == "" {
			continue
		}
		members = append(members, f)
	}
	switch len(members) {
	case 0:
		return Field{}
	case 1:
		return members[0]
	}

	names := make([]string, len(members))
	keys := make([]string, len(members))
	for i, m := range members {
		names[i], keys[i] = m.name, m.key
	}
	return Field{
		kind:    KindGroup,
		name:    strings.Join(names, "/"),
		key:     strings.Join(keys, "/"),
		members: members,
	}
}

// Parse builds field from its textual name. Names separated by "/" form an
// alternation group, known names map to standard and special fields.
func Parse(name string) Field {
	if strings.Contains(name, "/") {
		parts := strings.Split(name, "/")
		fields := make([]Field, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				continue
			}
			fields = append(fields, Parse(p))
		}
		return Group(fields...)
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := standard[key]; ok {
		return f
	}
	if f, ok := special[key]; ok {
		return f
	}
	return Unknown(name)
}

func (f Field) Kind() Kind {
	return f.kind
}

// Name returns display name as it was given on construction.
func (f Field) Name() string {
	return f.name
}

// Key returns canonical identity of the field.
func (f Field) Key() string {
	return f.key
}

// IsZero reports whether field has no identity at all.
func (f Field) IsZero() bool {
	return f.key == ""
}

// Members returns fields to try in declaration order. For scalar field this
// is the field itself.
func (f Field) Members() []Field {
	if f.kind != KindGroup {
		if f.key == "" {
			return nil
		}
		return []Field{f}
	}
	out := make([]Field, len(f.members))
	copy(out, f.members)
	return out
}

func (f Field) Equal(other Field) bool {
	return f.key == other.key
}

func (f Field) String() string {
	return f.name
}
