package bib

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"citeview/bib/field"
)

// ErrAbbreviated is reported for journal names given in abbreviated form.
var ErrAbbreviated = errors.New("abbreviation detected")

// Abbreviation pairs full journal name with its abbreviated form.
type Abbreviation struct {
	Name         string
	Abbreviation string
}

// Abbreviations is a journal abbreviation list. Names are matched ignoring
// case and surrounding spaces, later additions win.
// NOTE: presently not to be used concurrently!
type Abbreviations struct {
	byName   map[string]Abbreviation
	byAbbrev map[string]Abbreviation
}

func NewAbbreviations(list ...Abbreviation) *Abbreviations {
	a := &Abbreviations{
		byName:   make(map[string]Abbreviation),
		byAbbrev: make(map[string]Abbreviation),
	}
	for _, e := range list {
		a.Add(e)
	}
	return a
}

func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Add puts entry into the list, entries with empty name or abbreviation are
// ignored.
func (a *Abbreviations) Add(e Abbreviation) {
	e.Name, e.Abbreviation = strings.TrimSpace(e.Name), strings.TrimSpace(e.Abbreviation)
	if e.Name == "" || e.Abbreviation == "" {
		return
	}
	a.byName[foldName(e.Name)] = e
	a.byAbbrev[foldName(e.Abbreviation)] = e
}

func (a *Abbreviations) Len() int {
	if a == nil {
		return 0
	}
	return len(a.byName)
}

// IsKnownName reports whether name is either full or abbreviated form of a
// listed journal.
func (a *Abbreviations) IsKnownName(name string) bool {
	if a == nil {
		return false
	}
	key := foldName(name)
	_, full := a.byName[key]
	_, short := a.byAbbrev[key]
	return full || short
}

// IsAbbreviatedName reports whether name is an abbreviation. Journal which
// abbreviates to its own name is never considered abbreviated.
func (a *Abbreviations) IsAbbreviatedName(name string) bool {
	if a == nil {
		return false
	}
	key := foldName(name)
	e, ok := a.byAbbrev[key]
	return ok && foldName(e.Name) != key
}

// Abbreviate returns abbreviated form of the journal name. Name which is
// already abbreviated is returned as is.
func (a *Abbreviations) Abbreviate(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	key := foldName(name)
	if e, ok := a.byName[key]; ok {
		return e.Abbreviation, true
	}
	if e, ok := a.byAbbrev[key]; ok {
		return e.Abbreviation, true
	}
	return "", false
}

// Unabbreviate returns full journal name for the abbreviation. Full name is
// returned as is.
func (a *Abbreviations) Unabbreviate(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	key := foldName(name)
	if e, ok := a.byAbbrev[key]; ok {
		return e.Name, true
	}
	if e, ok := a.byName[key]; ok {
		return e.Name, true
	}
	return "", false
}

// AbbreviationIndex is what CheckAbbreviation needs from an abbreviation list.
type AbbreviationIndex interface {
	IsAbbreviatedName(name string) bool
}

// CheckAbbreviation returns ErrAbbreviated when value is an abbreviated
// journal name.
func CheckAbbreviation(idx AbbreviationIndex, value string) error {
	if idx == nil || strings.TrimSpace(value) == "" {
		return nil
	}
	if idx.IsAbbreviatedName(value) {
		return fmt.Errorf("%w: %s", ErrAbbreviated, strings.TrimSpace(value))
	}
	return nil
}

// CheckJournal checks journal (or journaltitle) stored in the record itself.
func CheckJournal(idx AbbreviationIndex, r *Record) error {
	v, ok := r.FieldOrAlias(field.Journal)
	if !ok {
		return nil
	}
	return CheckAbbreviation(idx, v)
}
