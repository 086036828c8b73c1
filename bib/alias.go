package bib

import (
	"fmt"
	"strconv"
	"strings"

	"citeview/bib/field"
)

// Pairs of fields bibtex and biblatex use for the same information.
var aliases = map[string]field.Field{
	field.Journal.Key():       field.JournalTitle,
	field.JournalTitle.Key():  field.Journal,
	field.Address.Key():       field.Location,
	field.Location.Key():      field.Address,
	field.School.Key():        field.Institution,
	field.Institution.Key():   field.School,
	field.Annote.Key():        field.Annotation,
	field.Annotation.Key():    field.Annote,
	field.ArchivePrefix.Key(): field.EprintType,
	field.EprintType.Key():    field.ArchivePrefix,
	field.PrimaryClass.Key():  field.EprintClass,
	field.EprintClass.Key():   field.PrimaryClass,
}

var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// FieldOrAlias returns field value, falling back to its alias. Year and
// month are derived from date and date is composed from year and month.
func (r *Record) FieldOrAlias(f field.Field) (string, bool) {
	if v, ok := r.Field(f); ok {
		return v, true
	}
	if alias, ok := aliases[f.Key()]; ok {
		if v, ok := r.Field(alias); ok {
			return v, true
		}
	}

	switch f.Key() {
	case field.Year.Key():
		if date, ok := r.Field(field.Date); ok {
			if year, _, ok := splitDate(date); ok {
				return year, true
			}
		}
	case field.Month.Key():
		if date, ok := r.Field(field.Date); ok {
			if _, month, ok := splitDate(date); ok && month > 0 {
				return strconv.Itoa(month), true
			}
		}
	case field.Date.Key():
		year, ok := r.Field(field.Year)
		if !ok {
			return "", false
		}
		if m, ok := r.Field(field.Month); ok {
			if month := parseMonth(m); month > 0 {
				return fmt.Sprintf("%s-%02d", year, month), true
			}
		}
		return year, true
	}
	return "", false
}

// splitDate understands "YYYY", "YYYY-MM" and "YYYY-MM-DD" forms, anything
// after that (time, ranges) is ignored.
func splitDate(date string) (string, int, bool) {
	date = strings.TrimSpace(date)
	if i := strings.IndexAny(date, "/T "); i >= 0 {
		date = date[:i]
	}
	parts := strings.Split(date, "-")
	year := parts[0]
	if len(year) != 4 {
		return "", 0, false
	}
	if _, err := strconv.Atoi(year); err != nil {
		return "", 0, false
	}
	if len(parts) < 2 {
		return year, 0, true
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return year, 0, true
	}
	return year, month, true
}

// parseMonth accepts numbers, bibtex macros (#may#) and english names.
func parseMonth(text string) int {
	text = strings.ToLower(strings.Trim(strings.TrimSpace(text), "#{}"))
	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(text) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if strings.HasPrefix(text, name) {
			return i + 1
		}
	}
	return 0
}
