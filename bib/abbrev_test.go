package bib

import (
	"errors"
	"testing"

	"citeview/bib/field"
)

type abbreviatedFunc func(string) bool

func (fn abbreviatedFunc) IsAbbreviatedName(name string) bool { return fn(name) }

func TestCheckAbbreviation_Abbreviated(t *testing.T) {
	list := NewAbbreviations(Abbreviation{Name: "Test Journal", Abbreviation: "T. J."})

	err := CheckAbbreviation(list, "T. J.")
	if !errors.Is(err, ErrAbbreviated) {
		t.Errorf("CheckAbbreviation() = %v, want ErrAbbreviated", err)
	}
	if err := CheckAbbreviation(list, "Test Journal"); err != nil {
		t.Errorf("CheckAbbreviation() on full name = %v, want nil", err)
	}
}

func TestCheckAbbreviation_SameAbbreviation(t *testing.T) {
	list := NewAbbreviations(Abbreviation{Name: "Test Journal", Abbreviation: "T. J."})
	list.Add(Abbreviation{Name: "Journal", Abbreviation: "Journal"})

	if err := CheckAbbreviation(list, "Journal"); err != nil {
		t.Errorf("CheckAbbreviation() = %v, want nil", err)
	}
}

func TestCheckAbbreviation_Index(t *testing.T) {
	idx := abbreviatedFunc(func(name string) bool { return name == "J C" })

	err := CheckAbbreviation(idx, "J C")
	if err == nil || err.Error() != "abbreviation detected: J C" {
		t.Errorf("CheckAbbreviation() = %v, want abbreviation detected", err)
	}
	if err := CheckAbbreviation(idx, "Journal of C"); err != nil {
		t.Errorf("CheckAbbreviation() = %v, want nil", err)
	}
	if err := CheckAbbreviation(nil, "J C"); err != nil {
		t.Errorf("CheckAbbreviation() without index = %v, want nil", err)
	}
}

func TestAbbreviations_Lookup(t *testing.T) {
	list := NewAbbreviations(
		Abbreviation{Name: "Communications of the ACM", Abbreviation: "Commun. ACM"},
		Abbreviation{Name: "", Abbreviation: "Broken"},
	)

	if list.Len() != 1 {
		t.Errorf("Len() = %d, want 1", list.Len())
	}

	tests := []struct {
		name   string
		do     func(string) (string, bool)
		input  string
		want   string
		wantOk bool
	}{
		{"abbreviate full", list.Abbreviate, "Communications of the ACM", "Commun. ACM", true},
		{"abbreviate ignores case", list.Abbreviate, "  communications OF the acm ", "Commun. ACM", true},
		{"abbreviate abbreviated", list.Abbreviate, "Commun. ACM", "Commun. ACM", true},
		{"abbreviate unknown", list.Abbreviate, "Nature", "", false},
		{"unabbreviate", list.Unabbreviate, "commun. acm", "Communications of the ACM", true},
		{"unabbreviate full", list.Unabbreviate, "Communications of the ACM", "Communications of the ACM", true},
		{"unabbreviate unknown", list.Unabbreviate, "Broken", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.do(tt.input)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOk)
			}
		})
	}

	if !list.IsKnownName("COMMUN. ACM") || list.IsKnownName("Nature") {
		t.Error("IsKnownName() gives wrong answer")
	}
}

func TestAbbreviations_Nil(t *testing.T) {
	var list *Abbreviations
	if list.Len() != 0 || list.IsKnownName("x") || list.IsAbbreviatedName("x") {
		t.Error("nil list must be empty")
	}
	if _, ok := list.Abbreviate("x"); ok {
		t.Error("nil list must not abbreviate")
	}
}

func TestCheckJournal(t *testing.T) {
	list := NewAbbreviations(Abbreviation{Name: "Test Journal", Abbreviation: "T. J."})

	r := NewRecord("article")
	if err := CheckJournal(list, r); err != nil {
		t.Errorf("CheckJournal() without journal = %v", err)
	}
	r.SetField(field.JournalTitle, "T. J.")
	if err := CheckJournal(list, r); !errors.Is(err, ErrAbbreviated) {
		t.Errorf("CheckJournal() = %v, want ErrAbbreviated", err)
	}
}
