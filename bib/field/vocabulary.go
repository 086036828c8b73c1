package field

// Standard fields known to the bibliographic model.
var (
	Abstract      = newScalar(KindStandard, "abstract")
	Address       = newScalar(KindStandard, "address")
	Annotation    = newScalar(KindStandard, "annotation")
	Annote        = newScalar(KindStandard, "annote")
	ArchivePrefix = newScalar(KindStandard, "archiveprefix")
	Author        = newScalar(KindStandard, "author")
	BookTitle     = newScalar(KindStandard, "booktitle")
	Chapter       = newScalar(KindStandard, "chapter")
	Comment       = newScalar(KindStandard, "comment")
	Crossref      = newScalar(KindStandard, "crossref")
	Date          = newScalar(KindStandard, "date")
	DOI           = newScalar(KindStandard, "doi")
	Edition       = newScalar(KindStandard, "edition")
	Editor        = newScalar(KindStandard, "editor")
	Eprint        = newScalar(KindStandard, "eprint")
	EprintClass   = newScalar(KindStandard, "eprintclass")
	EprintType    = newScalar(KindStandard, "eprinttype")
	File          = newScalar(KindStandard, "file")
	HowPublished  = newScalar(KindStandard, "howpublished")
	Institution   = newScalar(KindStandard, "institution")
	ISBN          = newScalar(KindStandard, "isbn")
	ISSN          = newScalar(KindStandard, "issn")
	Journal       = newScalar(KindStandard, "journal")
	JournalTitle  = newScalar(KindStandard, "journaltitle")
	Keywords      = newScalar(KindStandard, "keywords")
	Location      = newScalar(KindStandard, "location")
	Month         = newScalar(KindStandard, "month")
	Note          = newScalar(KindStandard, "note")
	Number        = newScalar(KindStandard, "number")
	Organization  = newScalar(KindStandard, "organization")
	Pages         = newScalar(KindStandard, "pages")
	PrimaryClass  = newScalar(KindStandard, "primaryclass")
	Publisher     = newScalar(KindStandard, "publisher")
	School        = newScalar(KindStandard, "school")
	Series        = newScalar(KindStandard, "series")
	Title         = newScalar(KindStandard, "title")
	URL           = newScalar(KindStandard, "url")
	Volume        = newScalar(KindStandard, "volume")
	Year          = newScalar(KindStandard, "year")
)

// Special fields carry user-maintained marks rather than bibliographic data.
var (
	Ranking    = newScalar(KindSpecial, "ranking")
	Priority   = newScalar(KindSpecial, "priority")
	Relevance  = newScalar(KindSpecial, "relevance")
	Quality    = newScalar(KindSpecial, "quality")
	Printed    = newScalar(KindSpecial, "printed")
	ReadStatus = newScalar(KindSpecial, "readstatus")
)

var standard = index(
	Abstract, Address, Annotation, Annote, ArchivePrefix, Author, BookTitle,
	Chapter, Comment, Crossref, Date, DOI, Edition, Editor, Eprint, EprintClass,
	EprintType, File, HowPublished, Institution, ISBN, ISSN, Journal,
	JournalTitle, Keywords, Location, Month, Note, Number, Organization, Pages,
	PrimaryClass, Publisher, School, Series, Title, URL, Volume, Year,
)

var special = index(Ranking, Priority, Relevance, Quality, Printed, ReadStatus)

func index(fields ...Field) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.key] = f
	}
	return m
}

// IsStandard reports whether name belongs to standard vocabulary.
func IsStandard(name string) bool {
	return Parse(name).kind == KindStandard
}

// Specials returns all special fields.
func Specials() []Field {
	return []Field{Ranking, Priority, Relevance, Quality, Printed, ReadStatus}
}
