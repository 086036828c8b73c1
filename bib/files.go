package bib

import (
	"strings"

	"citeview/bib/field"
)

// LinkedFile is a single item of the file field.
type LinkedFile struct {
	Description string
	Link        string
	FileType    string
}

// Files parses file field. Field keeps items as "description:link:type"
// separated by ';', separators inside values are escaped with backslash.
// Item with a single part is a bare link, parts past the third are ignored.
func (r *Record) Files() []LinkedFile {
	text, ok := r.Field(field.File)
	if !ok {
		return nil
	}

	var (
		files []LinkedFile
		parts []string
		cur   strings.Builder
		split bool
	)
	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		// empty item without separators is noise, "::" is a real empty file
		if split || parts[0] != "" {
			files = append(files, linkedFile(parts))
		}
		parts, split = parts[:0], false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '\\':
			if i+1 < len(runes) {
				i++
				cur.WriteRune(runes[i])
			}
		case ':':
			parts = append(parts, cur.String())
			cur.Reset()
			split = true
		case ';':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return files
}

func linkedFile(parts []string) LinkedFile {
	switch len(parts) {
	case 1:
		return LinkedFile{Link: parts[0]}
	case 2:
		return LinkedFile{Description: parts[0], Link: parts[1]}
	}
	return LinkedFile{Description: parts[0], Link: parts[1], FileType: parts[2]}
}

// SetFiles replaces file field with the list, empty list clears the field.
func (r *Record) SetFiles(files []LinkedFile) {
	if len(files) == 0 {
		r.ClearField(field.File)
		return
	}
	items := make([]string, len(files))
	for i, f := range files {
		items[i] = escapeFilePart(f.Description) + ":" + escapeFilePart(f.Link) + ":" + escapeFilePart(f.FileType)
	}
	r.SetField(field.File, strings.Join(items, ";"))
}

var fileEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`, `;`, `\;`)

func escapeFilePart(s string) string {
	return fileEscaper.Replace(s)
}
