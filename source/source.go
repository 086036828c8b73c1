// Package source loads bibliographic records from files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"citeview/bib"
	"citeview/bib/field"
)

// Format of the record source.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatXML
	FormatSQLite
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatXML:
		return "xml"
	case FormatSQLite:
		return "sqlite"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned for sources of unknown format.
var ErrUnsupported = errors.New("unsupported record source")

// rawRecord is the record as it comes from any source, before validation.
type rawRecord struct {
	Key    string            `yaml:"key"`
	Type   string            `yaml:"type"`
	Fields map[string]string `yaml:"fields"`

	origin string
}

// headSize is enough for filetype matchers.
const headSize = 262

// Detect guesses format from file content and name. Binary containers are
// recognized by signature, text formats by extension and then by content.
func Detect(name string, head []byte) Format {
	switch {
	case filetype.Is(head, "sqlite"):
		return FormatSQLite
	case filetype.Is(head, "zip"):
		return FormatZip
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".xml":
		return FormatXML
	case ".sqlite", ".db":
		return FormatSQLite
	case ".zip":
		return FormatZip
	}
	text := strings.TrimSpace(string(head))
	switch {
	case text == "":
		return FormatUnknown
	case strings.HasPrefix(text, "<"):
		return FormatXML
	default:
		return FormatYAML
	}
}

func sniff(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

// Load reads records from path into a new store. Problems with individual
// records (duplicate keys, bad field names) do not fail the load, they are
// logged as warnings and offending data is skipped.
func Load(ctx context.Context, path string, log *zap.Logger) (*bib.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	head, err := sniff(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read record source: %w", err)
	}

	b := newBuilder()
	format := Detect(path, head)
	switch format {
	case FormatYAML:
		err = b.addFile(ctx, path, readYAML)
	case FormatXML:
		err = b.addFile(ctx, path, readXML)
	case FormatSQLite:
		err = b.addSQLite(ctx, path)
	case FormatZip:
		err = b.addZip(ctx, path, log)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load records from %s: %w", path, err)
	}

	for _, w := range multierr.Errors(b.warnings) {
		log.Warn("Record skipped or incomplete", zap.Error(w))
	}
	log.Debug("Records loaded", zap.String("source", path), zap.Stringer("format", format), zap.Int("count", b.store.Len()))
	return b.store, nil
}

// builder fills store from raw records, collecting per-record problems.
type builder struct {
	store    *bib.Store
	warnings error
}

func newBuilder() *builder {
	return &builder{store: bib.NewStore()}
}

func (b *builder) warn(format string, args ...any) {
	b.warnings = multierr.Append(b.warnings, fmt.Errorf(format, args...))
}

// add inserts records, only context cancellation is reported as error.
func (b *builder) add(ctx context.Context, raws []rawRecord) error {
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return err
		}

		where := raw.origin
		if where == "" {
			where = fmt.Sprintf("record #%d", i+1)
		}

		typ := strings.TrimSpace(raw.Type)
		if typ == "" {
			b.warn("%s (%s): no entry type, using misc", where, raw.Key)
			typ = "misc"
		}
		r := bib.NewRecord(typ)
		r.SetCitationKey(strings.TrimSpace(raw.Key))

		for _, name := range slices.Sorted(maps.Keys(raw.Fields)) {
			f := field.Parse(strings.TrimSpace(name))
			if f.IsZero() {
				b.warn("%s (%s): blank field name", where, raw.Key)
				continue
			}
			if !r.SetField(f, raw.Fields[name]) && raw.Fields[name] != "" {
				b.warn("%s (%s): field %q cannot be set", where, raw.Key, name)
			}
		}

		if err := b.store.Insert(r); err != nil {
			b.warnings = multierr.Append(b.warnings, fmt.Errorf("%s: %w", where, err))
		}
	}
	return nil
}

// addFile decodes single text file with the reader.
func (b *builder) addFile(ctx context.Context, path string, read func(io.Reader, string) ([]rawRecord, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	raws, err := read(f, filepath.Base(path))
	if err != nil {
		return err
	}
	return b.add(ctx, raws)
}
