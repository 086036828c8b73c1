// Package cite implements program subcommands.
package cite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"citeview/bib"
	"citeview/config"
	"citeview/l10n"
	"citeview/layout"
	"citeview/layout/format"
	"citeview/preview"
	"citeview/source"
	"citeview/state"
)

// NewRegistry returns formatters available according to configuration.
func NewRegistry(cfg *config.Config, log *zap.Logger) *format.Registry {
	opts := []format.Option{format.WithLogger(log)}
	if cfg.Preview.Sprig {
		opts = append(opts, format.WithSprig())
	}
	for _, f := range journalFormatters(cfg.Journals.List()) {
		opts = append(opts, format.WithFormatter(f))
	}
	return format.NewRegistry(opts...)
}

// journalFormatters switch journal names between full and abbreviated forms,
// names not in the list are left alone.
func journalFormatters(list *bib.Abbreviations) []format.Formatter {
	lookup := func(fn func(string) (string, bool)) format.Func {
		return func(v, _ string) string {
			if name, ok := fn(v); ok {
				return name
			}
			return v
		}
	}
	return []format.Formatter{
		{Name: "Abbreviate", Apply: lookup(list.Abbreviate)},
		{Name: "Unabbreviate", Apply: lookup(list.Unabbreviate)},
	}
}

// Run is the action of the preview subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Logger("preview")
	cfg := &env.Cfg.Preview

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)

	l10n.SetLanguage(cfg.LanguageTag())

	text := cfg.Template
	if fname := cmd.String("template"); len(fname) > 0 {
		data, err := os.ReadFile(fname)
		if err != nil {
			return fmt.Errorf("unable to read template file: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
		env.Rpt.Store("template/"+filepath.Base(fname), fname)
	}

	// compile here rather than in facade so broken template stops the program
	l, err := layout.Compile(text, NewRegistry(env.Cfg, log.Named("format")))
	if err != nil {
		return fmt.Errorf("unable to prepare preview layout: %w", err)
	}
	env.Rpt.StoreData("layout/tree.txt", []byte(l.Dump()))
	p := preview.FromLayout(l,
		preview.WithLogger(log),
		preview.WithRenderOptions(layout.WithResolver(cfg.Resolver()), layout.WithMarker(cfg.Highlight.Marker())),
	)

	store, err := source.Load(ctx, src, env.Logger("source"))
	if err != nil {
		return err
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store record source in report", zap.Error(err))
	}

	records, err := selectRecords(store, cmd.StringSlice("key"), log)
	if err != nil {
		return err
	}

	pattern := cmd.String("highlight")
	if !cfg.Highlight.Enabled() {
		pattern = ""
	}

	var journals bib.AbbreviationIndex
	if env.Cfg.Journals.Check {
		journals = env.Cfg.Journals.List()
	}

	buf := new(bytes.Buffer)
	if err := render(ctx, buf, p, store, records, pattern, cfg.Delimiter(), journals, log); err != nil {
		return err
	}
	env.Rpt.StoreData("output/preview.txt", buf.Bytes())

	out := io.Writer(os.Stdout)
	if len(dst) > 0 {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
		}
		defer func() {
			if er := f.Close(); er != nil && err == nil {
				err = fmt.Errorf("unable to close destination file '%s': %w", dst, er)
			}
		}()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write preview: %w", err)
	}

	if len(dst) == 0 {
		dst = "STDOUT"
	}
	log.Info("Preview generated", zap.String("layout", p.Name()), zap.Int("records", len(records)), zap.String("to", dst))
	return nil
}

// selectRecords returns records for requested keys in requested order, all
// records when no keys are given. Unknown keys are reported and skipped.
func selectRecords(store *bib.Store, keys []string, log *zap.Logger) ([]*bib.Record, error) {
	if len(keys) == 0 {
		return store.Records(), nil
	}
	var records []*bib.Record
	for _, k := range keys {
		r, ok := store.Lookup(k)
		if !ok {
			log.Warn("Record not found", zap.String("key", k))
			continue
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("none of requested records found")
	}
	return records, nil
}

// render writes preview of every record separated by empty line, stopping
// early when context is canceled. Abbreviated journal names are reported when
// journals is not nil.
func render(ctx context.Context, w io.Writer, p preview.Layout, idx bib.Index, records []*bib.Record, pattern string, delim rune, journals bib.AbbreviationIndex, log *zap.Logger) error {
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if journals != nil {
			if err := bib.CheckJournal(journals, r); err != nil {
				log.Warn("Journal name is abbreviated", zap.String("key", r.CitationKey()), zap.Error(err))
			}
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, p.GeneratePreviewHighlighted(r, idx, pattern)); err != nil {
			return err
		}
		log.Debug("Record rendered",
			zap.String("key", r.CitationKey()),
			zap.Stringer("id", r.ID()),
			zap.Strings("keywords", r.ResolvedKeywords(delim, idx).Strings()))
	}
	if len(records) > 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// ListFormatters is the action of the formatters subcommand.
func ListFormatters(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	reg := NewRegistry(env.Cfg, env.Logger("format"))

	for _, name := range reg.Names() {
		f, _ := reg.Lookup(name)
		suffix := ""
		if f.Default {
			suffix = " (applies to absent fields)"
		}
		if _, err := fmt.Fprintln(cmd.Root().Writer, name+suffix); err != nil {
			return err
		}
	}
	return nil
}
