package cite

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"citeview/config"
	"citeview/state"
)

const records = `- key: knuth1997
  type: book
  fields:
    title: The Art of Computer Programming
    publisher: Addison-Wesley
    journaltitle: Series of Art
    keywords: algorithms, classic
- key: knuth1997ch1
  type: inbook
  fields:
    author: Donald E. Knuth
    chapter: Basic Concepts
    crossref: knuth1997
`

func newEnv(t *testing.T) (context.Context, *state.LocalEnv, *observer.ObservedLogs) {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg = cfg

	core, logs := observer.New(zapcore.DebugLevel)
	env.Log = zap.New(core)
	return ctx, env, logs
}

func previewCommand(out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:   "preview",
		Writer: out,
		Action: Run,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "key", Aliases: []string{"k"}},
			&cli.StringFlag{Name: "highlight", Aliases: []string{"H"}},
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}},
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", records)
	tmpl := writeFile(t, dir, "layout.txt", `\author/title: \chapter/title (\journal)`)

	tests := []struct {
		name    string
		args    []string
		aliases bool
		style   config.HighlightStyle
		want    string
	}{
		{
			name: "all records",
			args: []string{"--template", tmpl},
			want: "The Art of Computer Programming: The Art of Computer Programming ()\n\n" +
				"Donald E. Knuth: Basic Concepts ()\n",
		},
		{
			name: "selected keys in order",
			args: []string{"--template", tmpl, "-k", "knuth1997ch1", "-k", "missing"},
			want: "Donald E. Knuth: Basic Concepts ()\n",
		},
		{
			name:    "aliases through crossref",
			args:    []string{"--template", tmpl, "-k", "knuth1997ch1"},
			aliases: true,
			want:    "Donald E. Knuth: Basic Concepts (Series of Art)\n",
		},
		{
			name: "highlight",
			args: []string{"--template", tmpl, "-k", "knuth1997ch1", "-H", "basic"},
			want: "Donald E. Knuth: <mark>Basic</mark> Concepts ()\n",
		},
		{
			name:  "highlight disabled by style",
			args:  []string{"--template", tmpl, "-k", "knuth1997ch1", "-H", "basic"},
			style: config.HighlightStyleNone,
			want:  "Donald E. Knuth: Basic Concepts ()\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, env, _ := newEnv(t)
			env.Cfg.Preview.Aliases = tt.aliases
			env.Cfg.Preview.Highlight = tt.style

			dst := filepath.Join(t.TempDir(), "out.txt")
			args := append([]string{"preview"}, tt.args...)
			args = append(args, src, dst)
			if err := previewCommand(new(bytes.Buffer)).Run(ctx, args); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got, err := os.ReadFile(dst)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_TemplateFileKeepsEscapes(t *testing.T) {
	// escapes reach compiler untouched, trailing line break is dropped
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", records)
	tmpl := writeFile(t, dir, "layout.txt", "\\title__NEWLINE__\\{x\\}\n")

	ctx, _, _ := newEnv(t)
	dst := filepath.Join(dir, "out.txt")
	if err := previewCommand(new(bytes.Buffer)).Run(ctx, []string{"preview", "-t", tmpl, "-k", "knuth1997", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "The Art of Computer Programming\n{x}\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRun_DefaultTemplate(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", records)

	ctx, _, _ := newEnv(t)
	dst := filepath.Join(dir, "out.txt")
	if err := previewCommand(new(bytes.Buffer)).Run(ctx, []string{"preview", "-k", "knuth1997ch1", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if !strings.HasPrefix(string(got), "Donald E. Knuth: <i>The Art of Computer Programming</i>, Series of Art, Addison-Wesley.") {
		t.Errorf("output = %q", got)
	}
}

func TestRun_Journals(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", `- key: a
  type: article
  fields:
    journal: Journal of the ACM
- key: b
  type: article
  fields:
    journaltitle: Commun. ACM
- key: c
  type: article
  fields:
    journal: Nature
`)
	tmpl := writeFile(t, dir, "layout.txt", `\format[Abbreviate]{\journal/journaltitle} | \format[Unabbreviate]{\journal/journaltitle}`)

	ctx, env, logs := newEnv(t)
	env.Cfg.Journals.Check = true

	dst := filepath.Join(dir, "out.txt")
	if err := previewCommand(new(bytes.Buffer)).Run(ctx, []string{"preview", "-t", tmpl, src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	want := "J. ACM | Journal of the ACM\n\n" +
		"Commun. ACM | Communications of the ACM\n\n" +
		"Nature | Nature\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	warned := logs.FilterMessage("Journal name is abbreviated").All()
	if len(warned) != 1 || warned[0].ContextMap()["key"] != "b" {
		t.Errorf("expected single warning for record b, got %v", warned)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", records)
	bad := writeFile(t, dir, "bad.txt", `\format[Nope]{\title}`)

	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"preview"}},
		{"missing source", []string{"preview", filepath.Join(dir, "none.yaml")}},
		{"broken template", []string{"preview", "-t", bad, src}},
		{"missing template", []string{"preview", "-t", filepath.Join(dir, "none.txt"), src}},
		{"no such records", []string{"preview", "-k", "nope", src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := newEnv(t)
			if err := previewCommand(new(bytes.Buffer)).Run(ctx, tt.args); err == nil {
				t.Error("Run() expected error")
			}
		})
	}
}

func TestRun_DebugReport(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "records.yaml", records)

	ctx, env, _ := newEnv(t)
	rc := config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := rc.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	if err := previewCommand(new(bytes.Buffer)).Run(ctx, []string{"preview", src, filepath.Join(dir, "out.txt")}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fi, err := os.Stat(rc.Destination); err != nil || fi.Size() == 0 {
		t.Errorf("report was not written: %v", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, env, _ := newEnv(t)
	src := writeFile(t, t.TempDir(), "records.yaml", records)
	sctx := state.ContextWithEnv(ctx)
	senv := state.EnvFromContext(sctx)
	senv.Cfg, senv.Log = env.Cfg, env.Log

	err := previewCommand(new(bytes.Buffer)).Run(sctx, []string{"preview", src})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestListFormatters(t *testing.T) {
	ctx, _, _ := newEnv(t)
	out := new(bytes.Buffer)
	cmd := &cli.Command{Name: "formatters", Writer: out, Action: ListFormatters}

	if err := cmd.Run(ctx, []string{"formatters"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"ToUpperCase\n", "Default (applies to absent fields)\n", "initials\n", "Abbreviate\n", "Unabbreviate\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}
