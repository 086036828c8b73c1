package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
)

// walkFunc is called for every archive member accepted by walk.
type walkFunc func(file *fixzip.File) error

// walk visits regular files in the archive in directory order. Archives with
// absolute paths or ".." components are rejected as a whole.
func walk(archive string, walkFn walkFunc) error {
	r, err := fixzip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// addZip loads every YAML and XML member of the archive into one store.
// Nested archives and databases are not supported.
func (b *builder) addZip(ctx context.Context, archive string, log *zap.Logger) error {
	return walk(archive, func(file *fixzip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		var read func(io.Reader, string) ([]rawRecord, error)
		switch Detect(file.Name, nil) {
		case FormatYAML:
			read = readYAML
		case FormatXML:
			read = readXML
		default:
			log.Debug("Skipping archive member", zap.String("archive", archive), zap.String("file", file.Name))
			return nil
		}

		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", file.Name, err)
		}
		defer rc.Close()

		raws, err := read(rc, path.Join(archive, file.Name))
		if err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
		return b.add(ctx, raws)
	})
}
