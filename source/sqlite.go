package source

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Schema of the SQLite record source.
const Schema = `
CREATE TABLE IF NOT EXISTS records (
	key  TEXT NOT NULL,
	type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fields (
	record_key TEXT NOT NULL,
	name       TEXT NOT NULL,
	value      TEXT NOT NULL
);
`

func (b *builder) addSQLite(ctx context.Context, path string) error {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer conn.Close()
	conn.SetInterrupt(ctx.Done())

	var (
		raws  []rawRecord
		byKey = make(map[string]int)
	)
	err = sqlitex.Execute(conn, `SELECT key, type FROM records ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			key := stmt.ColumnText(0)
			if _, dup := byKey[key]; !dup {
				// fields of duplicates go to the first one, store rejects the rest anyway
				byKey[key] = len(raws)
			}
			raws = append(raws, rawRecord{
				Key:    key,
				Type:   stmt.ColumnText(1),
				Fields: make(map[string]string),
				origin: fmt.Sprintf("%s: row #%d", path, len(raws)+1),
			})
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read records: %w", err)
	}

	var orphans int
	err = sqlitex.Execute(conn, `SELECT record_key, name, value FROM fields ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			idx, ok := byKey[stmt.ColumnText(0)]
			if !ok {
				orphans++
				return nil
			}
			raws[idx].Fields[stmt.ColumnText(1)] = stmt.ColumnText(2)
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read fields: %w", err)
	}
	if orphans > 0 {
		b.warn("%s: %d field rows reference unknown records", path, orphans)
	}
	return b.add(ctx, raws)
}
