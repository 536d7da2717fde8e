// Package sigcache persists resolved mangled-name -> signature rows across
// pipeline runs, keyed by a module's content hash, so a driver processing
// the same unchanged module twice (e.g. across incremental builds) doesn't
// have to re-run the solver to recover signatures it already solved for.
//
// Storage is modernc.org/sqlite (pure Go, no cgo); each cached row set is
// packed into a single binary blob with github.com/funvibe/funbit so the
// on-disk format is a real bit-level encoding rather than a second JSON
// layer bolted on top of SQL.
package sigcache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/funvibe/funbit/pkg/funbit"

	_ "modernc.org/sqlite"
)

// Row is one resolved symbol's cached signature.
type Row struct {
	MangledName string
	Signature   string // the reified type's String() form
}

// Cache wraps a sqlite-backed table of module-hash -> encoded row blobs.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) a sigcache database at path. Use ":memory:"
// for a scratch cache scoped to one process.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sigcache: open %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS signatures (
		module_hash TEXT PRIMARY KEY,
		payload     BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sigcache: migrate schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Put encodes rows as a single bitstring blob and upserts it under hash.
func (c *Cache) Put(ctx context.Context, hash string, rows []Row) error {
	blob, err := encode(rows)
	if err != nil {
		return fmt.Errorf("sigcache: encode %d rows: %w", len(rows), err)
	}
	const stmt = `INSERT INTO signatures (module_hash, payload) VALUES (?, ?)
		ON CONFLICT(module_hash) DO UPDATE SET payload = excluded.payload`
	_, err = c.db.ExecContext(ctx, stmt, hash, blob)
	return err
}

// Get returns the cached rows for hash, or (nil, false) on a cache miss.
func (c *Cache) Get(ctx context.Context, hash string) ([]Row, bool, error) {
	var blob []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM signatures WHERE module_hash = ?`, hash).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sigcache: query %s: %w", hash, err)
	}
	rows, err := decode(blob)
	if err != nil {
		return nil, false, fmt.Errorf("sigcache: decode %s: %w", hash, err)
	}
	return rows, true, nil
}

// encode packs rows into one bitstring: a 32-bit row count, then per row a
// 16-bit length-prefixed mangled name and a 16-bit length-prefixed
// signature string, all as UTF-8 binary segments.
func encode(rows []Row) ([]byte, error) {
	b := funbit.NewBuilder()
	funbit.AddInteger(b, len(rows), funbit.WithSize(32))
	for _, r := range rows {
		name := []byte(r.MangledName)
		sig := []byte(r.Signature)
		funbit.AddInteger(b, len(name), funbit.WithSize(16))
		funbit.AddBinary(b, name)
		funbit.AddInteger(b, len(sig), funbit.WithSize(16))
		funbit.AddBinary(b, sig)
	}
	bs, err := funbit.Build(b)
	if err != nil {
		return nil, err
	}
	return bs.ToBytes(), nil
}

// decode reverses encode, matching each segment back out of the bitstring.
func decode(data []byte) ([]Row, error) {
	bs := funbit.NewBitStringFromBytes(data)

	var count uint
	m := funbit.NewMatcher()
	funbit.Integer(m, &count, funbit.WithSize(32))
	countResults, err := funbit.Match(m, bs)
	if err != nil {
		return nil, fmt.Errorf("reading row count: %w", err)
	}

	rows := make([]Row, 0, count)
	rest := remainder(countResults, bs)
	for i := uint(0); i < count; i++ {
		var nameLen, sigLen uint
		var name, sig []byte

		hm := funbit.NewMatcher()
		funbit.Integer(hm, &nameLen, funbit.WithSize(16))
		results, err := funbit.Match(hm, rest)
		if err != nil {
			return nil, fmt.Errorf("reading row %d name length: %w", i, err)
		}
		rest = remainder(results, rest)

		bm := funbit.NewMatcher()
		funbit.Binary(bm, &name, funbit.WithSize(nameLen*8))
		results, err = funbit.Match(bm, rest)
		if err != nil {
			return nil, fmt.Errorf("reading row %d name: %w", i, err)
		}
		rest = remainder(results, rest)

		sm := funbit.NewMatcher()
		funbit.Integer(sm, &sigLen, funbit.WithSize(16))
		results, err = funbit.Match(sm, rest)
		if err != nil {
			return nil, fmt.Errorf("reading row %d signature length: %w", i, err)
		}
		rest = remainder(results, rest)

		vm := funbit.NewMatcher()
		funbit.Binary(vm, &sig, funbit.WithSize(sigLen*8))
		results, err = funbit.Match(vm, rest)
		if err != nil {
			return nil, fmt.Errorf("reading row %d signature: %w", i, err)
		}
		rest = remainder(results, rest)

		rows = append(rows, Row{MangledName: string(name), Signature: string(sig)})
	}
	return rows, nil
}

// remainder pulls the trailing unconsumed bitstring off a match, falling
// back to the prior bitstring if the matcher consumed everything.
func remainder(results []funbit.SegmentResult, prev *funbit.BitString) *funbit.BitString {
	if len(results) == 0 {
		return prev
	}
	last := results[len(results)-1]
	if last.Remaining != nil {
		return last.Remaining
	}
	return prev
}
