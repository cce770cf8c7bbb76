// Package symbols implements the process-wide name interner described in
// spec.md §3/§4.2: every identifier name maps to a small integer index,
// shared for the whole run, so the evaluator addresses variables by index
// rather than by re-hashing strings on every lookup.
package symbols

import "fmt"

// InitialCapacity is a size hint for the backing map, matching spec.md's
// "capacity ≥ 64" floor for the symbol table. Go maps grow on demand, so
// this only avoids a few early rehashes; it is not a hard ceiling.
const InitialCapacity = 64

// Table interns identifier names to indices. The same name always yields
// the same index (`intern` in spec.md §4.2); anonymous entities (one per
// `fn` literal evaluation, giving that closure the id shown in `--trace`
// output) get a fresh index that never collides with a named identifier.
type Table struct {
	byName []string
	index  map[string]uint32
	nextID uint32
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{
		index: make(map[string]uint32, InitialCapacity),
	}
}

// Intern returns the index for name, allocating a new one on first sight.
// Two tokens with the same lexeme always resolve to the same index; the
// lexer calls this once per identifier token so the resolver never
// re-disambiguates by string beyond that point (spec.md §4.2).
func (t *Table) Intern(name string) uint32 {
	if id, ok := t.index[name]; ok {
		return id
	}
	id := t.nextID
	t.nextID++
	t.index[name] = id
	t.byName = append(t.byName, name)
	return id
}

// Anonymous allocates a fresh symbol index with no associated name, used
// to give each `fn` literal occurrence a unique identity distinct from any
// identifier (spec.md §3 "Anonymous entities").
func (t *Table) Anonymous() uint32 {
	id := t.nextID
	t.nextID++
	t.byName = append(t.byName, "")
	return id
}

// Name returns the interned name for id, or a synthetic placeholder for
// anonymous ids (used only in debug output).
func (t *Table) Name(id uint32) string {
	if int(id) < len(t.byName) && t.byName[id] != "" {
		return t.byName[id]
	}
	return fmt.Sprintf("<anon:%d>", id)
}

// Len reports how many symbol indices have been allocated so far.
func (t *Table) Len() int { return len(t.byName) }
