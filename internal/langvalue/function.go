package langvalue

// CacheSize is the per-function memoization cache capacity floor, spec.md
// §4.5's "fixed size ≥ 4096 slots". A lumen.toml [limits] table may raise
// it (SPEC_FULL.md §2.2, never lower it) — see NewFunction.
const CacheSize = 4096

// MaxCachedArgs is the cache key formula's ceiling on integer arguments
// (spec.md §4.5 eligibility requires 1..3 parameters).
const MaxCachedArgs = 3

// cacheSlot is one entry of a function's memoization table: the argument
// key it was filled under, whether it holds a value at all, and the
// cached result. Collisions keep the first entry and refuse new writes
// (spec.md §4.5 "on collision, the existing slot is kept").
type cacheSlot struct {
	cached bool
	args   [MaxCachedArgs]int64
	nargs  int
	value  Value
}

// Function is a closure's underlying function entity: its entry point in
// the token stream, its parameters, the environment snapshot captured at
// definition time, and its memoization cache (spec.md §3 "Function
// entity").
type Function struct {
	ID          uint32
	Name        string
	EntryPos    int
	BodyIsBlock bool
	Params      []uint32
	Captured    map[uint32]Value

	// DefOffset is the byte offset of the `fn` keyword in source text,
	// used together with a hash of the source to key the persistent
	// memoization cache (SPEC_FULL.md §2.6).
	DefOffset uint32

	// Eligibility, decided once during the definition-time body scan
	// (spec.md §4.5) and never recomputed once EligibleStatic is set.
	Inspected      bool
	EligibleStatic bool
	// EligibleRuntime starts true and is permanently cleared the first
	// time a call passes a non-integer argument, or the enclosing call
	// chain executes a `print`/`cowsay` (spec.md §4.3, §4.5).
	EligibleRuntime bool

	cache []cacheSlot
	slots int
}

// NewFunction constructs a Function whose memoization cache holds up to
// capacity entries. capacity <= 0 falls back to CacheSize, and a caller
// that wants a lumen.toml [limits] cache_size override applied should
// pass the resolved (already-floor-clamped) value in.
func NewFunction(capacity int) *Function {
	if capacity <= 0 {
		capacity = CacheSize
	}
	return &Function{cache: make([]cacheSlot, capacity), EligibleRuntime: true}
}

// Eligible reports whether this function may currently be memoized.
func (f *Function) Eligible() bool {
	return f.EligibleStatic && f.EligibleRuntime
}

// Disqualify permanently turns off memoization for this function, e.g.
// because a print executed somewhere in its dynamic call chain.
func (f *Function) Disqualify() {
	f.EligibleRuntime = false
}

// CacheKey computes the slot index for an argument vector into a table of
// the given capacity, using the formula fixed by spec.md §8: h := 0; for
// each i, h ^= (string tag ? str_hash(arg) : arg); h = (h*31 + i) mod
// capacity.
func CacheKey(args []Value, capacity int) uint64 {
	var h uint64
	cap64 := uint64(capacity)
	for i, a := range args {
		var mix uint64
		if a.Kind == String {
			mix = djb2(a.Str)
		} else {
			mix = uint64(a.Int)
		}
		h ^= mix
		h = (h*31 + uint64(i)) % cap64
	}
	return h
}

// djb2 is the same string hash spec.md's cache formula and
// original_source/src/rinha.c's rinha_hash_str_ both use.
func djb2(s string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		h = h*33 + uint64(s[i])
	}
	return h
}

// CacheLookup returns the cached result for args, if any. Only integer
// arguments are supported at call sites (eligibility requires it), but
// the key formula itself is general.
func (f *Function) CacheLookup(args []Value) (Value, bool) {
	key := CacheKey(args, len(f.cache))
	slot := &f.cache[key]
	if !slot.cached || slot.nargs != len(args) {
		return Value{}, false
	}
	for i, a := range args {
		if slot.args[i] != a.Int {
			return Value{}, false
		}
	}
	return slot.value, true
}

// CacheStore records result under the key for args, refusing to overwrite
// an existing entry on collision (spec.md §4.5).
func (f *Function) CacheStore(args []Value, result Value) {
	key := CacheKey(args, len(f.cache))
	slot := &f.cache[key]
	if slot.cached {
		return
	}
	if f.slots >= len(f.cache) {
		return
	}
	slot.cached = true
	slot.nargs = len(args)
	for i, a := range args {
		if i >= MaxCachedArgs {
			break
		}
		slot.args[i] = a.Int
	}
	slot.value = result
	f.slots++
}

// CacheEntry is one memoized (args, result) pair, in the shape the
// persistent disk cache (SPEC_FULL.md §2.6) serializes.
type CacheEntry struct {
	Args  []int64
	Value Value
}

// ExportCache snapshots every filled slot for persistence. Slots whose
// result is a closure are skipped: a *Function isn't a value the disk
// cache can round-trip. An eligible function can still return one (for
// example a body that is itself a `fn` literal), so such results stay
// in the in-memory cache only.
func (f *Function) ExportCache() []CacheEntry {
	out := make([]CacheEntry, 0, f.slots)
	for i := range f.cache {
		slot := &f.cache[i]
		if !slot.cached || slot.value.Kind == Closure {
			continue
		}
		args := make([]int64, slot.nargs)
		copy(args, slot.args[:slot.nargs])
		out = append(out, CacheEntry{Args: args, Value: slot.value})
	}
	return out
}

// ImportCache reloads previously exported entries, going back through
// CacheStore so collisions and capacity limits are honored identically
// to a freshly computed cache.
func (f *Function) ImportCache(entries []CacheEntry) {
	for _, e := range entries {
		args := make([]Value, len(e.Args))
		for i, a := range e.Args {
			args[i] = Int64(a)
		}
		f.CacheStore(args, e.Value)
	}
}
