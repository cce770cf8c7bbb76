package langvalue

import "testing"

func newTestFunction() *Function {
	fn := NewFunction(CacheSize)
	fn.ID = 1
	fn.EligibleStatic = true
	return fn
}

func TestCacheStoreThenLookupHit(t *testing.T) {
	fn := newTestFunction()
	args := []Value{Int64(3), Int64(4)}
	fn.CacheStore(args, Int64(7))

	got, ok := fn.CacheLookup(args)
	if !ok {
		t.Fatal("CacheLookup missed an entry that was just stored")
	}
	if got.Int != 7 {
		t.Errorf("CacheLookup = %d, want 7", got.Int)
	}
}

func TestCacheLookupMissForDifferentArgs(t *testing.T) {
	fn := newTestFunction()
	fn.CacheStore([]Value{Int64(3)}, Int64(7))

	if _, ok := fn.CacheLookup([]Value{Int64(4)}); ok {
		t.Error("CacheLookup hit for arguments that were never stored")
	}
}

func TestCacheStoreNeverOverwritesOnCollision(t *testing.T) {
	fn := newTestFunction()
	args := []Value{Int64(3)}

	fn.CacheStore(args, Int64(1))
	fn.CacheStore(args, Int64(2))

	got, ok := fn.CacheLookup(args)
	if !ok {
		t.Fatal("CacheLookup missed after two stores")
	}
	if got.Int != 1 {
		t.Errorf("second CacheStore overwrote the first entry: got %d, want 1", got.Int)
	}
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	args := []Value{Int64(1), Str64("x"), Int64(3)}
	a := CacheKey(args, CacheSize)
	b := CacheKey(args, CacheSize)
	if a != b {
		t.Errorf("CacheKey is not deterministic: %d vs %d", a, b)
	}
	if a >= CacheSize {
		t.Errorf("CacheKey = %d, want < CacheSize (%d)", a, CacheSize)
	}
}

func TestCacheKeyRespectsCapacity(t *testing.T) {
	args := []Value{Int64(1), Int64(2)}
	if key := CacheKey(args, 16); key >= 16 {
		t.Errorf("CacheKey(args, 16) = %d, want < 16", key)
	}
}

func TestCacheKeyDiffersForDifferentArgOrder(t *testing.T) {
	a := CacheKey([]Value{Int64(1), Int64(2)}, CacheSize)
	b := CacheKey([]Value{Int64(2), Int64(1)}, CacheSize)
	if a == b {
		t.Skip("collision is legal for a hash function, but this pair happened not to distinguish")
	}
}

func TestDisqualifyClearsEligible(t *testing.T) {
	fn := newTestFunction()
	if !fn.Eligible() {
		t.Fatal("freshly constructed eligible function reports Eligible() = false")
	}
	fn.Disqualify()
	if fn.Eligible() {
		t.Error("Eligible() = true after Disqualify")
	}
}

func TestEligibleRequiresBothStaticAndRuntime(t *testing.T) {
	fn := NewFunction(CacheSize)
	fn.EligibleStatic = false
	if fn.Eligible() {
		t.Error("Eligible() = true with EligibleStatic false")
	}
}

func TestExportImportCacheRoundTrips(t *testing.T) {
	src := newTestFunction()
	src.CacheStore([]Value{Int64(1)}, Int64(10))
	src.CacheStore([]Value{Int64(2)}, Int64(20))

	entries := src.ExportCache()
	if len(entries) != 2 {
		t.Fatalf("ExportCache returned %d entries, want 2", len(entries))
	}

	dst := newTestFunction()
	dst.ImportCache(entries)

	for _, want := range []struct {
		arg, result int64
	}{{1, 10}, {2, 20}} {
		got, ok := dst.CacheLookup([]Value{Int64(want.arg)})
		if !ok {
			t.Fatalf("imported cache missed arg %d", want.arg)
		}
		if got.Int != want.result {
			t.Errorf("imported cache for arg %d = %d, want %d", want.arg, got.Int, want.result)
		}
	}
}

func TestExportCacheSkipsClosureResults(t *testing.T) {
	fn := newTestFunction()
	inner := &Function{ID: 2}
	fn.CacheStore([]Value{Int64(1)}, Closure64(inner))
	fn.CacheStore([]Value{Int64(2)}, Int64(5))

	entries := fn.ExportCache()
	if len(entries) != 1 {
		t.Fatalf("ExportCache returned %d entries, want 1 (closure result skipped)", len(entries))
	}
	if entries[0].Args[0] != 2 {
		t.Errorf("surviving entry has args %v, want [2]", entries[0].Args)
	}
}

func TestImportCacheHonorsCollisionRules(t *testing.T) {
	fn := newTestFunction()
	fn.ImportCache([]CacheEntry{
		{Args: []int64{1}, Value: Int64(100)},
		{Args: []int64{1}, Value: Int64(200)},
	})
	got, ok := fn.CacheLookup([]Value{Int64(1)})
	if !ok {
		t.Fatal("CacheLookup missed after ImportCache")
	}
	if got.Int != 100 {
		t.Errorf("ImportCache let a later duplicate entry overwrite the first: got %d, want 100", got.Int)
	}
}
