package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nova/internal/lexer"
	"nova/internal/source"
	"nova/internal/token"
)

const cacheSample = "func main() {\n  let x = 0x1F; // hi\n  return x + 'c';\n}\n"

func TestTokenCacheRoundTrip(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	sm := source.NewManager()
	id := sm.AddFile("a.nv", []byte(cacheSample))
	f := sm.File(id)
	want := lexer.New(sm, token.NewIdentTable(), id).All()
	if err := cache.Put(f, want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := cache.Get(f, token.NewIdentTable())
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
}

func TestTokenCacheRebindsFileID(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sm1 := source.NewManager()
	id1 := sm1.AddFile("a.nv", []byte(cacheSample))
	if err := cache.Put(sm1.File(id1), lexer.New(sm1, token.NewIdentTable(), id1).All()); err != nil {
		t.Fatal(err)
	}

	sm2 := source.NewManager()
	sm2.AddFile("other.nv", []byte("x"))
	id2 := sm2.AddFile("copy.nv", []byte(cacheSample))
	got, ok, err := cache.Get(sm2.File(id2), token.NewIdentTable())
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	for _, tok := range got {
		if tok.Loc.File() != id2 {
			t.Fatalf("token bound to file %d, want %d", tok.Loc.File(), id2)
		}
	}
}

func TestTokenCacheMisses(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	sm := source.NewManager()
	id := sm.AddFile("a.nv", []byte(cacheSample))
	f := sm.File(id)

	if _, ok, err := cache.Get(f, token.NewIdentTable()); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	if err := cache.Put(f, lexer.New(sm, token.NewIdentTable(), id).All()); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(f, token.NewIdentTable()); ok {
		t.Fatal("hit after DropAll")
	}

	// битый файл даёт ошибку, а не панику
	p := cache.pathFor(f.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1, 0xff}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.Get(f, token.NewIdentTable()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestTokenCacheNil(t *testing.T) {
	var cache *TokenCache
	if err := cache.Put(nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(nil, nil); ok || err != nil {
		t.Fatal("nil cache must miss")
	}
}
