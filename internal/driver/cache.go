package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"nova/internal/source"
	"nova/internal/token"
)

// Current schema version - increment when cachePayload or the token catalog changes.
const tokenCacheSchemaVersion uint16 = 1

// TokenCache хранит потоки токенов на диске по xxhash содержимого файла.
// Токены хранятся без FileID и без ссылок на таблицу идентификаторов:
// они восстанавливаются при чтении. Thread-safe.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Kinds  uint16 // число видов токенов на момент записи
	Digest uint64
	Size   uint32
	Kind   []uint8
	Offset []uint32
	Len    []uint32
	Flags  []uint8
}

// OpenTokenCache opens (creating if needed) a cache under dir. An empty dir
// selects $XDG_CACHE_HOME/nova or ~/.cache/nova.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "nova")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

func (c *TokenCache) pathFor(digest uint64) string {
	// подкаталог "tokens" упрощает чистку
	return filepath.Join(c.dir, "tokens", fmt.Sprintf("%016x.mp", digest))
}

// Put stores the token stream of file f.
func (c *TokenCache) Put(f *source.File, toks []token.Token) (err error) {
	if c == nil || f == nil {
		return nil
	}
	payload, err := encodeTokens(f, toks)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(f.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(tmp).Encode(payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp.Name(), p)
}

// Get restores the token stream of f. Identifier tokens are re-interned into
// idents. A miss, a schema mismatch or a digest collision yields (nil, false, nil).
func (c *TokenCache) Get(f *source.File, idents *token.IdentTable) ([]token.Token, bool, error) {
	if c == nil || f == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	fh, err := os.Open(c.pathFor(f.Hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer fh.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(fh).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("token cache %s: %w", fh.Name(), err)
	}
	toks, ok := decodeTokens(&payload, f, idents)
	return toks, ok, nil
}

// DropAll removes every cached stream.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.dir, "tokens")
	old := dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func encodeTokens(f *source.File, toks []token.Token) (*cachePayload, error) {
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return nil, fmt.Errorf("len file content overflow: %w", err)
	}
	kinds, err := safecast.Conv[uint16](token.Count())
	if err != nil {
		return nil, fmt.Errorf("token kind count overflow: %w", err)
	}
	p := &cachePayload{
		Schema: tokenCacheSchemaVersion,
		Kinds:  kinds,
		Digest: f.Hash,
		Size:   size,
		Kind:   make([]uint8, len(toks)),
		Offset: make([]uint32, len(toks)),
		Len:    make([]uint32, len(toks)),
		Flags:  make([]uint8, len(toks)),
	}
	for i, tok := range toks {
		p.Kind[i] = uint8(tok.Kind)
		p.Offset[i] = tok.Loc.Offset()
		p.Len[i] = tok.Len
		p.Flags[i] = uint8(tok.Flags)
	}
	return p, nil
}

func decodeTokens(p *cachePayload, f *source.File, idents *token.IdentTable) ([]token.Token, bool) {
	if p.Schema != tokenCacheSchemaVersion || int(p.Kinds) != token.Count() || p.Digest != f.Hash || int(p.Size) != len(f.Content) {
		return nil, false
	}
	n := len(p.Kind)
	if len(p.Offset) != n || len(p.Len) != n || len(p.Flags) != n {
		return nil, false
	}
	toks := make([]token.Token, n)
	for i := range toks {
		off, l := p.Offset[i], p.Len[i]
		if uint64(off)+uint64(l) > uint64(len(f.Content)) {
			return nil, false
		}
		tok := token.Token{
			Kind:  token.Kind(p.Kind[i]),
			Loc:   source.NewLocation(f.ID, off),
			Len:   l,
			Flags: token.Flags(p.Flags[i]),
		}
		if tok.Kind == token.Identifier || tok.Kind.IsKeyword() {
			tok.Ident = idents.Intern(f.Content[off : off+l])
		}
		toks[i] = tok
	}
	return toks, true
}
