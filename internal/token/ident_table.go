package token

// IdentInfo is the interned record for one spelling.
type IdentInfo struct {
	Name      string
	Kind      Kind // keyword kind, or Identifier
	IsKeyword bool
}

// IdentTable interns identifier and keyword spellings. It is pre-seeded with
// every keyword, so keyword recognition is a single lookup. The table owns all
// records; returned pointers stay valid while the table lives.
// Not safe for concurrent mutation.
type IdentTable struct {
	infos []*IdentInfo
	index map[string]*IdentInfo
}

// NewIdentTable creates a table holding every keyword of the catalog.
func NewIdentTable() *IdentTable {
	t := &IdentTable{
		infos: make([]*IdentInfo, 0, len(keywordKinds)*2),
		index: make(map[string]*IdentInfo, len(keywordKinds)*2),
	}
	for _, k := range keywordKinds {
		t.insert(&IdentInfo{Name: k.Name(), Kind: k, IsKeyword: true})
	}
	return t
}

func (t *IdentTable) insert(info *IdentInfo) {
	t.infos = append(t.infos, info)
	t.index[info.Name] = info
}

// Get returns the record interned for name.
func (t *IdentTable) Get(name string) (*IdentInfo, bool) {
	info, ok := t.index[name]
	return info, ok
}

// GetBytes is Get for a byte slice; the lookup itself does not allocate.
func (t *IdentTable) GetBytes(name []byte) (*IdentInfo, bool) {
	info, ok := t.index[string(name)]
	return info, ok
}

// AddIdentifier interns name as a plain identifier. If name is already present
// the existing record (possibly a keyword) is returned unchanged.
func (t *IdentTable) AddIdentifier(name string) *IdentInfo {
	if info, ok := t.index[name]; ok {
		return info
	}
	// Создаём собственную копию строки, чтобы не зависеть от исходного буфера.
	info := &IdentInfo{Name: string([]byte(name)), Kind: Identifier}
	t.insert(info)
	return info
}

// Intern returns the record for name, adding a plain identifier when missing.
func (t *IdentTable) Intern(name []byte) *IdentInfo {
	if info, ok := t.index[string(name)]; ok {
		return info
	}
	info := &IdentInfo{Name: string(name), Kind: Identifier}
	t.insert(info)
	return info
}

// Len returns the number of interned records, keywords included.
func (t *IdentTable) Len() int { return len(t.infos) }

// Identifiers returns the non-keyword records in insertion order.
func (t *IdentTable) Identifiers() []*IdentInfo {
	out := make([]*IdentInfo, 0, len(t.infos)-len(keywordKinds))
	for _, info := range t.infos {
		if !info.IsKeyword {
			out = append(out, info)
		}
	}
	return out
}
