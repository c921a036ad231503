package object

import "sort"

// TreeEntry names one object inside a directory. Name is the local name,
// never a path. Mode distinguishes regular files, executables, and
// directories.
type TreeEntry struct {
	Name string
	Type ObjectType // TypeBlob or TypeTree
	Hash Hash
	Mode string
}

// FileEntry builds an entry for a regular file blob.
func FileEntry(name string, h Hash) TreeEntry {
	return TreeEntry{Name: name, Type: TypeBlob, Hash: h, Mode: ModeFile}
}

// ExecutableEntry builds an entry for an executable file blob.
func ExecutableEntry(name string, h Hash) TreeEntry {
	return TreeEntry{Name: name, Type: TypeBlob, Hash: h, Mode: ModeExecutable}
}

// DirEntry builds an entry for a subdirectory tree.
func DirEntry(name string, h Hash) TreeEntry {
	return TreeEntry{Name: name, Type: TypeTree, Hash: h, Mode: ModeDir}
}

// IsFile reports whether the entry references a blob.
func (e TreeEntry) IsFile() bool { return e.Type == TypeBlob }

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool { return e.Type == TypeTree }

// Tree is a directory snapshot: an ordered list of entries, each pointing
// at a blob or subtree digest. Entries are always kept sorted by name
// (byte-lexicographic), so the digest depends only on the entry set, not
// insertion order.
//
// AddEntry is not internally synchronized; callers must serialize writers
// per instance. Concurrent reads of a tree that is not being mutated are
// safe.
type Tree struct {
	entries []TreeEntry
	hash    Hash
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// TreeWithEntries builds a tree from entries, sorting them by name.
func TreeWithEntries(entries []TreeEntry) *Tree {
	t := &Tree{entries: entries}
	t.sortEntries()
	return t
}

// TreeWithHash builds a tree with a pre-known digest (loaded from storage,
// unverified). Entries are still sorted.
func TreeWithHash(entries []TreeEntry, h Hash) *Tree {
	t := &Tree{entries: entries, hash: h}
	t.sortEntries()
	return t
}

func (t *Tree) sortEntries() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].Name < t.entries[j].Name
	})
}

// AddEntry inserts an entry, re-sorts the list by name, and invalidates the
// cached digest so the next Hash call reflects the new entry set.
func (t *Tree) AddEntry(e TreeEntry) {
	t.entries = append(t.entries, e)
	t.sortEntries()
	t.hash = ""
}

// Entries returns the entries in sorted order. The slice is shared; callers
// must not modify it.
func (t *Tree) Entries() []TreeEntry { return t.entries }

// Find returns the entry with the given name, if present. Linear scan;
// directory fan-out is expected to be small.
func (t *Tree) Find(name string) (TreeEntry, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e, true
		}
	}
	return TreeEntry{}, false
}

// Len returns the number of entries.
func (t *Tree) Len() int { return len(t.entries) }

// IsEmpty reports whether the tree has no entries.
func (t *Tree) IsEmpty() bool { return len(t.entries) == 0 }

// Hash returns the tree's digest, computing and caching it on first call.
// Two trees holding the same entry set always hash identically: entries are
// sorted before encoding.
func (t *Tree) Hash() Hash {
	if t.hash == "" {
		t.hash = HashObject(TypeTree, MarshalTree(t))
	}
	return t.hash
}

// CachedHash returns the digest without computing it. The second return is
// false when no digest has been computed, or the cache was invalidated by
// AddEntry.
func (t *Tree) CachedHash() (Hash, bool) {
	return t.hash, t.hash != ""
}
