package object

import "testing"

func fakeHash(b byte) Hash {
	h := make([]byte, HashHexLength)
	for i := range h {
		h[i] = b
	}
	return Hash(h)
}

func TestTreeEntryConstructors(t *testing.T) {
	f := FileEntry("README.md", fakeHash('a'))
	if !f.IsFile() || f.IsDir() || f.Mode != ModeFile {
		t.Errorf("FileEntry = %+v", f)
	}

	x := ExecutableEntry("run.sh", fakeHash('b'))
	if !x.IsFile() || x.Mode != ModeExecutable {
		t.Errorf("ExecutableEntry = %+v", x)
	}

	d := DirEntry("src", fakeHash('c'))
	if d.IsFile() || !d.IsDir() || d.Mode != ModeDir {
		t.Errorf("DirEntry = %+v", d)
	}
}

func TestTreeEntriesSorted(t *testing.T) {
	tree := NewTree()
	tree.AddEntry(FileEntry("z.txt", fakeHash('1')))
	tree.AddEntry(FileEntry("a.txt", fakeHash('2')))
	tree.AddEntry(FileEntry("m.txt", fakeHash('3')))

	entries := tree.Entries()
	want := []string{"a.txt", "m.txt", "z.txt"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}
}

func TestTreeHashOrderIndependent(t *testing.T) {
	a := FileEntry("a.txt", fakeHash('1'))
	b := FileEntry("b.txt", fakeHash('2'))
	c := DirEntry("c", fakeHash('3'))

	permutations := [][]TreeEntry{
		{a, b, c},
		{c, b, a},
		{b, a, c},
	}

	var first Hash
	for i, perm := range permutations {
		h := TreeWithEntries(perm).Hash()
		if i == 0 {
			first = h
			continue
		}
		if h != first {
			t.Errorf("permutation %d hashed to %s, want %s", i, h, first)
		}
	}

	// Same holds for incremental insertion in arbitrary order.
	tree := NewTree()
	tree.AddEntry(b)
	tree.AddEntry(c)
	tree.AddEntry(a)
	if tree.Hash() != first {
		t.Errorf("incremental tree hashed to %s, want %s", tree.Hash(), first)
	}
}

func TestTreeAddEntryInvalidatesCache(t *testing.T) {
	tree := TreeWithEntries([]TreeEntry{FileEntry("a.txt", fakeHash('1'))})

	before := tree.Hash()
	if _, ok := tree.CachedHash(); !ok {
		t.Fatal("digest not cached after Hash")
	}

	tree.AddEntry(FileEntry("b.txt", fakeHash('2')))
	if _, ok := tree.CachedHash(); ok {
		t.Error("cache survived AddEntry")
	}

	after := tree.Hash()
	if after == before {
		t.Error("digest unchanged after entry set changed")
	}
}

func TestTreeFind(t *testing.T) {
	tree := TreeWithEntries([]TreeEntry{
		FileEntry("a.txt", fakeHash('1')),
		DirEntry("src", fakeHash('2')),
	})

	e, ok := tree.Find("src")
	if !ok || !e.IsDir() || e.Hash != fakeHash('2') {
		t.Errorf("Find(src) = (%+v, %v)", e, ok)
	}
	if _, ok := tree.Find("missing"); ok {
		t.Error("Find returned a non-existent entry")
	}
}

func TestTreeLenIsEmpty(t *testing.T) {
	tree := NewTree()
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Errorf("empty tree: Len=%d IsEmpty=%v", tree.Len(), tree.IsEmpty())
	}
	tree.AddEntry(FileEntry("f", fakeHash('1')))
	if tree.IsEmpty() || tree.Len() != 1 {
		t.Errorf("one-entry tree: Len=%d IsEmpty=%v", tree.Len(), tree.IsEmpty())
	}
}

func TestEmptyTreeHash(t *testing.T) {
	// The empty tree digests the bare envelope "tree 0\0".
	want := HashBytes([]byte("tree 0\x00"))
	if got := NewTree().Hash(); got != want {
		t.Errorf("empty tree digest = %s, want %s", got, want)
	}
}

func TestTreeWithHash(t *testing.T) {
	pre := fakeHash('f')
	tree := TreeWithHash([]TreeEntry{FileEntry("a", fakeHash('1'))}, pre)
	cached, ok := tree.CachedHash()
	if !ok || cached != pre {
		t.Errorf("CachedHash = (%s, %v), want (%s, true)", cached, ok, pre)
	}
}
