package object

import "unicode/utf8"

// Blob holds raw file content. It carries no name, path, or permission
// metadata; those live in tree entries. Two blobs with equal content are
// interchangeable: they hash to the same digest.
//
// The digest cache makes Blob safe for concurrent reads only after Hash has
// been called once (or the blob was constructed with BlobWithHash).
type Blob struct {
	content []byte
	hash    Hash
}

// NewBlob wraps content in a Blob with the digest unset. The digest is
// computed lazily on first Hash call.
func NewBlob(content []byte) *Blob {
	return &Blob{content: content}
}

// BlobWithHash constructs a Blob with a pre-known digest, skipping
// recomputation when loading from storage. The digest is not verified
// against the content; that is the caller's responsibility.
func BlobWithHash(content []byte, h Hash) *Blob {
	return &Blob{content: content, hash: h}
}

// Content returns the raw bytes.
func (b *Blob) Content() []byte { return b.content }

// Size returns the content length in bytes.
func (b *Blob) Size() int { return len(b.content) }

// Hash returns the blob's digest, computing and caching it on first call.
// A blob is immutable after construction, so the cached value is terminal.
func (b *Blob) Hash() Hash {
	if b.hash == "" {
		b.hash = HashObject(TypeBlob, b.content)
	}
	return b.hash
}

// CachedHash returns the digest without computing it. The second return is
// false when no digest has been computed yet.
func (b *Blob) CachedHash() (Hash, bool) {
	return b.hash, b.hash != ""
}

// IsText reports whether the content looks like text: no NUL byte.
// Heuristic only.
func (b *Blob) IsText() bool {
	for _, c := range b.content {
		if c == 0 {
			return false
		}
	}
	return true
}

// Text returns the content as a string if it is valid UTF-8.
func (b *Blob) Text() (string, bool) {
	if !utf8.Valid(b.content) {
		return "", false
	}
	return string(b.content), true
}
