package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctsys/cts/pkg/compress"
)

// Storage is the minimal collaborator contract for persisting objects:
// content in, digest out, keyed by the same digest scheme as the object
// model. Backends (disk, remote, in-memory) implement this so the object
// layer never knows the backing mechanism.
type Storage interface {
	Put(data []byte) (Hash, error)
	Get(h Hash) ([]byte, error)
}

// Store is a content-addressed object store on disk with a 2-character
// fan-out directory layout: objects/ab/cdef0123... Stored bytes are
// zlib-compressed; reads are bounded by the configured decompression
// ceiling so a crafted object cannot exhaust memory.
type Store struct {
	root    string
	level   int
	maxSize int
}

var _ Storage = (*Store)(nil)

// NewStore creates a Store rooted at the given directory with default
// compression and size settings. The objects/ subdirectory is created
// lazily on first write.
func NewStore(root string) *Store {
	return &Store{
		root:    root,
		level:   compress.LevelDefault,
		maxSize: DefaultMaxObjectSize,
	}
}

// NewStoreWithConfig creates a Store using loaded configuration.
func NewStoreWithConfig(root string, cfg StoreConfig) (*Store, error) {
	level, err := compress.ParseLevel(cfg.CompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}
	if cfg.MaxObjectSize <= 0 {
		return nil, fmt.Errorf("store config: max object size must be positive, got %d", cfg.MaxObjectSize)
	}
	return &Store{root: root, level: level, maxSize: cfg.MaxObjectSize}, nil
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Put stores raw bytes addressed by their content digest and returns that
// digest. Storing the same bytes twice is a no-op (deduplication).
func (s *Store) Put(data []byte) (Hash, error) {
	h := HashBytes(data)
	if err := s.put(h, data); err != nil {
		return "", err
	}
	return h, nil
}

// Get retrieves the bytes previously stored under h.
func (s *Store) Get(h Hash) ([]byte, error) {
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	data, err := compress.DecompressLimit(raw, s.maxSize)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return data, nil
}

// put writes compressed data under the given hash. Writes are atomic: data
// goes to a temp file and is renamed into place.
func (s *Store) put(h Hash, data []byte) error {
	// Fast path: already exists.
	if s.Has(h) {
		return nil
	}

	packed, err := compress.CompressLevel(data, s.level)
	if err != nil {
		return fmt.Errorf("object write %s: %w", h, err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(packed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// Write stores a typed object addressed by its envelope digest. The stored
// bytes are the compressed "type len\0payload" envelope.
func (s *Store) Write(objType ObjectType, payload []byte) (Hash, error) {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(payload))
	raw := append([]byte(envelope), payload...)

	h := HashObject(objType, payload)
	if err := s.put(h, raw); err != nil {
		return "", err
	}
	return h, nil
}

// Read retrieves a typed object by hash, returning its type and payload.
// The envelope header is validated against the payload length.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	raw, err := s.Get(h)
	if err != nil {
		return "", nil, err
	}

	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	payload := raw[nulIdx+1:]

	typeName, lenText, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	length, err := strconv.Atoi(lenText)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, lenText, err)
	}
	if len(payload) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(payload))
	}

	return ObjectType(typeName), payload, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads a Blob, seeding its digest cache with the addressing hash.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	payload, err := s.readTyped(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return BlobWithHash(payload, h), nil
}

// WriteTree serializes and stores a Tree.
func (s *Store) WriteTree(t *Tree) (Hash, error) {
	return s.Write(TypeTree, MarshalTree(t))
}

// ReadTree reads a Tree, seeding its digest cache with the addressing hash.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	payload, err := s.readTyped(h, TypeTree)
	if err != nil {
		return nil, err
	}
	t, err := UnmarshalTree(payload)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	t.hash = h
	return t, nil
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads a Commit, seeding its digest cache with the addressing
// hash.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	payload, err := s.readTyped(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(payload)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	c.hash = h
	return c, nil
}

func (s *Store) readTyped(h Hash, want ObjectType) ([]byte, error) {
	objType, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != want {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, want)
	}
	return payload, nil
}
