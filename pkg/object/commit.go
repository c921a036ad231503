package object

// Commit is a history snapshot: a root tree digest, an optional parent
// commit digest, and metadata. Commits chain through ParentHash; nothing
// here enforces acyclicity, so callers must not construct cycles.
//
// Metadata fields are set at construction and treated as immutable, so the
// digest cache is terminal once computed.
type Commit struct {
	TreeHash    Hash
	ParentHash  Hash // empty for a root snapshot
	Message     string
	AuthorName  string
	AuthorEmail string
	Timestamp   string // ISO-8601

	hash Hash
}

// NewCommit builds a commit with the digest unset.
func NewCommit(treeHash, parentHash Hash, message, authorName, authorEmail, timestamp string) *Commit {
	return &Commit{
		TreeHash:    treeHash,
		ParentHash:  parentHash,
		Message:     message,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Timestamp:   timestamp,
	}
}

// InitialCommit builds a root snapshot: a commit with no parent.
func InitialCommit(treeHash Hash, message, authorName, authorEmail, timestamp string) *Commit {
	return NewCommit(treeHash, "", message, authorName, authorEmail, timestamp)
}

// CommitWithHash builds a commit with a pre-known digest (loaded from
// storage, unverified).
func CommitWithHash(treeHash, parentHash Hash, message, authorName, authorEmail, timestamp string, h Hash) *Commit {
	c := NewCommit(treeHash, parentHash, message, authorName, authorEmail, timestamp)
	c.hash = h
	return c
}

// IsInitial reports whether this commit is a root snapshot.
func (c *Commit) IsInitial() bool { return c.ParentHash == "" }

// Hash returns the commit's digest, computing and caching it on first call.
func (c *Commit) Hash() Hash {
	if c.hash == "" {
		c.hash = HashObject(TypeCommit, MarshalCommit(c))
	}
	return c.hash
}

// CachedHash returns the digest without computing it. The second return is
// false when no digest has been computed yet.
func (c *Commit) CachedHash() (Hash, bool) {
	return c.hash, c.hash != ""
}
