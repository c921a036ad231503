// Package object implements the content-addressable object model: blobs,
// trees, and commits identified by the SHA-256 digest of a canonical byte
// encoding. Objects with identical content share a digest, which is the
// basis of deduplication and history integrity.
package object

// Hash is a 64-character hex-encoded SHA-256 digest. The empty string means
// "not yet computed".
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Tree entry mode strings. The directory mode keeps its leading zero; the
// mode text is part of the canonical tree encoding and must not be
// normalized.
const (
	ModeFile       = "100644"
	ModeExecutable = "100755"
	ModeDir        = "040000"
)
