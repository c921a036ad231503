package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// HashHexLength is the length of a Hash string: 32 bytes of SHA-256,
	// hex encoded.
	HashHexLength = 64

	// hashBufferSize is the read chunk size for streaming hashing. Memory
	// use stays bounded regardless of input size.
	hashBufferSize = 8 * 1024
)

// HashBytes computes the raw SHA-256 digest of data and returns it as a
// lowercase hex-encoded Hash. Stateless and safe for concurrent use.
func HashBytes(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-256 digest of the canonical envelope
// "type len\0payload", mirroring Git's object hashing but with SHA-256.
// The envelope is hash input only; it is never the stored wire format.
func HashObject(objType ObjectType, payload []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(payload))
	h := sha256.New()
	h.Write([]byte(header))
	h.Write(payload)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashReader computes the SHA-256 digest of everything readable from r,
// consuming it in fixed 8 KiB chunks. Read failures propagate to the
// caller; nothing is retried.
func HashReader(r io.Reader) (Hash, error) {
	h := sha256.New()
	buf := make([]byte, hashBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("hash read: %w", err)
		}
	}
	return Hash(hex.EncodeToString(h.Sum(nil))), nil
}

// HashFile computes the SHA-256 digest of a file's content without loading
// the whole file into memory.
func HashFile(path string) (Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	defer f.Close()
	return HashReader(f)
}

// Verify recomputes the digest of data and compares it case-insensitively
// against expected. Intended for integrity checks, not security-sensitive
// comparisons: it makes no constant-time guarantee.
func Verify(data []byte, expected string) bool {
	return string(HashBytes(data)) == strings.ToLower(expected)
}

// VerifyFile is Verify over a file's content.
func VerifyFile(path, expected string) (bool, error) {
	actual, err := HashFile(path)
	if err != nil {
		return false, err
	}
	return string(actual) == strings.ToLower(expected), nil
}
