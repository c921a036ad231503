// Package compress wraps object payloads in the standard zlib container
// (2-byte header, deflate stream, 4-byte Adler-32 trailer). It is a storage
// concern only: digests are always computed over uncompressed bytes.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression level presets. Values are the zlib level constants.
const (
	LevelNone    = zlib.NoCompression
	LevelFast    = zlib.BestSpeed
	LevelDefault = zlib.DefaultCompression
	LevelBest    = zlib.BestCompression
)

var (
	// ErrCorrupt reports a malformed zlib header or a checksum mismatch.
	ErrCorrupt = errors.New("corrupt compressed data")

	// ErrSizeLimit reports that decompressed output would exceed the
	// caller-supplied bound. Distinct from ErrCorrupt so callers can tell
	// oversized input from malformed input.
	ErrSizeLimit = errors.New("decompressed size exceeds limit")
)

// ParseLevel maps a level name to its preset. Used by configuration
// loading; names match the preset identifiers.
func ParseLevel(name string) (int, error) {
	switch name {
	case "none":
		return LevelNone, nil
	case "fast":
		return LevelFast, nil
	case "default":
		return LevelDefault, nil
	case "best":
		return LevelBest, nil
	default:
		return 0, fmt.Errorf("unknown compression level %q", name)
	}
}

// LevelName returns the preset name for a level value.
func LevelName(level int) string {
	switch level {
	case LevelNone:
		return "none"
	case LevelFast:
		return "fast"
	case LevelDefault:
		return "default"
	case LevelBest:
		return "best"
	default:
		return fmt.Sprintf("level(%d)", level)
	}
}

// Compress compresses data at the default level.
func Compress(data []byte) ([]byte, error) {
	return CompressLevel(data, LevelDefault)
}

// CompressLevel compresses data at the given zlib level. Pure function of
// input and level.
func CompressLevel(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress restores data produced by Compress. A bad header or trailing
// checksum mismatch fails with an error wrapping ErrCorrupt.
//
// Only use on input whose decompressed size is already trusted; for
// untrusted or unbounded sources use DecompressLimit.
func Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrCorrupt, err)
	}
	return out, nil
}

// DecompressLimit is Decompress with a ceiling on the output size. It reads
// at most maxSize+1 bytes of decompressed output, so memory amplification
// from hostile input (a decompression bomb) is bounded by the caller's
// limit. Output larger than maxSize fails with an error wrapping
// ErrSizeLimit.
func DecompressLimit(data []byte, maxSize int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	// One byte past the limit distinguishes "exactly maxSize" from "over".
	out, err := io.ReadAll(io.LimitReader(zr, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w: %v", ErrCorrupt, err)
	}
	if len(out) > maxSize {
		return nil, fmt.Errorf("decompress: %w: output exceeds %d bytes", ErrSizeLimit, maxSize)
	}
	return out, nil
}

// Ratio reports the size reduction as a fraction in [0,1]: 0.5 means the
// compressed form is half the original. Returns 0 for empty input.
func Ratio(originalSize, compressedSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	return 1 - float64(compressedSize)/float64(originalSize)
}

// Effective reports whether compression actually shrank the data. Already
// compressed content (images, archives) often grows slightly instead.
func Effective(originalSize, compressedSize int) bool {
	return compressedSize < originalSize
}
