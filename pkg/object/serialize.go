package object

import (
	"bytes"
	"fmt"
	"strings"
)

// Canonical payload construction and parsing. The payload returned by each
// Marshal function is both the hash input (behind the "type len\0" envelope
// added by HashObject) and the stored representation. The digest cache is
// never serialized; readers re-seed it from the addressing key.

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.content))
	copy(out, b.content)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return NewBlob(out), nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a Tree. Entries are already name-sorted, so the
// output is deterministic for a given entry set. Each entry is encoded as
//
//	"<mode> <name>\0" + <64-char hex digest>
//
// The referenced digest is embedded in its hex-text form rather than raw
// binary. That doubles the hashed payload size versus a binary scheme, but
// it is the established encoding; changing it would change every tree
// digest.
func MarshalTree(t *Tree) []byte {
	var buf bytes.Buffer
	for _, e := range t.entries {
		fmt.Fprintf(&buf, "%s %s\x00", e.Mode, e.Name)
		buf.WriteString(string(e.Hash))
	}
	return buf.Bytes()
}

// UnmarshalTree parses a Tree from its serialized form. The entry type is
// derived from the mode string.
func UnmarshalTree(data []byte) (*Tree, error) {
	t := NewTree()
	rest := data
	for len(rest) > 0 {
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: missing NUL in entry header")
		}
		header := string(rest[:nul])
		mode, name, ok := strings.Cut(header, " ")
		if !ok || name == "" {
			return nil, fmt.Errorf("unmarshal tree: malformed entry header %q", header)
		}
		entryType, err := typeForMode(mode)
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		rest = rest[nul+1:]
		if len(rest) < HashHexLength {
			return nil, fmt.Errorf("unmarshal tree: truncated digest for entry %q", name)
		}
		t.entries = append(t.entries, TreeEntry{
			Name: name,
			Type: entryType,
			Hash: Hash(rest[:HashHexLength]),
			Mode: mode,
		})
		rest = rest[HashHexLength:]
	}
	t.sortEntries()
	return t, nil
}

func typeForMode(mode string) (ObjectType, error) {
	switch mode {
	case ModeFile, ModeExecutable:
		return TypeBlob, nil
	case ModeDir:
		return TypeTree, nil
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit:
//
//	tree H
//	parent H     (empty value for a root snapshot)
//	author Name <email>
//	date T
//
//	message
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	fmt.Fprintf(&buf, "parent %s\n", string(c.ParentHash))
	fmt.Fprintf(&buf, "author %s <%s>\n", c.AuthorName, c.AuthorEmail)
	fmt.Fprintf(&buf, "date %s\n", c.Timestamp)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "tree":
			c.TreeHash = Hash(val)
		case "parent":
			c.ParentHash = Hash(val)
		case "author":
			name, email, err := parseAuthor(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w", err)
			}
			c.AuthorName = name
			c.AuthorEmail = email
		case "date":
			c.Timestamp = val
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	if c.TreeHash == "" {
		return nil, fmt.Errorf("unmarshal commit: missing tree header")
	}
	return c, nil
}

// parseAuthor splits "Name <email>" at the last "<" so names may contain
// angle brackets.
func parseAuthor(s string) (name, email string, err error) {
	open := strings.LastIndex(s, "<")
	if open < 0 || !strings.HasSuffix(s, ">") {
		return "", "", fmt.Errorf("malformed author %q", s)
	}
	return strings.TrimRight(s[:open], " "), s[open+1 : len(s)-1], nil
}
