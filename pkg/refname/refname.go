// Package refname provides validated name value objects. Names are checked
// at construction, so an invalid RepositoryName or BranchName is
// unrepresentable once it exists.
package refname

import (
	"errors"
	"fmt"
	"strings"
)

// MaxNameLength caps all validated names.
const MaxNameLength = 100

// ErrInvalidName reports a name rejected at construction: empty, too long,
// or containing disallowed characters.
var ErrInvalidName = errors.New("invalid name")

// RepositoryName is a validated repository name: non-empty, at most
// MaxNameLength characters, restricted to letters, digits, '.', '-', '_'.
type RepositoryName struct {
	value string
}

// NewRepositoryName validates and wraps a repository name.
func NewRepositoryName(name string) (RepositoryName, error) {
	if err := validateSegment(name, "repository name"); err != nil {
		return RepositoryName{}, err
	}
	return RepositoryName{value: name}, nil
}

func (n RepositoryName) Value() string  { return n.value }
func (n RepositoryName) String() string { return n.value }

// BranchName is a validated branch name. Same character rules as
// RepositoryName, but '/' is allowed between non-empty segments
// (e.g. "feature/compression").
type BranchName struct {
	value string
}

// NewBranchName validates and wraps a branch name.
func NewBranchName(name string) (BranchName, error) {
	if name == "" {
		return BranchName{}, fmt.Errorf("%w: branch name is empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return BranchName{}, fmt.Errorf("%w: branch name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	for _, seg := range strings.Split(name, "/") {
		if err := validateSegment(seg, "branch name segment"); err != nil {
			return BranchName{}, err
		}
	}
	return BranchName{value: name}, nil
}

func (n BranchName) Value() string  { return n.value }
func (n BranchName) String() string { return n.value }

func validateSegment(s, what string) error {
	if s == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidName, what)
	}
	if len(s) > MaxNameLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidName, what, MaxNameLength)
	}
	for _, c := range s {
		if !isNameChar(c) {
			return fmt.Errorf("%w: %s contains disallowed character %q", ErrInvalidName, what, c)
		}
	}
	return nil
}

func isNameChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_':
		return true
	}
	return false
}
