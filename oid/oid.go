// Package oid implements conversions and relational operations over SNMP
// object identifiers: dotted-string parsing, lexicographic comparison,
// subtree containment, and table-index extraction.
package oid

import (
	"errors"
	"strconv"
	"strings"
)

// Errors returned by string parsing.
var (
	ErrEmptyOID      = errors.New("oid: empty oid string")
	ErrTrailingDot   = errors.New("oid: trailing dot")
	ErrInvalidSyntax = errors.New("oid: invalid oid syntax")
	ErrTooShort      = errors.New("oid: oid must have at least 2 components")
)

// OID is an ordered, immutable sequence of non-negative integers.
type OID []int

// Parse converts a dotted string to an OID. A leading dot is permitted and
// stripped; empty strings and strings with a trailing dot are rejected.
func Parse(s string) (OID, error) {
	if s == "" {
		return nil, ErrEmptyOID
	}
	if strings.HasPrefix(s, ".") {
		s = s[1:]
	}
	if s == "" {
		return nil, ErrEmptyOID
	}
	if strings.HasSuffix(s, ".") {
		return nil, ErrTrailingDot
	}

	parts := strings.Split(s, ".")
	components := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, ErrInvalidSyntax
		}
		components[i] = n
	}
	if len(components) < 2 {
		return nil, ErrTooShort
	}
	return OID(components), nil
}

// MustParse is Parse but panics on error; intended for package-level literal
// tables (e.g. the MIB registry) where the input is a compile-time constant.
func MustParse(s string) OID {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String renders an OID in dotted form without a leading dot.
func (o OID) String() string {
	parts := make([]string, len(o))
	for i, c := range o {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

// Clone returns an independent copy of o.
func (o OID) Clone() OID {
	c := make(OID, len(o))
	copy(c, o)
	return c
}

// Equal reports whether o and other have identical components.
func (o OID) Equal(other OID) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 according to whether o sorts before, equal to,
// or after other in lexicographic order over components.
func (o OID) Compare(other OID) int {
	n := len(o)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if o[i] != other[i] {
			if o[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(o) < len(other):
		return -1
	case len(o) > len(other):
		return 1
	default:
		return 0
	}
}

// Less reports whether o sorts strictly before other.
func (o OID) Less(other OID) bool { return o.Compare(other) < 0 }

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of
// o.
func (o OID) HasPrefix(prefix OID) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i := range prefix {
		if o[i] != prefix[i] {
			return false
		}
	}
	return true
}

// IsChildOf reports whether o is a strict descendant of parent: parent is a
// proper prefix of o (shorter, and every component matches).
func (o OID) IsChildOf(parent OID) bool {
	return len(o) > len(parent) && o.HasPrefix(parent)
}

// TableIndex returns the suffix of rowOID following tableColumn, i.e. the
// row's index components. found is false if tableColumn is not a prefix of
// rowOID.
func TableIndex(rowOID, tableColumn OID) (index OID, found bool) {
	if !rowOID.HasPrefix(tableColumn) {
		return nil, false
	}
	return rowOID[len(tableColumn):], true
}

// Append returns a new OID with extra components appended, leaving o
// unmodified.
func (o OID) Append(extra ...int) OID {
	out := make(OID, 0, len(o)+len(extra))
	out = append(out, o...)
	out = append(out, extra...)
	return out
}
