// Package pronom extracts typed format records from PRONOM report XML.
package pronom

import "github.com/digipres-tools/droidsig/core/pattern"

// ExtensionType is the external-signature category that feeds the output
// document; other categories are carried but never rendered.
const ExtensionType = "File extension"

// Format is the record extracted from one PRONOM report.
type Format struct {
	ID             string
	Name           string
	Version        string
	PUID           string
	MIME           string
	Classification string

	ExternalSignatures []ExternalSignature
	InternalSignatures []InternalSignature
	Priorities         []Priority
}

// InternalSignature is a named group of byte sequences. Sequence order is
// significant: multiple sequences are fragments of one pattern family and
// are never re-ordered.
type InternalSignature struct {
	ID            string
	Name          string
	ByteSequences []ByteSequence
}

// ByteSequence is a single validated byte pattern. MinOffset and MaxOffset
// are optional; absent is not zero.
type ByteSequence struct {
	ID         string
	Anchor     pattern.Anchor
	MinOffset  *int
	MaxOffset  *int
	Endianness string
	Value      string
}

// ExternalSignature is a non-byte signature such as a file extension.
type ExternalSignature struct {
	ID        string
	Signature string
	Type      string
}

// Priority is a directed "has priority over" reference to a sibling
// format ID. It is a reference, not an ownership edge.
type Priority struct {
	Type string
	ID   string
}
