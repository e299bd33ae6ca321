// Package sigfile assembles extracted format records into a simplified
// DROID signature file and serializes it.
//
// The element and attribute names and their order are contract surface:
// DROID reads this document, so the structs below are the schema.
package sigfile

import "encoding/xml"

// Namespace is the signature-file schema namespace DROID expects.
const Namespace = "http://www.nationalarchives.gov.uk/pronom/SignatureFile"

// TimeFormat renders DateCreated as a UTC timestamp.
const TimeFormat = "2006-01-02T15:04:05Z"

// SignatureFile is the root FFSignatureFile document.
type SignatureFile struct {
	XMLName     xml.Name `xml:"FFSignatureFile"`
	Namespace   string   `xml:"xmlns,attr"`
	Version     string   `xml:"Version,attr"`
	DateCreated string   `xml:"DateCreated,attr"`

	InternalSignatures InternalSignatureCollection `xml:"InternalSignatureCollection"`
	FileFormats        FileFormatCollection        `xml:"FileFormatCollection"`
}

// InternalSignatureCollection holds the encoded byte-signature groups.
type InternalSignatureCollection struct {
	Signatures []InternalSignature `xml:"InternalSignature"`
}

// InternalSignature is one signature group; its byte sequences stay in
// extraction order.
type InternalSignature struct {
	ID            string         `xml:"ID,attr"`
	Specificity   string         `xml:"Specificity,attr"`
	ByteSequences []ByteSequence `xml:"ByteSequence"`
}

// ByteSequence carries one encoded pattern. MinOffset and MaxOffset render
// empty when the bound was absent in the report.
type ByteSequence struct {
	Reference string `xml:"Reference,attr"`
	Sequence  string `xml:"Sequence,attr"`
	MinOffset string `xml:"MinOffset,attr"`
	MaxOffset string `xml:"MaxOffset,attr"`
}

// FileFormatCollection holds one entry per retained format.
type FileFormatCollection struct {
	Formats []FileFormat `xml:"FileFormat"`
}

// FileFormat references its internal signatures by ID and carries the
// extension and priority references. Priority IDs are passed through
// unverified; cross-document referential integrity is not this tool's job.
type FileFormat struct {
	ID       string `xml:"ID,attr"`
	Name     string `xml:"Name,attr"`
	PUID     string `xml:"PUID,attr"`
	Version  string `xml:"Version,attr"`
	MIMEType string `xml:"MIMEType,attr"`

	InternalSignatureIDs []string `xml:"InternalSignatureID"`
	Extensions           []string `xml:"Extension"`
	PriorityOver         []string `xml:"HasPriorityOverFileFormatID"`
}
