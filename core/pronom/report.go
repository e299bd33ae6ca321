package pronom

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/digipres-tools/droidsig/core/errors"
	"github.com/digipres-tools/droidsig/core/pattern"
)

// relationshipPriorityOver is the only RelatedFormat relationship retained;
// the inverse ("Has lower priority than") is recorded on the other format's
// report and would double every edge.
const relationshipPriorityOver = "Has priority over"

// ParseReport extracts a Format record from one PRONOM report.
//
// A malformed document is an error. A well-formed report describing a
// format with no usable signature is not: it returns (nil, nil) and is
// legitimately absent from the output. Missing labels yield empty values.
func ParseReport(data []byte, log *slog.Logger) (*Format, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: "malformed report", Err: err}
	}

	externals := extractExternalSignatures(doc)
	internals := extractInternalSignatures(doc, log)
	puid, mime := extractIdentifiers(doc)
	if len(externals) == 0 && len(internals) == 0 {
		log.Debug("format has no usable signature, dropping",
			"format_id", findText(doc, "FormatID"),
			"puid", puid)
		return nil, nil
	}

	return &Format{
		ID:                 findText(doc, "FormatID"),
		Name:               findText(doc, "FormatName"),
		Version:            findText(doc, "FormatVersion"),
		PUID:               puid,
		MIME:               mime,
		Classification:     findText(doc, "FormatTypes"),
		ExternalSignatures: externals,
		InternalSignatures: internals,
		Priorities:         extractPriorities(doc),
	}, nil
}

// extractExternalSignatures collects every ExternalSignature block.
func extractExternalSignatures(doc *xmlquery.Node) []ExternalSignature {
	var sigs []ExternalSignature
	for _, node := range xmlquery.Find(doc, "//ExternalSignature") {
		sigs = append(sigs, ExternalSignature{
			ID:        childText(node, "ExternalSignatureID"),
			Signature: childText(node, "Signature"),
			Type:      childText(node, "SignatureType"),
		})
	}
	return sigs
}

// extractInternalSignatures collects every InternalSignature block. A block
// whose byte sequences all fail validation is dropped; its siblings are
// unaffected.
func extractInternalSignatures(doc *xmlquery.Node, log *slog.Logger) []InternalSignature {
	var sigs []InternalSignature
	for _, node := range xmlquery.Find(doc, "//InternalSignature") {
		id := childText(node, "SignatureID")
		sequences := extractByteSequences(node, log)
		if len(sequences) == 0 {
			log.Warn("internal signature has no valid byte sequences, dropping", "signature_id", id)
			continue
		}
		sigs = append(sigs, InternalSignature{
			ID:            id,
			Name:          childText(node, "SignatureName"),
			ByteSequences: sequences,
		})
	}
	return sigs
}

// extractByteSequences validates and collects the ByteSequence sub-blocks
// of one internal signature, in document order. Rejected values have
// already been logged by pattern.Validate.
func extractByteSequences(sig *xmlquery.Node, log *slog.Logger) []ByteSequence {
	var sequences []ByteSequence
	for _, node := range xmlquery.Find(sig, "ByteSequence") {
		value, err := pattern.Validate(childText(node, "ByteSequenceValue"), log)
		if err != nil {
			continue
		}
		sequences = append(sequences, ByteSequence{
			ID:         childText(node, "ByteSequenceID"),
			Anchor:     pattern.ParseAnchor(childText(node, "PositionType")),
			MinOffset:  parseOffset(node, "Offset", log),
			MaxOffset:  parseOffset(node, "MaxOffset", log),
			Endianness: childText(node, "Endianness"),
			Value:      value,
		})
	}
	return sequences
}

// extractIdentifiers scans FileFormatIdentifier blocks, keeping the last
// value seen for each recognized type.
func extractIdentifiers(doc *xmlquery.Node) (puid, mime string) {
	for _, node := range xmlquery.Find(doc, "//FileFormatIdentifier") {
		value := childText(node, "Identifier")
		switch childText(node, "IdentifierType") {
		case "MIME":
			mime = value
		case "PUID":
			puid = value
		}
	}
	return puid, mime
}

// extractPriorities keeps RelatedFormat blocks carrying the "has priority
// over" relation; all other relationship labels are silently discarded.
func extractPriorities(doc *xmlquery.Node) []Priority {
	var priorities []Priority
	for _, node := range xmlquery.Find(doc, "//RelatedFormat") {
		relType := childText(node, "RelationshipType")
		if relType != relationshipPriorityOver {
			continue
		}
		priorities = append(priorities, Priority{
			Type: relType,
			ID:   childText(node, "RelatedFormatID"),
		})
	}
	return priorities
}

// findText returns the trimmed text of the first element named tag
// anywhere in the document; absence yields "".
func findText(doc *xmlquery.Node, tag string) string {
	return nodeText(xmlquery.FindOne(doc, "//"+tag))
}

// childText returns the trimmed text of the first child element named tag;
// absence yields "".
func childText(node *xmlquery.Node, tag string) string {
	return nodeText(xmlquery.FindOne(node, tag))
}

func nodeText(node *xmlquery.Node) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

// parseOffset reads an optional non-negative bound. Absent or empty is
// nil, never zero, because zero and absent select different offset
// encodings.
func parseOffset(node *xmlquery.Node, tag string, log *slog.Logger) *int {
	text := childText(node, tag)
	if text == "" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		log.Warn("ignoring unusable offset bound", "field", tag, "value", text)
		return nil
	}
	return &n
}
