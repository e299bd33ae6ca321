package sigfile

import (
	"strconv"
	"time"

	"github.com/digipres-tools/droidsig/core/pattern"
	"github.com/digipres-tools/droidsig/core/pronom"
)

// specificity is fixed for every simplified signature.
const specificity = "Specific"

// Assemble folds extracted format records into one signature file. Record
// order is preserved as given; no sorting, deduplication or cross-format
// validation happens here. Offset encoding is applied to each byte
// sequence on the way through; the records themselves are not mutated.
func Assemble(formats []*pronom.Format, created time.Time) *SignatureFile {
	sf := &SignatureFile{
		Namespace:   Namespace,
		Version:     "1",
		DateCreated: created.UTC().Format(TimeFormat),
	}
	for _, format := range formats {
		for _, sig := range format.InternalSignatures {
			sf.InternalSignatures.Signatures = append(sf.InternalSignatures.Signatures, assembleSignature(sig))
		}
		sf.FileFormats.Formats = append(sf.FileFormats.Formats, assembleFormat(format))
	}
	return sf
}

func assembleSignature(sig pronom.InternalSignature) InternalSignature {
	out := InternalSignature{ID: sig.ID, Specificity: specificity}
	for _, bs := range sig.ByteSequences {
		out.ByteSequences = append(out.ByteSequences, ByteSequence{
			Reference: string(bs.Anchor),
			Sequence:  pattern.EncodeOffset(bs.Anchor, bs.Value, bs.MinOffset, bs.MaxOffset),
			MinOffset: offsetAttr(bs.MinOffset),
			MaxOffset: offsetAttr(bs.MaxOffset),
		})
	}
	return out
}

func assembleFormat(format *pronom.Format) FileFormat {
	out := FileFormat{
		ID:       format.ID,
		Name:     format.Name,
		PUID:     format.PUID,
		Version:  format.Version,
		MIMEType: format.MIME,
	}
	for _, sig := range format.InternalSignatures {
		out.InternalSignatureIDs = append(out.InternalSignatureIDs, sig.ID)
	}
	for _, ext := range format.ExternalSignatures {
		if ext.Type == pronom.ExtensionType {
			out.Extensions = append(out.Extensions, ext.Signature)
		}
	}
	for _, priority := range format.Priorities {
		out.PriorityOver = append(out.PriorityOver, priority.ID)
	}
	return out
}

// offsetAttr renders an optional bound; absent stays empty rather than
// becoming "0".
func offsetAttr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
