// Package pattern validates and encodes PRONOM byte-sequence values into
// the pattern syntax used by DROID signature files.
//
// A byte-sequence value is a hex string optionally interleaved with pattern
// operators: `??` (any byte), `*` (gap), `[41:5A]` ranges, `(41|42)`
// alternations and `{n}`/`{n-m}` offset quantifiers, e.g.
//
//	04??[01:0C][01:1F]{28}([41:5A]|[61:7A]){10}(43|44|46|4C|4E)
package pattern

// Anchor identifies where a byte sequence is measured from.
type Anchor string

const (
	// AnchorBOF anchors a sequence to the beginning of file.
	AnchorBOF Anchor = "BOFoffset"
	// AnchorEOF anchors a sequence to the end of file.
	AnchorEOF Anchor = "EOFoffset"
	// AnchorNone is an unknown or variable position; no offset encoding
	// is applied.
	AnchorNone Anchor = ""
)

// ParseAnchor normalizes a PRONOM PositionType label to an Anchor.
// Labels other than the two absolute position types map to AnchorNone.
func ParseAnchor(positionType string) Anchor {
	switch positionType {
	case "Absolute from BOF":
		return AnchorBOF
	case "Absolute from EOF":
		return AnchorEOF
	}
	return AnchorNone
}
