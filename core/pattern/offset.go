package pattern

import "fmt"

// EncodeOffset applies the anchor-specific offset quantifier to an already
// validated value. It is a pure function of (anchor, min, max); entities
// are never mutated.
//
// Four shapes per anchor, selected on which bounds are present and
// positive (absent is not zero):
//
//	both     -> {min-(min+max)}
//	max only -> {0-max}
//	min only -> {min}
//	neither  -> bare value
//
// BOF prefixes the quantifier, EOF appends it, an unknown anchor returns
// the value untouched.
func EncodeOffset(anchor Anchor, value string, min, max *int) string {
	switch anchor {
	case AnchorBOF:
		return quantifier(min, max) + value
	case AnchorEOF:
		return value + quantifier(min, max)
	}
	return value
}

func quantifier(min, max *int) string {
	switch {
	case positive(min) && positive(max):
		return fmt.Sprintf("{%d-%d}", *min, *min+*max)
	case positive(max):
		return fmt.Sprintf("{0-%d}", *max)
	case positive(min):
		return fmt.Sprintf("{%d}", *min)
	}
	return ""
}

func positive(n *int) bool {
	return n != nil && *n > 0
}
