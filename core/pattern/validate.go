package pattern

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/digipres-tools/droidsig/core/errors"
)

// allowedValue is the character set a byte-sequence value may use: hex
// digits plus the pattern operators.
var allowedValue = regexp.MustCompile(`^[a-fA-F0-9*\[\]?!&|(){}:-]+$`)

// controlTokens are the operators that mark a value as a pattern rather
// than a plain run of hex bytes. A value containing any of these is exempt
// from the even-length check.
var controlTokens = []string{"??", "(", ")", "|", "{", "}", ":", "-", "[", "]", "*"}

// Validate checks and normalizes a raw byte-sequence value.
//
// A value using characters outside the allowed set is logged as an error
// but is not rejected on that basis alone; only the even-length check on a
// control-token-free value rejects, because an odd number of hex digits
// cannot represent whole bytes. Accepted values are trimmed, uppercased
// and stripped of internal spaces. A value containing an ampersand is
// passed through with a compatibility warning; escaping is the
// serializer's job.
func Validate(raw string, log *slog.Logger) (string, error) {
	value := strings.TrimSpace(raw)
	if !allowedValue.MatchString(value) {
		log.Error("signature is not valid", "value", value)
	}
	if !containsControlToken(value) && len(value)%2 != 0 {
		log.Error("rejecting sig data based on length", "value", value)
		return "", &errors.ValidationError{
			Field:   "ByteSequenceValue",
			Value:   value,
			Message: "odd-length hex value cannot represent whole bytes",
		}
	}
	value = normalize(value)
	if strings.Contains(value, "&") {
		log.Warn("signature might not function properly", "value", value)
	}
	return value, nil
}

func containsControlToken(value string) bool {
	for _, tok := range controlTokens {
		if strings.Contains(value, tok) {
			return true
		}
	}
	return false
}

// normalize removes low-hanging compatibility issues: surrounding
// whitespace, lower-case hex, internal spaces.
func normalize(value string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "")
}
