package pattern

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/digipres-tools/droidsig/internal/logging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateAcceptsEvenHex(t *testing.T) {
	got, err := Validate("41fa", discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != "41FA" {
		t.Errorf("Validate(41fa) = %q, want 41FA", got)
	}
}

func TestValidateRejectsOddHex(t *testing.T) {
	if _, err := Validate("41F", discardLogger()); err == nil {
		t.Error("odd-length pure hex value should be rejected")
	}
}

func TestValidateOddLengthPatternSurvives(t *testing.T) {
	// A control token exempts the value from the even-length check.
	got, err := Validate("04??a", discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != "04??A" {
		t.Errorf("got %q, want 04??A", got)
	}
}

func TestValidateDisallowedCharacterLoggedNotRejected(t *testing.T) {
	// Character-set failures are logged but only the length check can
	// reject. This mirrors the behavior DROID consumers rely on today.
	collector := logging.NewCollector(slog.NewTextHandler(io.Discard, nil))
	logger := slog.New(collector)

	got, err := Validate("zz", logger)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != "ZZ" {
		t.Errorf("got %q, want ZZ", got)
	}
	if collector.Errors() != 1 {
		t.Errorf("expected one logged error, got %d", collector.Errors())
	}
}

func TestValidateAmpersandWarnsOnly(t *testing.T) {
	var buf bytes.Buffer
	collector := logging.NewCollector(slog.NewTextHandler(&buf, nil))
	logger := slog.New(collector)

	got, err := Validate("41&42A3", logger)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != "41&42A3" {
		t.Errorf("got %q; value must pass through unescaped", got)
	}
	if collector.Warnings() != 1 {
		t.Errorf("expected one warning, got %d", collector.Warnings())
	}
}

func TestValidateNormalizesSpaces(t *testing.T) {
	// Internal spaces count toward the length check but are stripped from
	// the accepted value.
	got, err := Validate("  41 FA 3B  ", discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != "41FA3B" {
		t.Errorf("got %q, want 41FA3B", got)
	}
}

func TestValidateFullPatternValue(t *testing.T) {
	in := "04??[01:0C][01:1F]{28}([41:5A]|[61:7A]){10}(43|44|46|4C|4E)"
	got, err := Validate(in, discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got != in {
		t.Errorf("pattern value should be unchanged, got %q", got)
	}
}

func TestParseAnchor(t *testing.T) {
	cases := []struct {
		in   string
		want Anchor
	}{
		{"Absolute from BOF", AnchorBOF},
		{"Absolute from EOF", AnchorEOF},
		{"Variable", AnchorNone},
		{"", AnchorNone},
	}
	for _, c := range cases {
		if got := ParseAnchor(c.in); got != c.want {
			t.Errorf("ParseAnchor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
