package pattern

import (
	"strings"
	"testing"
)

func TestParseLiteralBytes(t *testing.T) {
	p, err := Parse("4F532F32")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Elements) != 4 {
		t.Fatalf("expected 4 byte elements, got %d", len(p.Elements))
	}
	if p.Elements[0].Byte != "4F" {
		t.Errorf("first element = %q, want 4F", p.Elements[0].Byte)
	}
}

func TestParseFullPattern(t *testing.T) {
	p, err := Parse("04??[01:0C][01:1F]{28}([41:5A]|[61:7A]){10}(43|44|46|4C|4E)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 04, ??, two ranges, {28}, choice, {10}, choice
	if len(p.Elements) != 8 {
		t.Fatalf("expected 8 elements, got %d", len(p.Elements))
	}
	if !p.Elements[1].Any {
		t.Error("second element should be ??")
	}
	r := p.Elements[2].Range
	if r == nil || r.From != "01" || r.To != "0C" || r.Not {
		t.Errorf("unexpected range: %+v", r)
	}
	q := p.Elements[4].Quant
	if q == nil || q.Min != "28" || q.Max != "" {
		t.Errorf("unexpected quantifier: %+v", q)
	}
	c := p.Elements[7].Choice
	if c == nil || len(c.Alternatives) != 5 {
		t.Errorf("unexpected choice: %+v", c)
	}
}

func TestParseQuantifierRange(t *testing.T) {
	p, err := Parse("6C6F6361{0-256}6D617870")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var q *Quant
	for _, e := range p.Elements {
		if e.Quant != nil {
			q = e.Quant
		}
	}
	if q == nil || q.Min != "0" || q.Max != "256" {
		t.Errorf("unexpected quantifier: %+v", q)
	}
}

func TestParseOpenEndedQuantifier(t *testing.T) {
	p, err := Parse("4D5A{10-*}50450000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var q *Quant
	for _, e := range p.Elements {
		if e.Quant != nil {
			q = e.Quant
		}
	}
	if q == nil || q.Min != "10" || q.Max != "*" {
		t.Errorf("unexpected quantifier: %+v", q)
	}
}

func TestParseNotRange(t *testing.T) {
	p, err := Parse("[!41:5A]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := p.Elements[0].Range
	if r == nil || !r.Not || r.From != "41" || r.To != "5A" {
		t.Errorf("unexpected range: %+v", r)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"G1", "41F", "{-3}", "(41|"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestDescribe(t *testing.T) {
	p, err := Parse("04??{0-256}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lines := Describe(p)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "literal byte") {
		t.Errorf("line 0: %q", lines[0])
	}
	if !strings.Contains(lines[1], "any single byte") {
		t.Errorf("line 1: %q", lines[1])
	}
	if !strings.Contains(lines[2], "0 to 256") {
		t.Errorf("line 2: %q", lines[2])
	}
}
