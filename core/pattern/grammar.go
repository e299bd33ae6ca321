package pattern

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/digipres-tools/droidsig/core/errors"
)

// Pattern is the parsed form of a byte-sequence value. It exists for
// diagnostics (the `explain` command); Validate never consults it, so the
// grammar cannot change which values are accepted into a signature file.
type Pattern struct {
	Elements []*Element `parser:"@@+"`
}

// Element is a single syntactic unit of a pattern.
type Element struct {
	Any      bool    `parser:"  @Any"`
	Wildcard bool    `parser:"| @Star"`
	Byte     string  `parser:"| @Hex"`
	Range    *Range  `parser:"| @@"`
	Choice   *Choice `parser:"| @@"`
	Quant    *Quant  `parser:"| @@"`
}

// Range is a byte range such as [41:5A], or an excluding range [!41:5A].
type Range struct {
	Not  bool   `parser:"LBracket @Not?"`
	From string `parser:"@Hex+"`
	To   string `parser:"( Colon @Hex+ )? RBracket"`
}

// Choice is an alternation such as (43|44|46).
type Choice struct {
	Alternatives []*Alternative `parser:"LParen @@ ( Pipe @@ )* RParen"`
}

// Alternative is one branch of a Choice.
type Alternative struct {
	Elements []*Element `parser:"@@+"`
}

// Quant is an offset quantifier such as {28}, {0-256} or {10-*}.
type Quant struct {
	Min string `parser:"LBrace @Number"`
	Max string `parser:"( Dash @( Number | Star ) )? RBrace"`
}

// patternLexer tokenizes byte-sequence values. Quantifier and range bodies
// use their own states so digit runs inside braces lex as numbers rather
// than hex bytes.
var patternLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "LBrace", Pattern: `\{`, Action: lexer.Push("Quant")},
		{Name: "LBracket", Pattern: `\[`, Action: lexer.Push("Range")},
		{Name: "Any", Pattern: `\?\?`},
		{Name: "Star", Pattern: `\*`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Hex", Pattern: `[0-9A-Fa-f]{2}`},
	},
	"Quant": {
		{Name: "Number", Pattern: `\d+`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Star", Pattern: `\*`},
		{Name: "RBrace", Pattern: `\}`, Action: lexer.Pop()},
	},
	"Range": {
		{Name: "Not", Pattern: `!`},
		{Name: "Hex", Pattern: `[0-9A-Fa-f]{2}`},
		{Name: "Colon", Pattern: `:`},
		{Name: "RBracket", Pattern: `\]`, Action: lexer.Pop()},
	},
})

var patternParser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
)

// Parse parses a normalized byte-sequence value into a Pattern.
func Parse(input string) (*Pattern, error) {
	p, err := patternParser.ParseString("", input)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "pattern",
			Message: err.Error(),
			Err:     err,
		}
	}
	return p, nil
}

// Describe renders a pattern as one human-readable line per element.
func Describe(p *Pattern) []string {
	var lines []string
	for _, e := range p.Elements {
		lines = append(lines, describeElement(e))
	}
	return lines
}

func describeElement(e *Element) string {
	switch {
	case e.Any:
		return "??            match any single byte"
	case e.Wildcard:
		return "*             unbounded gap"
	case e.Byte != "":
		return fmt.Sprintf("%-13s literal byte", strings.ToUpper(e.Byte))
	case e.Range != nil:
		return describeRange(e.Range)
	case e.Choice != nil:
		return fmt.Sprintf("(...)         one of %d alternatives", len(e.Choice.Alternatives))
	case e.Quant != nil:
		return describeQuant(e.Quant)
	}
	return "?"
}

func describeRange(r *Range) string {
	from := strings.ToUpper(r.From)
	if r.To == "" {
		if r.Not {
			return fmt.Sprintf("[!%s]         any byte except %s", from, from)
		}
		return fmt.Sprintf("[%s]          byte %s", from, from)
	}
	to := strings.ToUpper(r.To)
	if r.Not {
		return fmt.Sprintf("[!%s:%s]      any byte outside %s..%s", from, to, from, to)
	}
	return fmt.Sprintf("[%s:%s]       any byte in %s..%s", from, to, from, to)
}

func describeQuant(q *Quant) string {
	switch {
	case q.Max == "":
		return fmt.Sprintf("{%s}          skip exactly %s bytes", q.Min, q.Min)
	case q.Max == "*":
		return fmt.Sprintf("{%s-*}        skip %s or more bytes", q.Min, q.Min)
	}
	return fmt.Sprintf("{%s-%s}       skip %s to %s bytes", q.Min, q.Max, q.Min, q.Max)
}
