package typeexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Shape is the parsed structure of the type expressions conversion strategies
// care about: pointers, slices, arrays, maps and named types. Anything else
// (functions, channels, literals) does not parse.
type Shape struct {
	Pointer *Shape      `parser:"  '*' @@"`
	Slice   *Shape      `parser:"| '[' ']' @@"`
	Array   *ArrayShape `parser:"| @@"`
	Map     *MapShape   `parser:"| @@"`
	Named   string      `parser:"| @Ident"`
}

// ArrayShape is a fixed-length array
type ArrayShape struct {
	Len  string `parser:"'[' @Int ']'"`
	Elem *Shape `parser:"@@"`
}

// MapShape is a map type
type MapShape struct {
	Key   *Shape `parser:"'map' '[' @@ ']'"`
	Value *Shape `parser:"@@"`
}

var shapeParser = participle.MustBuild[Shape](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*(?:[./][A-Za-z0-9_\-]+)*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[\[\]*]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseShape parses a type expression into its Shape
func ParseShape(expr string) (*Shape, error) {
	shape, err := shapeParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("unsupported type expression %q: %w", expr, err)
	}
	return shape, nil
}

// SliceElem returns the element name of a slice of a named type ("[]pkg.T")
func (s *Shape) SliceElem() (string, bool) {
	if s == nil || s.Slice == nil || s.Slice.Named == "" {
		return "", false
	}
	return s.Slice.Named, true
}

// String prints the shape back in go/types notation
func (s *Shape) String() string {
	switch {
	case s == nil:
		return ""
	case s.Pointer != nil:
		return "*" + s.Pointer.String()
	case s.Slice != nil:
		return "[]" + s.Slice.String()
	case s.Array != nil:
		return "[" + s.Array.Len + "]" + s.Array.Elem.String()
	case s.Map != nil:
		return "map[" + s.Map.Key.String() + "]" + s.Map.Value.String()
	default:
		return s.Named
	}
}
