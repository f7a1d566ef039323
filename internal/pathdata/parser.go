package pathdata

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// ErrSyntax is wrapped by every error returned for malformed path data.
var ErrSyntax = errors.New("pathdata: invalid path data")

var parser = participle.MustBuild[Path](
	participle.Lexer(PathLexer),
	participle.Elide("Whitespace"),
)

// Parse parses an SVG path data string and checks argument counts.
func Parse(d string) (*Path, error) {
	p, err := parser.ParseString("", d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	for i, c := range p.Commands {
		if i == 0 && c.Op[0]|0x20 != 'm' {
			return nil, fmt.Errorf("%w: path must start with a moveto, got %q", ErrSyntax, c.Op)
		}
		n := arity(c.Op[0])
		switch {
		case n == 0 && len(c.Args) > 0:
			return nil, fmt.Errorf("%w: %s at %s takes no arguments", ErrSyntax, c.Op, c.Pos)
		case n > 0 && (len(c.Args) == 0 || len(c.Args)%n != 0):
			return nil, fmt.Errorf("%w: %s at %s expects a multiple of %d numbers, got %d",
				ErrSyntax, c.Op, c.Pos, n, len(c.Args))
		}
	}
	return p, nil
}
