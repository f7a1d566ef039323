package pathdata

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PathLexer splits SVG path data into command letters and numbers.
// Commas count as whitespace; numbers may run together when a sign or a
// second decimal point starts the next one ("1.5.5-2" is 1.5, .5, -2).
var PathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s,]+`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Op", Pattern: `[MmLlHhVvCcSsQqTtAaZz]`},
})
