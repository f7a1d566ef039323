package pathdata

import "github.com/alecthomas/participle/v2/lexer"

// Path is a parsed path data attribute.
type Path struct {
	Commands []*Command `@@*`
}

// Command is one command letter with its raw argument list. Repeated
// argument groups ("L 1 2 3 4") stay in a single command.
type Command struct {
	Pos  lexer.Position
	Op   string    `@Op`
	Args []float64 `@Number*`
}

// Relative reports whether the command uses lower-case relative
// coordinates.
func (c *Command) Relative() bool {
	return c.Op[0] >= 'a' && c.Op[0] <= 'z'
}

// arity returns the number of arguments per repetition of op.
func arity(op byte) int {
	switch op | 0x20 {
	case 'm', 'l', 't':
		return 2
	case 'h', 'v':
		return 1
	case 's', 'q':
		return 4
	case 'c':
		return 6
	case 'a':
		return 7
	}
	return 0
}
