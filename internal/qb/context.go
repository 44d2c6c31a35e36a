package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// Context is the state of one opcode-stream decode: the operand stack, the
// positional-argument holders used by graphics opcodes, and the stack of
// open DEF FN bodies. It also reaches the current procedure and line.
type Context struct {
	file       *File
	stack      []ast.Expression
	positional map[string]ast.Expression
	defFns     []*ast.DefFnDeclaration
}

func newContext(f *File) *Context {
	return &Context{file: f, positional: make(map[string]ast.Expression)}
}

// Clear resets the per-line state at the start of a new line.
func (c *Context) Clear() {
	c.stack = c.stack[:0]
	clear(c.positional)
}

// Push places values on the operand stack.
func (c *Context) Push(values ...ast.Expression) {
	c.stack = append(c.stack, values...)
}

// Pop removes and returns the top of the stack.
func (c *Context) Pop() ast.Expression {
	if len(c.stack) == 0 {
		decodeErrorf("operand stack underflow")
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return top
}

// PopN removes and returns the top n values, bottom first. n of zero yields
// an empty slice.
func (c *Context) PopN(n int) []ast.Expression {
	if n <= 0 {
		return []ast.Expression{}
	}
	if n > len(c.stack) {
		decodeErrorf("operand stack underflow: need %d, have %d", n, len(c.stack))
	}
	args := make([]ast.Expression, n)
	copy(args, c.stack[len(c.stack)-n:])
	c.stack = c.stack[:len(c.stack)-n]
	return args
}

// Depth reports the operand stack depth.
func (c *Context) Depth() int { return len(c.stack) }

// SetArgument deposits a positional argument; setting a position twice is a
// decode error.
func (c *Context) SetArgument(position string, value ast.Expression) {
	if _, dup := c.positional[position]; dup {
		decodeErrorf("positional argument %q set twice", position)
	}
	c.positional[position] = value
}

// GetArgument fetches a positional argument, nil when absent.
func (c *Context) GetArgument(position string) ast.Expression {
	return c.positional[position]
}

func (c *Context) procedure() *ast.Procedure {
	return c.file.Procedures[len(c.file.Procedures)-1]
}

func (c *Context) line() *ast.Line {
	lines := c.procedure().Lines
	if len(lines) == 0 {
		decodeErrorf("statement outside a line")
	}
	return lines[len(lines)-1]
}

func (c *Context) current() ast.Statement {
	line := c.line()
	return line.Statements[len(line.Statements)-1]
}

func (c *Context) setCurrent(stmt ast.Statement) {
	line := c.line()
	line.Statements[len(line.Statements)-1] = stmt
}

// BeginLine starts a new line with an initial empty statement slot.
func (c *Context) BeginLine(label *ast.Identifier, indent int) {
	p := c.procedure()
	p.Lines = append(p.Lines, ast.NewLine(label, indent))
}

// NewStatement appends an empty slot after a ':' separator.
func (c *Context) NewStatement(col int) {
	c.line().AddStatement(&ast.EmptyStatement{}, col)
}

// PutStatement installs stmt into the current slot. An ErrorInLine with no
// remainder takes stmt as its remainder; a line IF takes it into whichever
// branch is open, and a terminal ElseStatement becomes its else branch.
func (c *Context) PutStatement(stmt ast.Statement) {
	if !c.putInto(stmt, nil) {
		decodeErrorf("statements cannot be combined")
	}
}

func (c *Context) putInto(stmt ast.Statement, into *ast.LineIfStatement) bool {
	var slot ast.Statement
	if into == nil {
		slot = c.current()
	} else if into.Else == nil {
		slot = into.Then
	} else {
		slot = into.Else.Action
	}

	switch v := slot.(type) {
	case *ast.EmptyStatement:
		// fall through to install below
	case *ast.ErrorInLine:
		if v.Rest == nil {
			v.Rest = stmt
			return true
		}
		if into != nil {
			return false
		}
		decodeErrorf("statements cannot be combined")
	case *ast.LineIfStatement:
		if c.putInto(stmt, v) {
			return true
		}
		if v.Else == nil {
			if es, ok := stmt.(*ast.ElseStatement); ok {
				v.Else = es
				return true
			}
		}
		decodeErrorf("statements cannot be combined")
	default:
		if into != nil {
			return false
		}
		decodeErrorf("statements cannot be combined")
	}

	if into == nil {
		c.setCurrent(stmt)
	} else if into.Else == nil {
		into.Then = stmt
	} else {
		into.Else.Action = stmt
	}
	return true
}

// slotRef addresses the innermost open statement slot, which may live in
// the line itself, in a line IF branch, or after an error-in-line prefix.
type slotRef struct {
	get func() ast.Statement
	set func(ast.Statement)
}

func (c *Context) slot() slotRef {
	line := c.line()
	ref := slotRef{
		get: func() ast.Statement { return line.Statements[len(line.Statements)-1] },
		set: func(s ast.Statement) { line.Statements[len(line.Statements)-1] = s },
	}
	for {
		switch v := ref.get().(type) {
		case *ast.LineIfStatement:
			iv := v
			if iv.Else == nil {
				ref = slotRef{
					get: func() ast.Statement { return iv.Then },
					set: func(s ast.Statement) { iv.Then = s },
				}
			} else {
				ref = slotRef{
					get: func() ast.Statement { return iv.Else.Action },
					set: func(s ast.Statement) { iv.Else.Action = s },
				}
			}
		case *ast.ErrorInLine:
			ev := v
			if ev.Rest == nil {
				return ref
			}
			ref = slotRef{
				get: func() ast.Statement { return ev.Rest },
				set: func(s ast.Statement) { ev.Rest = s },
			}
		default:
			return ref
		}
	}
}

// peekStatement returns the open-slot statement when it has the wanted kind.
func peekStatement[T ast.Statement](c *Context) (T, bool) {
	s, ok := c.slot().get().(T)
	return s, ok
}

// getStatement returns the open-slot statement, requiring the wanted kind.
func getStatement[T ast.Statement](c *Context) T {
	got := c.slot().get()
	s, ok := got.(T)
	if !ok {
		decodeErrorf("invalid statement: %T where %T expected", got, s)
	}
	return s
}

// putStatementKind returns the current statement when it already has the
// wanted kind, and installs a fresh one otherwise. This is how accreting
// statements collect their parts across opcodes.
func putStatementKind[T ast.Statement](c *Context, fresh func() T) T {
	if s, ok := peekStatement[T](c); ok {
		return s
	}
	s := fresh()
	c.PutStatement(s)
	return s
}

// addStatement is putStatementKind in spelling; kept separate because the
// QB70+ ERASE and LINE INPUT opcodes accrete through it.
func addStatement[T ast.Statement](c *Context, fresh func() T) T {
	return putStatementKind(c, fresh)
}

// PutAssignmentStatement routes an assignment-shaped statement: it joins a
// CONST list, merges with a pending LET placeholder, or installs normally.
func (c *Context) PutAssignmentStatement(stmt ast.Statement) {
	slot := c.slot()
	switch cur := slot.get().(type) {
	case *ast.ConstDeclaration:
		cur.Assignments = append(cur.Assignments, stmt)
	case *ast.AssignmentStatement:
		if cur.Keyword == "LET" && cur.Target == nil && cur.Value == nil {
			if as, ok := stmt.(*ast.AssignmentStatement); ok {
				as.Keyword = "LET"
			}
			slot.set(stmt)
			return
		}
		c.PutStatement(stmt)
	default:
		c.PutStatement(stmt)
	}
}

// PutDeclaration ensures the current statement is a variable-declaration
// statement and returns its trailing nameless declarator, appending one
// when the last declarator already has its name.
func (c *Context) PutDeclaration() *ast.VariableDeclaration {
	d := putStatementKind(c, func() *ast.VariableDeclarationStatement {
		return &ast.VariableDeclarationStatement{}
	})
	if n := len(d.Declarations); n == 0 || d.Declarations[n-1].Name != nil {
		d.Declarations = append(d.Declarations, &ast.VariableDeclaration{})
	}
	return d.Declarations[len(d.Declarations)-1]
}

// BeginDefFn opens a DEF FN body.
func (c *Context) BeginDefFn(d *ast.DefFnDeclaration) {
	c.PutStatement(d)
	c.defFns = append(c.defFns, d)
}

// CloseDefFn closes the innermost DEF FN with its body expression.
func (c *Context) CloseDefFn(body ast.Expression) {
	if len(c.defFns) == 0 {
		decodeErrorf("DEF FN body without an open DEF FN")
	}
	c.defFns[len(c.defFns)-1].Definition = body
	c.defFns = c.defFns[:len(c.defFns)-1]
}

// EndDefFnBlock closes the innermost DEF FN with an explicit END DEF.
func (c *Context) EndDefFnBlock() {
	c.PutStatement(&ast.EndDeclaration{Kind: "DEF"})
	if len(c.defFns) > 0 {
		c.defFns = c.defFns[:len(c.defFns)-1]
	}
}

// OpenDefFns reports how many DEF FN bodies are still open.
func (c *Context) OpenDefFns() int { return len(c.defFns) }

// ExitKind resolves the bare EXIT opcode: DEF inside an open DEF FN body,
// otherwise the kind of the enclosing procedure.
func (c *Context) ExitKind() string {
	if len(c.defFns) > 0 {
		return "DEF"
	}
	return c.procedure().Kind
}

// PutMetaCommand attaches a metacommand to the current REM statement or to
// the line's trailing comment.
func (c *Context) PutMetaCommand(cmd *ast.MetaCommand) {
	stmt := c.current()
	if e, ok := stmt.(*ast.ErrorInLine); ok {
		// an error-in-line may prefix a comment
		stmt = e.Rest
	}
	if rem, ok := stmt.(*ast.RemStatement); ok {
		if rem.Meta != nil {
			decodeErrorf("REM already has a metacommand")
		}
		rem.Meta = cmd
		return
	}
	line := c.line()
	if line.Comment == nil {
		decodeErrorf("metacommand without a comment")
	}
	if line.Comment.Meta != nil {
		decodeErrorf("comment already has a metacommand")
	}
	line.Comment.Meta = cmd
}

// AttachComment sets the line's trailing comment; a line comments only
// once.
func (c *Context) AttachComment(text []byte, column int) {
	line := c.line()
	if line.Comment != nil {
		decodeErrorf("line already has a comment")
	}
	line.Comment = &ast.Comment{Text: text, Column: column}
}

// ReadVar resolves the next name offset in the stream into an identifier.
func (c *Context) ReadVar(r *binio.Reader) *ast.Identifier {
	return c.file.ReadVar(r, r.U16())
}
