package ast

import "strings"

// EmptyStatement is the placeholder that occupies a statement slot until
// an opcode fills it in.
type EmptyStatement struct{}

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) Print(col int) string { return "" }

// MetaCommand is a compiler directive embedded in a comment, such as
// $INCLUDE or $STATIC. A nil *MetaCommand prints as the empty string.
type MetaCommand struct {
	Keyword       string
	Argument      Node
	ArgumentColon bool
}

func (m *MetaCommand) Print(col int) string {
	if m == nil {
		return ""
	}
	if m.Argument == nil {
		return m.Keyword
	}
	sep := " "
	if m.ArgumentColon {
		sep = ": "
	}
	return m.Keyword + sep + m.Argument.Print(col)
}

// RemStatement is a REM comment, with an optional embedded metacommand.
type RemStatement struct {
	Text []byte
	Meta *MetaCommand
}

func (r *RemStatement) statementNode() {}

func (r *RemStatement) Print(col int) string {
	return "REM" + cp437(r.Text) + printOpt(r.Meta, col)
}

// BuiltinStatement is a keyword statement from the builtin table. Trailing
// elided arguments are not printed.
type BuiltinStatement struct {
	Name string
	Args []Expression
}

func (b *BuiltinStatement) statementNode() {}

func (b *BuiltinStatement) Print(col int) string {
	parts := make([]string, len(b.Args))
	for i, arg := range b.Args {
		parts[i] = printOpt(arg, col)
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return b.Name
	}
	return b.Name + " " + strings.Join(parts, ", ")
}

// CallStatement invokes a SUB, explicitly (CALL name(args)) or implicitly
// (name args).
type CallStatement struct {
	Name     *Identifier
	Args     []Expression
	Explicit bool
}

func (c *CallStatement) statementNode() {}

func (c *CallStatement) Print(col int) string {
	if c.Explicit {
		text := "CALL " + c.Name.Print(col)
		if len(c.Args) > 0 {
			text += "(" + printList(c.Args, col) + ")"
		}
		return text
	}
	text := c.Name.Print(col)
	if len(c.Args) > 0 {
		text += " " + printList(c.Args, col)
	}
	return text
}

// CallsStatement is the CALLS far-call form.
type CallsStatement struct {
	Name *Identifier
	Args []Expression
}

func (c *CallsStatement) statementNode() {}

func (c *CallsStatement) Print(col int) string {
	text := "CALLS " + c.Name.Print(col)
	if len(c.Args) > 0 {
		text += "(" + printList(c.Args, col) + ")"
	}
	return text
}

// AssignmentStatement assigns Value to Target, optionally spelled with a
// LET, LSET or RSET keyword. A pending LET placeholder has nil Target and
// Value until the real assignment merges into it.
type AssignmentStatement struct {
	Target  Expression
	Value   Expression
	Keyword string
}

func (a *AssignmentStatement) statementNode() {}

func (a *AssignmentStatement) Print(col int) string {
	text := ""
	if a.Keyword != "" {
		text = a.Keyword + " "
	}
	return text + a.Target.Print(col) + " = " + a.Value.Print(col)
}

// MethodSubCall is a VBDOS method call in statement position.
type MethodSubCall struct {
	Target Expression
	Name   string
	Args   []Expression
}

func (m *MethodSubCall) statementNode() {}

func (m *MethodSubCall) Print(col int) string {
	text := m.Target.Print(col) + "." + m.Name
	if len(m.Args) > 0 {
		text += " " + printList(m.Args, col)
	}
	return text
}

// FieldAssociation is one "width AS var" pair of a FIELD statement.
type FieldAssociation struct {
	Width Expression
	Var   Expression
}

func (f *FieldAssociation) Print(col int) string {
	return f.Width.Print(col) + " AS " + f.Var.Print(col)
}

// FieldStatement maps record buffer ranges onto string variables.
type FieldStatement struct {
	FileNumber   Expression
	Associations []*FieldAssociation
}

func (f *FieldStatement) statementNode() {}

func (f *FieldStatement) Print(col int) string {
	parts := make([]string, len(f.Associations))
	for i, a := range f.Associations {
		parts[i] = a.Print(col)
	}
	return "FIELD " + f.FileNumber.Print(col) + ", " + strings.Join(parts, ", ")
}

// NameStatement renames a file: NAME old AS new.
type NameStatement struct {
	OldName Expression
	NewName Expression
}

func (n *NameStatement) statementNode() {}

func (n *NameStatement) Print(col int) string {
	return "NAME " + n.OldName.Print(col) + " AS " + n.NewName.Print(col)
}

// InputStatement covers INPUT, INPUT # and LINE INPUT with their prompt
// specification options.
type InputStatement struct {
	Kind             string
	Specification    Expression
	StartsWithSemi   bool
	FollowsWithComma bool
	Arguments        []Expression
}

func (s *InputStatement) statementNode() {}

func (s *InputStatement) Print(col int) string {
	text := s.Kind
	if s.StartsWithSemi {
		text += " ;"
	}
	if s.Specification != nil {
		text += " " + s.Specification.Print(col)
		if s.FollowsWithComma {
			text += ","
		} else {
			text += ";"
		}
	}
	return text + " " + printList(s.Arguments, col)
}

// UsingClause is the USING format part of a PRINT statement.
type UsingClause struct {
	Value Expression
}

func (u *UsingClause) Print(col int) string { return "USING " + u.Value.Print(col) + ";" }

// PrintItem is one printed value with its trailing separator.
type PrintItem struct {
	Value     Expression
	Separator byte
}

func (p *PrintItem) Print(col int) string {
	return printOpt(p.Value, col) + string(p.Separator)
}

// PrintControl is a SPC(n) or TAB(n) positioning item.
type PrintControl struct {
	Mode  string
	Value Expression
}

func (p *PrintControl) Print(col int) string {
	return p.Mode + "(" + p.Value.Print(col) + ");"
}

// PrintStatement accretes the items of a PRINT, LPRINT or WRITE statement.
// Target carries the object of a VBDOS object.PRINT method call.
type PrintStatement struct {
	Kind       string
	Target     Expression
	FileNumber Expression
	Items      []Node
}

// NewPrintStatement returns an empty statement of the given kind.
func NewPrintStatement(kind string) *PrintStatement {
	return &PrintStatement{Kind: kind}
}

func (p *PrintStatement) statementNode() {}

// AddItem appends a print item, control or USING clause.
func (p *PrintStatement) AddItem(item Node) { p.Items = append(p.Items, item) }

// SetFileNumber records the #n output target.
func (p *PrintStatement) SetFileNumber(fn Expression) { p.FileNumber = fn }

func (p *PrintStatement) Print(col int) string {
	var text string
	if p.Target != nil {
		text = p.Target.Print(col) + "." + p.Kind
	} else {
		text = p.Kind
	}
	if len(p.Items) == 0 {
		return text
	}
	text += " "
	if p.FileNumber != nil {
		text += p.FileNumber.Print(col) + ", "
	}
	var parts []string
	for i, item := range p.Items {
		if i > 0 {
			if _, wasControl := p.Items[i-1].(*PrintControl); wasControl {
				if pi, ok := item.(*PrintItem); ok && pi.Value == nil {
					continue
				}
			}
		}
		parts = append(parts, item.Print(col))
	}
	return text + strings.Join(parts, " ")
}

// OpenStatement is the OPEN ... FOR ... AS form.
type OpenStatement struct {
	Filename   Expression
	FileNumber Expression
	Mode       string
	Access     string
	Lock       string
	Length     Expression
}

func (o *OpenStatement) statementNode() {}

func (o *OpenStatement) Print(col int) string {
	text := "OPEN " + o.Filename.Print(col) + " FOR " + o.Mode
	if o.Access != "" {
		text += " ACCESS " + o.Access
	}
	if o.Lock == "SHARED" {
		text += " SHARED"
	} else if o.Lock != "" {
		text += " LOCK " + o.Lock
	}
	text += " AS " + o.FileNumber.Print(col)
	if o.Length != nil {
		text += " LEN = " + o.Length.Print(col)
	}
	return text
}

// OpenIsamStatement is the QB70+ OPEN ... FOR ISAM form.
type OpenIsamStatement struct {
	Filename   Expression
	TypeName   *Identifier
	TableName  Expression
	FileNumber Expression
}

func (o *OpenIsamStatement) statementNode() {}

func (o *OpenIsamStatement) Print(col int) string {
	return "OPEN " + o.Filename.Print(col) + " FOR ISAM " + o.TypeName.Print(col) +
		" " + o.TableName.Print(col) + " AS " + o.FileNumber.Print(col)
}

// EraseStatement releases arrays.
type EraseStatement struct {
	Arguments []Expression
}

func (e *EraseStatement) statementNode() {}

func (e *EraseStatement) Print(col int) string {
	return "ERASE " + printList(e.Arguments, col)
}

// ReadStatement reads DATA values into variables.
type ReadStatement struct {
	Variables []Expression
}

func (r *ReadStatement) statementNode() {}

func (r *ReadStatement) Print(col int) string {
	return "READ " + printList(r.Variables, col)
}

// EventStatement switches event trapping: event ON/OFF/STOP. A nil event is
// the unnamed QB70+ EVENT.
type EventStatement struct {
	Event Expression
	State string
}

func (e *EventStatement) statementNode() {}

func (e *EventStatement) Print(col int) string {
	if e.Event == nil {
		return "EVENT " + e.State
	}
	return e.Event.Print(col) + " " + e.State
}

// ErrorInLine preserves an undecodable prefix of a line, followed by the
// remainder that did decode.
type ErrorInLine struct {
	Text []byte
	Rest Statement
}

func (e *ErrorInLine) statementNode() {}

func (e *ErrorInLine) Print(col int) string {
	return cp437(e.Text) + printOpt(e.Rest, col)
}

// Comment is a trailing ' comment with its target column and an optional
// embedded metacommand.
type Comment struct {
	Text   []byte
	Column int
	Meta   *MetaCommand
}

func (c *Comment) Print(col int) string {
	return "'" + cp437(c.Text) + printOpt(c.Meta, col)
}
