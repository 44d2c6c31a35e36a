package ast

import "strings"

// trimTrailing drops trailing empty entries and joins the rest.
func trimTrailing(parts []string) string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ", ")
}

// CircleStatement draws a circle or arc. Color, Start, End and Aspect are
// optional positional arguments.
type CircleStatement struct {
	Center Expression
	Radius Expression
	Color  Expression
	Start  Expression
	End    Expression
	Aspect Expression
}

func (c *CircleStatement) statementNode() {}

func (c *CircleStatement) Print(col int) string {
	line := "CIRCLE " + c.Center.Print(col) + ", " + c.Radius.Print(col)
	args := trimTrailing([]string{
		printOpt(c.Color, col), printOpt(c.Start, col),
		printOpt(c.End, col), printOpt(c.Aspect, col),
	})
	if args != "" {
		line += ", " + args
	}
	return line
}

// LockStatement is LOCK or UNLOCK over an optional record range.
type LockStatement struct {
	File   Expression
	Start  Expression
	End    Expression
	Unlock bool
}

func (l *LockStatement) statementNode() {}

func (l *LockStatement) Print(col int) string {
	text := "LOCK "
	if l.Unlock {
		text = "UNLOCK "
	}
	text += l.File.Print(col)
	if l.Start != nil || l.End != nil {
		text += ", "
		if l.Start != nil {
			text += l.Start.Print(col)
			if l.End != nil {
				text += " "
			}
		}
		if l.End != nil {
			text += "TO " + l.End.Print(col)
		}
	}
	return text
}

// GetStatement is the graphical GET; the I/O GET is a builtin.
type GetStatement struct {
	From      Expression
	To        Expression
	ArraySpec Expression
}

func (g *GetStatement) statementNode() {}

func (g *GetStatement) Print(col int) string {
	return "GET " + g.From.Print(col) + "-" + g.To.Print(col) + ", " + g.ArraySpec.Print(col)
}

// PutStatement is the graphical PUT; the I/O PUT is a builtin.
type PutStatement struct {
	From      Expression
	ArraySpec Expression
	Method    string
}

func (p *PutStatement) statementNode() {}

func (p *PutStatement) Print(col int) string {
	text := "PUT " + p.From.Print(col) + ", " + p.ArraySpec.Print(col)
	if p.Method != "" {
		text += ", " + p.Method
	}
	return text
}

// LineStatement draws a line or box; Mode is "", "B" or "BF".
type LineStatement struct {
	From  Expression
	To    Expression
	Color Expression
	Mode  string
	Style Expression
}

func (l *LineStatement) statementNode() {}

func (l *LineStatement) Print(col int) string {
	line := "LINE " + printOpt(l.From, col) + "-" + l.To.Print(col)
	args := trimTrailing([]string{printOpt(l.Color, col), l.Mode, printOpt(l.Style, col)})
	if args != "" {
		line += ", " + args
	}
	return line
}

// KeyStatement switches the function-key display: KEY ON/OFF/LIST.
type KeyStatement struct {
	Mode string
}

func (k *KeyStatement) statementNode()       {}
func (k *KeyStatement) Print(col int) string { return "KEY " + k.Mode }

// PaintStatement flood-fills from a point.
type PaintStatement struct {
	Point      Expression
	Paint      Expression
	Border     Expression
	Background Expression
}

func (p *PaintStatement) statementNode() {}

func (p *PaintStatement) Print(col int) string {
	line := "PAINT " + p.Point.Print(col)
	args := trimTrailing([]string{
		printOpt(p.Paint, col), printOpt(p.Border, col), printOpt(p.Background, col),
	})
	if args != "" {
		line += ", " + args
	}
	return line
}

// PSetStatement sets a pixel; Keyword selects PSET or PRESET.
type PSetStatement struct {
	Coordinates Expression
	Color       Expression
	Keyword     string
}

func (p *PSetStatement) statementNode() {}

func (p *PSetStatement) Print(col int) string {
	text := p.Keyword + " " + p.Coordinates.Print(col)
	if p.Color != nil {
		text += ", " + p.Color.Print(col)
	}
	return text
}

// ViewStatement sets the graphics viewport (VIEW or VIEW SCREEN).
type ViewStatement struct {
	From    [2]Expression
	To      [2]Expression
	Color   Expression
	Border  Expression
	Keyword string
}

func (v *ViewStatement) statementNode() {}

func (v *ViewStatement) Print(col int) string {
	args := []string{
		"(" + v.From[0].Print(col) + ", " + v.From[1].Print(col) + ")-(" +
			v.To[0].Print(col) + ", " + v.To[1].Print(col) + ")",
		printOpt(v.Color, col),
		printOpt(v.Border, col),
	}
	return v.Keyword + " " + trimTrailing(args)
}

// ViewPrintStatement sets the text viewport.
type ViewPrintStatement struct {
	From Expression
	To   Expression
}

func (v *ViewPrintStatement) statementNode() {}

func (v *ViewPrintStatement) Print(col int) string {
	if v.From == nil {
		return "VIEW PRINT"
	}
	return "VIEW PRINT " + v.From.Print(col) + " TO " + v.To.Print(col)
}

// WindowStatement sets logical coordinates (WINDOW or WINDOW SCREEN).
type WindowStatement struct {
	From    [2]Expression
	To      [2]Expression
	Keyword string
}

func (w *WindowStatement) statementNode() {}

func (w *WindowStatement) Print(col int) string {
	return w.Keyword + " (" + w.From[0].Print(col) + ", " + w.From[1].Print(col) + ")-(" +
		w.To[0].Print(col) + ", " + w.To[1].Print(col) + ")"
}
