package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// expandComment undoes the run-length encoding used inside comment and REM
// text: the byte sequence 0x0D N X stands for X repeated N times. DATA text
// is stored as it comes.
func expandComment(text []byte) []byte {
	var out []byte
	for i := 0; i < len(text); {
		if i+2 < len(text) && text[i] == 0x0D {
			count := int(text[i+1])
			for j := 0; j < count; j++ {
				out = append(out, text[i+2])
			}
			i += 3
		} else {
			out = append(out, text[i])
			i++
		}
	}
	return out
}

// suffixed applies the opcode parameter as a type-suffix sigil.
func suffixed(d Dialect, name *ast.Identifier, parameter uint16) *ast.Identifier {
	if parameter != 0 {
		name.Suffix = d.BuiltinType(int(parameter))
	}
	return name
}

// readArguments decodes the formal-parameter list shared by the DECLARE,
// SUB and FUNCTION headers. DECLARE arguments always carry a type; SUB and
// FUNCTION arguments only do when the mode word says so, though the type
// word is consumed either way.
func readArguments(d Dialect, c *Context, r *binio.Reader, argcount int, alwaysTyped bool) []*ast.ArgumentDeclaration {
	args := make([]*ast.ArgumentDeclaration, 0, argcount)
	for i := 0; i < argcount; i++ {
		argName := c.ReadVar(r)
		mode := r.U16()
		var argType ast.Type
		if alwaysTyped || mode&0x2000 != 0 {
			argType = resolveType(d, c, r, int(r.U16()))
		} else {
			r.U16()
		}
		if d.VersionStamp() >= StampQB71 {
			r.U16()
		}
		args = append(args, &ast.ArgumentDeclaration{
			Name:   argName,
			AsType: argType,
			Array:  mode&0x0400 != 0,
		})
	}
	return args
}

// execOpcode dispatches one opcode in the shared (QB45+) numbering. The
// QB40 dialect remaps its own numbers onto this table before calling in;
// actual is the on-disk opcode number used in diagnostics.
func execOpcode(d Dialect, c *Context, r *binio.Reader, opcode, parameter, actual uint16) {
	if opcode > d.MaxOpcode() {
		decodeErrorf("invalid opcode 0x%04X", actual)
	}
	switch opcode {
	case 0x0000:
		c.Clear()
		c.BeginLine(nil, int(parameter))
	case 0x0004:
		c.Clear()
		r.U16()
		name := c.ReadVar(r)
		c.BeginLine(name, 0)
	case 0x0005:
		c.Clear()
		r.U16()
		name := c.ReadVar(r)
		indent := int(r.U16())
		c.BeginLine(name, indent)
	case 0x0006:
		c.NewStatement(ast.NoColumn)
	case 0x0007:
		c.NewStatement(int(r.U16()))
	case 0x0009:
		r.U16() // 0x0008
	case 0x000A:
		text := r.Str()
		c.PutStatement(&ast.ErrorInLine{Text: text[2:]})
	case 0x000B:
		c.Push(suffixed(d, c.ReadVar(r), parameter))
	case 0x000C:
		name := suffixed(d, c.ReadVar(r), parameter)
		source := c.Pop()
		c.PutAssignmentStatement(&ast.AssignmentStatement{Target: name, Value: source})
	case 0x000D:
		name := suffixed(d, c.ReadVar(r), parameter)
		must(c.PutDeclaration().SetName(name, nil))
	case 0x000E:
		argcount := r.U16()
		name := suffixed(d, c.ReadVar(r), parameter)
		if argcount&0x8000 == 0 {
			dims := c.PopN(int(argcount))
			c.Push(&ast.ArrayElement{Name: name, Args: dims})
		} else {
			c.Push(&ast.ArrayElement{Name: name, ImplicitDims: true})
		}
	case 0x000F:
		argcount := int(r.U16())
		name := suffixed(d, c.ReadVar(r), parameter)
		value := c.Pop()
		dims := c.PopN(argcount)
		c.PutStatement(&ast.AssignmentStatement{
			Target: &ast.ArrayElement{Name: name, Args: dims},
			Value:  value,
		})
	case 0x0010:
		if d.VersionStamp() == StampQB40 && qb40TakesArrayElement(c) {
			// QB40 reuses this opcode for plain array elements
			argcount := r.U16()
			name := suffixed(d, c.ReadVar(r), parameter)
			if argcount&0x8000 == 0 {
				dims := c.PopN(int(argcount))
				c.Push(&ast.ArrayElement{Name: name, Args: dims})
			} else {
				c.Push(&ast.ArrayElement{Name: name, ImplicitDims: true})
			}
		} else {
			argcount := int(r.U16())
			name := suffixed(d, c.ReadVar(r), parameter)
			args := c.PopN(argcount)
			must(c.PutDeclaration().SetName(name, args))
		}
	case 0x0011:
		name := suffixed(d, c.ReadVar(r), parameter)
		arg := c.Pop()
		c.Push(&ast.FieldSelection{Arg: arg, Field: name})
	case 0x0012:
		name := suffixed(d, c.ReadVar(r), parameter)
		variable := c.Pop()
		source := c.Pop()
		c.PutStatement(&ast.AssignmentStatement{
			Target: &ast.FieldSelection{Arg: variable, Field: name},
			Value:  source,
		})
	case 0x0013:
		argcount := int(r.U16())
		name := suffixed(d, c.ReadVar(r), parameter)
		arg := c.Pop()
		dims := c.PopN(argcount)
		c.Push(&ast.FieldSelection{Arg: arg, Field: &ast.ArrayElement{Name: name, Args: dims}})
	case 0x0014:
		argcount := int(r.U16())
		name := suffixed(d, c.ReadVar(r), parameter)
		variable := c.Pop()
		dims := c.PopN(argcount)
		source := c.Pop()
		c.PutStatement(&ast.AssignmentStatement{
			Target: &ast.FieldSelection{Arg: variable, Field: &ast.ArrayElement{Name: name, Args: dims}},
			Value:  source,
		})
	case 0x0015:
		typeOffset := int(r.U16())
		column := int(r.U16())
		decl := c.PutDeclaration()
		must(decl.SetType(resolveType(d, c, r, typeOffset)))
		decl.AsColumn = column
	case 0x0016:
		typeIndex := int(r.U16())
		column := int(r.U16())
		decl := c.PutDeclaration()
		must(decl.SetType(d.BuiltinType(typeIndex)))
		decl.AsColumn = column
	case 0x0017:
		// line contains variables with '.' in them
	case 0x0018:
		// default array base
		c.Push(nil)
	case 0x0019:
		name := c.ReadVar(r)
		asType := readFieldType(d, c, r)
		column := int(r.U16())
		c.PutStatement(&ast.TypeFieldDeclaration{Name: name, AsType: asType, AsColumn: column})
	case 0x001A:
		must(putStatementKind(c, newVarDecl).SetMode("SHARED"))
	case 0x001B:
		r.U16()
		data := r.U32()
		asType := d.BuiltinType(int(data & 0x3F))
		var letters [26]bool
		for i := 0; i < 26; i++ {
			if data&(1<<(31-i)) != 0 {
				letters[i] = true
			}
		}
		c.PutStatement(&ast.DefTypeDeclaration{AsType: asType, Letters: letters})
	case 0x001C, 0x01A8:
		element, ok := c.Pop().(*ast.ArrayElement)
		if !ok {
			decodeErrorf("REDIM without an array element")
		}
		must(c.PutDeclaration().SetName(element.Name, element.Args))
		must(putStatementKind(c, newVarDecl).SetKind("REDIM"))
		if opcode == 0x01A8 {
			must(putStatementKind(c, newVarDecl).SetMode("PRESERVE"))
		}
	case 0x001D:
		r.U16()
		c.PutStatement(&ast.EndDeclaration{Kind: "TYPE"})
	case 0x001E:
		r.U16()
		must(putStatementKind(c, newVarDecl).SetKind("SHARED"))
	case 0x001F:
		r.U16()
		must(putStatementKind(c, newVarDecl).SetKind("STATIC"))
	case 0x0020:
		r.U16()
		name := c.ReadVar(r)
		c.PutStatement(&ast.TypeDeclaration{Name: name})
	case 0x0021:
		r.U16()
		c.PutMetaCommand(&ast.MetaCommand{Keyword: "$STATIC", ArgumentColon: true})
	case 0x0022:
		r.U16()
		c.PutMetaCommand(&ast.MetaCommand{Keyword: "$DYNAMIC", ArgumentColon: true})
	case 0x0023:
		c.PutStatement(&ast.ConstDeclaration{})
	case 0x0025:
		c.Push(&ast.ByValue{Parameter: c.Pop()})
	case 0x0026:
		body := c.Pop()
		c.CloseDefFn(body)
		r.U16()
		r.U16()
	case 0x0027:
		c.Push(&ast.EventSpecification{Name: "COM", Value: c.Pop()})
	case 0x0028:
		arg := c.Pop()
		target := c.ReadVar(r)
		c.PutStatement(&ast.OnEventGosubStatement{Event: arg, Target: target})
	case 0x0029:
		c.Push(&ast.EventSpecification{Name: "KEY", Value: c.Pop()})
	case 0x002A:
		c.PutStatement(&ast.EventStatement{Event: c.Pop(), State: "OFF"})
	case 0x002B:
		c.PutStatement(&ast.EventStatement{Event: c.Pop(), State: "ON"})
	case 0x002C:
		c.PutStatement(&ast.EventStatement{Event: c.Pop(), State: "STOP"})
	case 0x002D:
		c.Push(&ast.EventSpecification{Name: "PEN"})
	case 0x002E:
		c.Push(&ast.EventSpecification{Name: "PLAY"})
	case 0x002F:
		c.Push(&ast.EventSpecification{Name: "PLAY", Value: c.Pop()})
	case 0x0030:
		c.Push(&ast.EventSpecification{Name: "SIGNAL", Value: c.Pop()})
	case 0x0031:
		c.Push(&ast.EventSpecification{Name: "STRIG", Value: c.Pop()})
	case 0x0032:
		c.Push(&ast.EventSpecification{Name: "TIMER"})
	case 0x0033:
		c.Push(&ast.EventSpecification{Name: "TIMER", Value: c.Pop()})
	case 0x0036:
		c.Push(&ast.AsSegmented{Parameter: c.Pop()})
	case 0x0037:
		argcount := int(r.U16())
		name := c.ReadVar(r)
		args := c.PopN(argcount)
		c.PutStatement(&ast.CallStatement{Name: name, Args: args, Explicit: true})
	case 0x0038:
		argcount := int(r.U16())
		name := c.ReadVar(r)
		args := c.PopN(argcount)
		c.PutStatement(&ast.CallStatement{Name: name, Args: args})
	case 0x0039:
		argcount := int(r.U16())
		name := c.ReadVar(r)
		args := c.PopN(argcount)
		c.PutStatement(&ast.CallsStatement{Name: name, Args: args})
	case 0x003A:
		c.PutStatement(&ast.CaseElseStatement{})
	case 0x003B:
		putStatementKind(c, newCase).AddOption(c.Pop())
	case 0x003C:
		args := c.PopN(2)
		putStatementKind(c, newCase).AddOption(&ast.CaseRangeOption{Lower: args[0], Upper: args[1]})
	case 0x003D:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: "=", Value: c.Pop()})
	case 0x003E:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: "<", Value: c.Pop()})
	case 0x003F:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: ">", Value: c.Pop()})
	case 0x0040:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: "<=", Value: c.Pop()})
	case 0x0041:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: ">=", Value: c.Pop()})
	case 0x0042:
		putStatementKind(c, newCase).AddOption(&ast.CaseIsOption{Operator: "<>", Value: c.Pop()})
	case 0x0044:
		r.U16()
		name := c.ReadVar(r)
		flags := r.U16()
		var kind string
		switch flags & 0x0300 {
		case 0x0100:
			kind = "SUB"
		case 0x0200:
			kind = "FUNCTION"
		default:
			decodeErrorf("invalid DECLARE flags 0x%04X", flags)
		}
		if flags&0x0080 != 0 {
			name.Suffix = d.BuiltinType(int(flags & 7))
		}
		argcount := r.U16()
		aliasLength := int(flags>>10) & 0x1F
		var args []*ast.ArgumentDeclaration
		hasArgs := argcount != 0xFFFF
		if hasArgs {
			args = readArguments(d, c, r, int(argcount), true)
		}
		var alias []byte
		if aliasLength != 0 {
			alias = r.Bytes(aliasLength)
			if aliasLength&1 != 0 {
				r.Bytes(1)
			}
		}
		c.PutStatement(&ast.DeclareStatement{
			Kind:       kind,
			Name:       name,
			Args:       args,
			HasArgList: hasArgs,
			CDecl:      flags&0x8000 != 0,
			Alias:      alias,
		})
	case 0x0045:
		r.U16()
		r.U16()
		name := c.ReadVar(r)
		flags := r.U16()
		if flags&0x0080 != 0 {
			name.Suffix = d.BuiltinType(int(flags & 0xF))
		}
		argcount := int(r.U16())
		args := make([]*ast.ArgumentDeclaration, 0, argcount)
		for i := 0; i < argcount; i++ {
			argName := c.ReadVar(r)
			mode := r.U16()
			asType := int(r.U16())
			if d.VersionStamp() >= StampQB71 {
				r.U16()
			}
			if mode&0x2000 != 0 {
				args = append(args, &ast.ArgumentDeclaration{Name: argName, AsType: d.BuiltinType(asType)})
			} else {
				if mode&0x0200 != 0 {
					argName.Suffix = d.BuiltinType(asType)
				}
				args = append(args, &ast.ArgumentDeclaration{Name: argName})
			}
		}
		c.BeginDefFn(&ast.DefFnDeclaration{
			Name:      name,
			Arguments: args,
			VBDOS:     d.VersionStamp() == StampVBDOS,
		})
	case 0x0046:
		c.PutStatement(&ast.DoStatement{})
	case 0x0047:
		c.PutStatement(&ast.DoStatement{Keyword: "UNTIL", Condition: c.Pop()})
		r.U16()
	case 0x0048:
		c.PutStatement(&ast.DoStatement{Keyword: "WHILE", Condition: c.Pop()})
		r.U16()
	case 0x0049:
		c.PutStatement(ast.NewElseStatement(nil))
		r.U16()
	case 0x004C:
		c.Pop()
		r.U16()
		target := c.ReadVar(r)
		c.PutStatement(ast.NewElseStatement(&ast.GotoStatement{Target: target, Implicit: true}))
	case 0x004D:
		c.PutStatement(&ast.ElseIfStatement{Condition: c.Pop()})
		r.U16()
	case 0x004F:
		c.EndDefFnBlock()
		r.U16()
		r.U16()
	case 0x0050:
		c.PutStatement(&ast.EndDeclaration{Kind: "IF"})
	case 0x0051:
		kind := c.procedure().Kind
		c.PutStatement(&ast.EndDeclaration{Kind: kind})
	case 0x0052:
		c.PutStatement(&ast.EndDeclaration{Kind: "SELECT"})
	case 0x0053:
		c.PutStatement(&ast.ExitStatement{Kind: "DO"})
		r.U16()
	case 0x0054:
		c.PutStatement(&ast.ExitStatement{Kind: "FOR"})
		r.U16()
	case 0x0055:
		c.PutStatement(&ast.ExitStatement{Kind: c.ExitKind()})
		r.U16()
	case 0x0056:
		args := c.PopN(3)
		c.PutStatement(&ast.ForStatement{Var: args[0], Begin: args[1], End: args[2]})
		r.U16()
		r.U16()
	case 0x0057:
		args := c.PopN(4)
		c.PutStatement(&ast.ForStatement{Var: args[0], Begin: args[1], End: args[2], Step: args[3]})
		r.U16()
		r.U16()
	case 0x0058, 0x0076:
		r.U16()
		name := c.ReadVar(r)
		flags := r.U16()
		kind := "SUB"
		if opcode == 0x0058 {
			kind = "FUNCTION"
			if flags&0x0080 != 0 {
				name.Suffix = d.BuiltinType(int(flags & 7))
			}
		}
		argcount := int(r.U16())
		args := readArguments(d, c, r, argcount, false)
		proc := c.procedure()
		proc.Kind = kind
		c.PutStatement(&ast.ProcedureStatement{
			Kind:   kind,
			Name:   name,
			Args:   args,
			Static: proc.Static,
			VBDOS:  d.VersionStamp() >= StampVBDOS,
		})
	case 0x0059:
		c.PutStatement(&ast.GosubStatement{Target: c.ReadVar(r)})
	case 0x005B:
		c.PutStatement(&ast.GotoStatement{Target: c.ReadVar(r)})
	case 0x005D:
		c.PutStatement(ast.NewLineIfStatement(c.Pop(), nil))
		r.U16()
	case 0x005E:
		arg := c.Pop()
		target := c.ReadVar(r)
		c.PutStatement(ast.NewLineIfStatement(arg, &ast.GotoStatement{Target: target, Implicit: true}))
	case 0x0061:
		c.PutStatement(&ast.BlockIfStatement{Condition: c.Pop()})
		r.U16()
	case 0x0062:
		c.PutStatement(&ast.LoopStatement{})
		r.U16()
	case 0x0063:
		c.PutStatement(&ast.LoopStatement{Keyword: "UNTIL", Condition: c.Pop()})
		r.U16()
	case 0x0064:
		c.PutStatement(&ast.LoopStatement{Keyword: "WHILE", Condition: c.Pop()})
		r.U16()
	case 0x0065:
		c.PutStatement(&ast.NextStatement{})
		r.U16()
		r.U16()
	case 0x0066:
		arg := c.Pop()
		next := putStatementKind(c, func() *ast.NextStatement {
			return &ast.NextStatement{Variables: []ast.Expression{}}
		})
		next.Variables = append(next.Variables, arg)
		r.U16()
		r.U16()
	case 0x0067, 0x0199:
		var target ast.Expression
		if d.VersionStamp() >= StampQB70 {
			switch offset := r.U16(); offset {
			case 0xFFFF:
				target = &ast.DecimalInteger{Value: 0}
			case 0xFFFE:
				target = nil // RESUME NEXT
			default:
				target = c.file.ReadVar(r, offset)
			}
		} else {
			target = c.ReadVar(r)
		}
		c.PutStatement(&ast.OnErrorGotoStatement{Target: target, Local: opcode == 0x0199})
	case 0x0068, 0x0069:
		arg := c.Pop()
		targetCount := int(r.U16())
		var targets []ast.Expression
		for i := 0; i < targetCount; i += 2 {
			targets = append(targets, c.ReadVar(r))
		}
		if opcode == 0x0068 {
			c.PutStatement(&ast.OnGosubStatement{Condition: arg, Targets: targets})
		} else {
			c.PutStatement(&ast.OnGotoStatement{Condition: arg, Targets: targets})
		}
	case 0x006A:
		c.PutStatement(&ast.RestoreStatement{})
	case 0x006B:
		c.PutStatement(&ast.RestoreStatement{Target: c.ReadVar(r)})
	case 0x006C:
		c.PutStatement(&ast.ResumeStatement{})
	case 0x006D:
		var target ast.Expression
		if offset := r.U16(); offset != 0xFFFF {
			target = c.file.ReadVar(r, offset)
		} else {
			target = &ast.DecimalInteger{Value: 0}
		}
		c.PutStatement(&ast.ResumeStatement{Target: target})
	case 0x006E:
		c.PutStatement(&ast.ResumeStatement{Next: true})
	case 0x006F:
		c.PutStatement(&ast.ReturnStatement{})
	case 0x0070:
		c.PutStatement(&ast.ReturnStatement{Target: c.ReadVar(r)})
	case 0x0071:
		c.PutStatement(&ast.RunStatement{Target: c.Pop()})
	case 0x0072:
		c.PutStatement(&ast.RunStatement{Target: c.ReadVar(r)})
	case 0x0073:
		c.PutStatement(&ast.RunStatement{})
	case 0x0074:
		c.PutStatement(&ast.SelectCaseStatement{Test: c.Pop()})
		r.U16()
	case 0x007D:
		putStatementKind(c, newPrint).SetFileNumber(c.Pop())
	case 0x007E:
		c.SetArgument("aspect", c.Pop())
	case 0x007F:
		c.SetArgument("end", c.Pop())
	case 0x0080:
		c.SetArgument("start", c.Pop())
	case 0x0081, 0x0082:
		args := c.PopN(2)
		c.SetArgument("from", &ast.CoordinatePair{X: args[0], Y: args[1], Step: opcode == 0x0082})
	case 0x0083, 0x0084:
		args := c.PopN(2)
		c.SetArgument("to", &ast.CoordinatePair{X: args[0], Y: args[1], Step: opcode == 0x0084})
	case 0x0085:
		c.PutStatement(&ast.FieldStatement{FileNumber: c.Pop()})
	case 0x0086:
		args := c.PopN(2)
		field := getStatement[*ast.FieldStatement](c)
		field.Associations = append(field.Associations, &ast.FieldAssociation{Width: args[0], Var: args[1]})
	case 0x0087:
		c.PutStatement(&ast.InputStatement{Arguments: []ast.Expression{c.Pop()}})
	case 0x0088:
		getStatement[*ast.InputStatement](c).Kind = "INPUT"
	case 0x0089:
		argcount := int(r.U16())
		flags := r.U16()
		var spec ast.Expression
		if flags&0x0004 != 0 {
			spec = c.Pop()
		}
		if argcount > 2 {
			r.U16()
		}
		c.PutStatement(&ast.InputStatement{
			Specification:    spec,
			StartsWithSemi:   flags&0x0002 != 0,
			FollowsWithComma: flags&0x0001 != 0,
		})
	case 0x008A:
		c.Push(&ast.FileNumber{Value: c.Pop()})
	case 0x008F:
		putStatementKind(c, newPrint).AddItem(&ast.PrintControl{Mode: "SPC", Value: c.Pop()})
	case 0x0090:
		putStatementKind(c, newPrint).AddItem(&ast.PrintControl{Mode: "TAB", Value: c.Pop()})
	case 0x0091:
		putStatementKind(c, newPrint).AddItem(&ast.PrintItem{Separator: ','})
	case 0x0092:
		putStatementKind(c, newPrint).AddItem(&ast.PrintItem{Separator: ';'})
	case 0x0093:
		// terminate a print statement that has no expression
		putStatementKind(c, newPrint)
	case 0x0094:
		putStatementKind(c, newPrint).AddItem(&ast.PrintItem{Value: c.Pop(), Separator: ','})
	case 0x0095:
		putStatementKind(c, newPrint).AddItem(&ast.PrintItem{Value: c.Pop(), Separator: ';'})
	case 0x0096:
		putStatementKind(c, newPrint).AddItem(c.Pop())
	case 0x0097:
		text := r.Str()
		column := int(text[0]) | int(text[1])<<8
		c.AttachComment(expandComment(text[2:]), column)
	case 0x0099:
		text := r.Str()
		c.PutMetaCommand(&ast.MetaCommand{
			Keyword:       "$INCLUDE",
			Argument:      &ast.IncludeText{Text: text[:len(text)-1]},
			ArgumentColon: true,
		})
	case 0x009F, 0x00A0:
		center := c.GetArgument("from")
		if center == nil {
			decodeErrorf("CIRCLE without a center coordinate")
		}
		var color ast.Expression
		if opcode == 0x00A0 {
			color = c.Pop()
		}
		radius := c.Pop()
		c.PutStatement(&ast.CircleStatement{
			Center: center,
			Radius: radius,
			Color:  color,
			Start:  c.GetArgument("start"),
			End:    c.GetArgument("end"),
			Aspect: c.GetArgument("aspect"),
		})
	case 0x00A5:
		r.U16()
		var name *ast.Identifier
		if offset := r.U16(); offset != 0xFFFF {
			name = c.file.ReadVar(r, offset)
		}
		must(putStatementKind(c, newVarDecl).SetKind("COMMON"))
		putStatementKind(c, newVarDecl).CommonBlockName = name
	case 0x00A6:
		text := r.Str()
		c.PutStatement(&ast.DataDeclaration{Text: text[2 : len(text)-1]})
	case 0x00AC:
		if d.VersionStamp() < StampQB70 {
			argcount := int(r.U16())
			c.PutStatement(&ast.EraseStatement{Arguments: c.PopN(argcount)})
		} else {
			arg := c.Pop()
			erase := addStatement(c, func() *ast.EraseStatement { return &ast.EraseStatement{} })
			erase.Arguments = append(erase.Arguments, arg)
		}
	case 0x00B4:
		from := c.GetArgument("from")
		to := c.GetArgument("to")
		c.PutStatement(&ast.GetStatement{From: from, To: to, ArraySpec: c.Pop()})
	case 0x00B5:
		method := r.U16()
		from := c.GetArgument("from")
		arraySpec := c.Pop()
		name := ""
		if method != 0xFFFF {
			methods := []string{"OR", "AND", "PRESET", "PSET", "XOR"}
			if int(method) >= len(methods) {
				decodeErrorf("invalid PUT method %d", method)
			}
			name = methods[method]
		}
		c.PutStatement(&ast.PutStatement{From: from, ArraySpec: arraySpec, Method: name})
	case 0x00B6:
		arg := c.Pop()
		input := getStatement[*ast.InputStatement](c)
		input.Arguments = append(input.Arguments, arg)
	case 0x00B8:
		mode := r.U16()
		modes := []string{"OFF", "ON", "LIST"}
		if int(mode) >= len(modes) {
			decodeErrorf("invalid KEY mode %d", mode)
		}
		c.PutStatement(&ast.KeyStatement{Mode: modes[mode]})
	case 0x00BB, 0x00BC, 0x00BD, 0x00BE:
		mode := r.U16()
		modes := []string{"", "B", "BF"}
		if int(mode) >= len(modes) {
			decodeErrorf("invalid LINE mode %d", mode)
		}
		from := c.GetArgument("from")
		to := c.GetArgument("to")
		var style, color ast.Expression
		if opcode == 0x00BD || opcode == 0x00BE {
			style = c.Pop()
		}
		if opcode == 0x00BC || opcode == 0x00BE {
			color = c.Pop()
		}
		c.PutStatement(&ast.LineStatement{From: from, To: to, Color: color, Mode: modes[mode], Style: style})
	case 0x00BF:
		c.PutStatement(&ast.AssignmentStatement{Keyword: "LET"})
	case 0x00C0:
		flags := r.U16()
		arg := c.Pop()
		input := addStatement(c, func() *ast.InputStatement { return &ast.InputStatement{} })
		input.Arguments = append(input.Arguments, arg)
		input.Kind = "LINE INPUT"
		if flags&0x0002 != 0 {
			input.StartsWithSemi = true
		}
		if flags&0x0004 != 0 {
			input.Specification = c.Pop()
		}
	case 0x00C2, 0x00F2:
		flags := r.U16()
		var endArg ast.Expression
		if flags&0x8002 == 0x0002 {
			endArg = c.Pop()
		}
		var start ast.Expression
		if flags&0x0002 == 0x0002 {
			start = c.Pop()
			if flags&0x4000 == 0x4000 {
				start = nil // implicit 1
			}
		}
		file := c.Pop()
		c.PutStatement(&ast.LockStatement{File: file, Start: start, End: endArg, Unlock: opcode == 0x00F2})
	case 0x00C3:
		c.PutStatement(ast.NewPrintStatement("LPRINT"))
	case 0x00C4, 0x00E6:
		variable := c.Pop()
		source := c.Pop()
		keyword := "LSET"
		if opcode == 0x00E6 {
			keyword = "RSET"
		}
		c.PutAssignmentStatement(&ast.AssignmentStatement{Target: variable, Value: source, Keyword: keyword})
	case 0x00C8:
		args := c.PopN(2)
		c.PutAssignmentStatement(&ast.NameStatement{OldName: args[0], NewName: args[1]})
	case 0x00C9, 0x00CA:
		flags := r.U16()
		var length ast.Expression
		if opcode == 0x00CA {
			length = c.Pop()
		}
		args := c.PopN(2)
		filename, filenumber := args[0], args[1]

		var mode string
		switch {
		case flags&0x0001 != 0:
			mode = "INPUT"
		case flags&0x0002 != 0:
			mode = "OUTPUT"
		case flags&0x0004 != 0:
			mode = "RANDOM"
		case flags&0x0008 != 0:
			mode = "APPEND"
		case flags&0x0020 != 0:
			mode = "BINARY"
		}

		var access string
		switch flags & 0x0300 {
		case 0x0100:
			access = "READ"
		case 0x0200:
			access = "WRITE"
		case 0x0300:
			access = "READ WRITE"
		}

		var lock string
		switch flags & 0x3000 {
		case 0x1000:
			lock = "READ WRITE"
		case 0x2000:
			lock = "WRITE"
		case 0x3000:
			lock = "READ"
		default:
			if flags&0x4000 != 0 {
				lock = "SHARED"
			}
		}

		c.PutAssignmentStatement(&ast.OpenStatement{
			Filename:   filename,
			FileNumber: filenumber,
			Mode:       mode,
			Access:     access,
			Lock:       lock,
			Length:     length,
		})
	case 0x00D0, 0x00D1:
		point := c.GetArgument("from")
		n := 2
		if opcode == 0x00D1 {
			n = 3
		}
		args := ast.ReplaceMissing(c.PopN(n))
		paint := &ast.PaintStatement{Point: point}
		if len(args) > 0 {
			paint.Paint = args[0]
		}
		if len(args) > 1 {
			paint.Border = args[1]
		}
		if len(args) > 2 {
			paint.Background = args[2]
		}
		c.PutStatement(paint)
	case 0x00D8, 0x00D9, 0x00DA, 0x00DB:
		coordinates := c.GetArgument("from")
		var color ast.Expression
		if opcode == 0x00D9 || opcode == 0x00DB {
			color = c.Pop()
		}
		keyword := "PRESET"
		if opcode == 0x00DA || opcode == 0x00DB {
			keyword = "PSET"
		}
		c.PutStatement(&ast.PSetStatement{Coordinates: coordinates, Color: color, Keyword: keyword})
	case 0x00E2:
		arg := c.Pop()
		read := putStatementKind(c, func() *ast.ReadStatement { return &ast.ReadStatement{} })
		read.Variables = append(read.Variables, arg)
	case 0x00E3:
		text := expandComment(r.Str())
		c.PutStatement(&ast.RemStatement{Text: text})
	case 0x00F3, 0x00F7:
		args := c.PopN(6)
		rest := ast.ReplaceMissing(args[4:])
		keyword := "VIEW"
		if opcode == 0x00F7 {
			keyword = "VIEW SCREEN"
		}
		c.PutStatement(&ast.ViewStatement{
			From:    [2]ast.Expression{args[0], args[1]},
			To:      [2]ast.Expression{args[2], args[3]},
			Color:   rest[0],
			Border:  rest[1],
			Keyword: keyword,
		})
	case 0x00F5:
		c.PutStatement(&ast.ViewPrintStatement{})
	case 0x00F6:
		args := c.PopN(2)
		c.PutStatement(&ast.ViewPrintStatement{From: args[0], To: args[1]})
	case 0x00F8:
		args := ast.ReplaceMissing(c.PopN(2))
		c.PutStatement(&ast.BuiltinStatement{Name: "WIDTH", Args: args})
	case 0x00FB, 0x00FD:
		args := c.PopN(4)
		keyword := "WINDOW"
		if opcode == 0x00FD {
			keyword = "WINDOW SCREEN"
		}
		c.PutStatement(&ast.WindowStatement{
			From:    [2]ast.Expression{args[0], args[1]},
			To:      [2]ast.Expression{args[2], args[3]},
			Keyword: keyword,
		})
	case 0x00FE:
		c.PutStatement(ast.NewPrintStatement("WRITE"))
	case 0x00FF:
		putStatementKind(c, newPrint).AddItem(&ast.UsingClause{Value: c.Pop()})
	case 0x0100:
		c.pushBinary("+")
	case 0x0101:
		c.pushBinary("AND")
	case 0x0102:
		c.pushBinary("/")
	case 0x0103:
		c.pushBinary("=")
	case 0x0104:
		c.pushBinary("EQV")
	case 0x0108:
		arg := c.Pop()
		dtype := d.BuiltinType(int(parameter))
		if _, isString := dtype.(ast.StringType); isString {
			decodeErrorf("invalid opcode parameter: conversion to string")
		}
		c.Push(&ast.ConvertFunction{Argument: arg, DType: dtype})
	case 0x015E:
		c.pushBinary(">=")
	case 0x015F:
		c.pushBinary(">")
	case 0x0160:
		c.pushBinary("\\")
	case 0x0161:
		c.pushBinary("IMP")
	case 0x0162:
		c.pushBinary("<=")
	case 0x0163:
		c.pushBinary("<")
	case 0x0164:
		c.Push(&ast.DecimalInteger{Value: int64(parameter)})
	case 0x0165:
		c.Push(&ast.DecimalInteger{Value: int64(r.U16())})
	case 0x0166:
		c.Push(&ast.DecimalInteger{Value: int64(r.U32()), Suffix: "&"})
	case 0x0167:
		c.Push(&ast.HexadecimalInteger{Value: int64(r.U16())})
	case 0x0168:
		c.Push(&ast.HexadecimalInteger{Value: int64(r.U32()), Suffix: "&"})
	case 0x0169:
		c.Push(&ast.OctalInteger{Value: int64(r.U16())})
	case 0x016A:
		c.Push(&ast.OctalInteger{Value: int64(r.U32()), Suffix: "&"})
	case 0x016B:
		c.Push(&ast.FloatLiteral{Value: float64(r.F32()), Suffix: '!'})
	case 0x016C:
		c.Push(&ast.FloatLiteral{Value: r.F64(), Suffix: '#'})
	case 0x016D:
		c.Push(&ast.StringLiteral{Text: r.Str()})
	case 0x016E:
		c.Push(&ast.Parentheses{Argument: c.Pop()})
	case 0x016F:
		c.pushBinary("MOD")
	case 0x0170:
		c.pushBinary("*")
	case 0x0171:
		c.pushBinary("<>")
	case 0x0172:
		c.Push(nil)
	case 0x0173:
		c.Push(ast.Missing)
	case 0x0174:
		c.Push(&ast.UnaryOperator{Operator: "NOT", Argument: c.Pop()})
	case 0x0175:
		c.pushBinary("OR")
	case 0x0176:
		c.pushBinary("^")
	case 0x0177:
		c.pushBinary("-")
	case 0x0178:
		c.Push(&ast.UnaryOperator{Operator: "-", Argument: c.Pop()})
	case 0x0179:
		c.pushBinary("XOR")
	case 0x017A:
		c.Push(&ast.EventSpecification{Name: "UEVENT"})
	case 0x017C:
		r.U16()
		size := int(r.U16())
		column := int(r.U16())
		decl := c.PutDeclaration()
		must(decl.SetType(ast.FixedStringType{Count: size}))
		decl.AsColumn = column
	case 0x017D:
		must(putStatementKind(c, newVarDecl).SetKind("DIM"))
		r.U16()
	case 0x017E:
		argcount := int(r.U16())
		name := c.ReadVar(r)
		dims := c.PopN(argcount)
		asType := readFieldType(d, c, r)
		column := int(r.U16())
		c.PutStatement(&ast.TypeFieldDeclaration{
			Name:       name,
			AsType:     asType,
			Dimensions: dims,
			AsColumn:   column,
		})
	case 0x0185:
		c.Push(&ast.CurrencyLiteral{Value: r.U64()})
	case 0x0196:
		states := []string{"OFF", "ON"}
		if int(parameter) >= len(states) {
			decodeErrorf("invalid EVENT state %d", parameter)
		}
		c.PutStatement(&ast.EventStatement{State: states[parameter]})
	case 0x0198:
		mode := r.U16()
		names := map[uint16]string{
			0x0000: "MOVEFIRST",
			0x0004: "MOVELAST",
			0x0008: "MOVENEXT",
			0x000C: "MOVEPREVIOUS",
		}
		name, ok := names[mode]
		if !ok {
			decodeErrorf("invalid ISAM move mode 0x%04X", mode)
		}
		c.PutStatement(&ast.BuiltinStatement{Name: name, Args: []ast.Expression{c.Pop()}})
	case 0x019A:
		r.U16()
		typename := c.ReadVar(r)
		args := c.PopN(3)
		c.PutStatement(&ast.OpenIsamStatement{
			Filename:   args[0],
			TypeName:   typename,
			TableName:  args[1],
			FileNumber: args[2],
		})
	case 0x019F:
		mode := r.U16()
		names := map[uint16]string{
			0x0000: "SEEKEQ",
			0x0004: "SEEKGE",
			0x0008: "SEEKGT",
		}
		name, ok := names[mode]
		if !ok {
			decodeErrorf("invalid ISAM seek mode 0x%04X", mode)
		}
		argcount := int(r.U16())
		c.PutStatement(&ast.BuiltinStatement{Name: name, Args: c.PopN(argcount)})
	case 0x01AA:
		typename := c.ReadVar(r)
		arg := c.Pop()
		c.Push(&ast.TypeOfIsOperator{Argument: arg, TypeName: typename})
	case 0x01C1:
		c.Push(&ast.ExternalObject{Name: c.Pop()})
	case 0x01C2:
		r.U16()
		name := c.ReadVar(r)
		c.PutMetaCommand(&ast.MetaCommand{Keyword: "$FORM", Argument: name})
	case 0x01C7, 0x01C8:
		c.Push(nil)
	case 0x01C9:
		target := c.Pop()
		name := methodName(r.U16())
		if name == "PRINT" {
			stmt := ast.NewPrintStatement("PRINT")
			stmt.Target = target
			c.PutStatement(stmt)
		} else {
			c.PutStatement(&ast.MethodSubCall{Target: target, Name: name})
		}
	case 0x01CA, 0x01CB:
		args := c.PopN(1)
		target := c.Pop()
		c.PutStatement(&ast.MethodSubCall{Target: target, Name: methodName(r.U16()), Args: args})
	case 0x01CC, 0x01CF:
		args := c.PopN(2)
		target := c.Pop()
		c.PutStatement(&ast.MethodSubCall{Target: target, Name: methodName(r.U16()), Args: args})
	case 0x01CD:
		args := c.PopN(3)
		target := c.Pop()
		c.PutStatement(&ast.MethodSubCall{Target: target, Name: methodName(r.U16()), Args: args})
	case 0x01CE:
		args := c.PopN(4)
		target := c.Pop()
		c.PutStatement(&ast.MethodSubCall{Target: target, Name: methodName(r.U16()), Args: args})
	case 0x01D0:
		target := c.Pop()
		c.Push(&ast.MethodFunctionCall{Target: target, Name: methodName(r.U16())})
	case 0x01D1:
		args := c.PopN(1)
		target := c.Pop()
		c.Push(&ast.MethodFunctionCall{Target: target, Name: methodName(r.U16()), Args: args})
	default:
		spec, ok := builtins[opcode]
		if !ok {
			decodeErrorf("invalid opcode 0x%04X", actual)
		}
		execBuiltin(c, r, spec)
	}
}

// readFieldType decodes the type reference of a TYPE field, which embeds
// the number of the type-setting opcode that a DIM would have used.
func readFieldType(d Dialect, c *Context, r *binio.Reader) ast.Type {
	mode := r.U16() // 0x0015, 0x0016 or 0x017C
	if mode == 0x017C {
		r.U16()
		size := int(r.U16())
		return ast.FixedStringType{Count: size}
	}
	return resolveType(d, c, r, int(r.U16()))
}

func (c *Context) pushBinary(operator string) {
	args := c.PopN(2)
	c.Push(&ast.BinaryOperator{Operator: operator, Left: args[0], Right: args[1]})
}

func newPrint() *ast.PrintStatement { return ast.NewPrintStatement("PRINT") }

func newCase() *ast.CaseStatement { return &ast.CaseStatement{} }

func newVarDecl() *ast.VariableDeclarationStatement {
	return &ast.VariableDeclarationStatement{}
}

// qb40TakesArrayElement reports whether QB40 treats opcode 0x0010 as a
// plain array element: there is no pending declaration statement, or its
// kind is still unset, DIM or REDIM.
func qb40TakesArrayElement(c *Context) bool {
	vds, ok := peekStatement[*ast.VariableDeclarationStatement](c)
	if !ok {
		return true
	}
	return vds.Kind == "" || vds.Kind == "DIM" || vds.Kind == "REDIM"
}
