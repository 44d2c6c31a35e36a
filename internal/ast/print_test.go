package ast

import "testing"

func ident(name string) *Identifier {
	return NewIdentifier([]byte(name), 0)
}

func TestFloatLiteralPrint(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		suffix byte
		want   string
	}{
		{"integral double", 3.0, '#', "3#"},
		{"integral single", 3.0, '!', "3!"},
		{"fraction keeps bare suffixless form", 0.5, '!', ".5"},
		{"fraction double", 0.5, '#', ".5#"},
		{"exponent double converts E to D", 1e17, '#', "1D+17"},
		{"exponent single keeps E", 1e17, '!', "1E+17"},
		{"negative fraction", -0.25, '!', "-0.25"},
		{"plain value", 12.25, '!', "12.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit := &FloatLiteral{Value: tt.value, Suffix: tt.suffix}
			if got := lit.Print(0); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrencyLiteralPrint(t *testing.T) {
	tests := []struct {
		value uint64
		want  string
	}{
		{12345, "1.2345@"},
		{50000, "5@"},
		{120000, "12@"},
		{1, "0.0001@"},
		{0, "0@"},
	}
	for _, tt := range tests {
		lit := &CurrencyLiteral{Value: tt.value}
		if got := lit.Print(0); got != tt.want {
			t.Errorf("CurrencyLiteral(%d).Print() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestIntegerLiteralPrint(t *testing.T) {
	if got := (&HexadecimalInteger{Value: 0xABC}).Print(0); got != "&HABC" {
		t.Errorf("hex = %q, want &HABC", got)
	}
	if got := (&HexadecimalInteger{Value: 0x10, Suffix: "&"}).Print(0); got != "&H10&" {
		t.Errorf("hex long = %q, want &H10&", got)
	}
	if got := (&OctalInteger{Value: 8}).Print(0); got != "&O10" {
		t.Errorf("octal = %q, want &O10", got)
	}
	if got := (&DecimalInteger{Value: 7, Suffix: "&"}).Print(0); got != "7&" {
		t.Errorf("decimal = %q, want 7&", got)
	}
}

func TestIdentifierPrint(t *testing.T) {
	id := ident("count")
	id.Suffix = IntegerType{}
	if got := id.Print(0); got != "count%" {
		t.Errorf("suffixed = %q, want count%%", got)
	}
	if got := NewNumericIdentifier(10, 0).Print(0); got != "10" {
		t.Errorf("numeric = %q, want 10", got)
	}
	// large numeric labels are coerced to their decimal text form
	big := NewNumericIdentifier(65530, 0)
	if !big.IsNumber() {
		t.Error("coerced label should still report IsNumber")
	}
	if got := big.Print(0); got != "65530" {
		t.Errorf("coerced = %q, want 65530", got)
	}
	// digit-only name bytes become numeric labels
	if !NewIdentifier([]byte("100"), 0).IsNumber() {
		t.Error("digit-only name should be numeric")
	}
}

func TestFixedStringTypeName(t *testing.T) {
	if got := (FixedStringType{Count: 0}).TypeName(); got != "STRING * 0" {
		t.Errorf("TypeName() = %q, want \"STRING * 0\"", got)
	}
	if got := (FixedStringType{Count: 12}).TypeName(); got != "STRING * 12" {
		t.Errorf("TypeName() = %q, want \"STRING * 12\"", got)
	}
}

func TestDefTypePrint(t *testing.T) {
	var all [26]bool
	for i := range all {
		all[i] = true
	}
	d := &DefTypeDeclaration{AsType: IntegerType{}, Letters: all}
	if got := d.Print(0); got != "DEFINT A-Z" {
		t.Errorf("Print() = %q, want \"DEFINT A-Z\"", got)
	}

	var some [26]bool
	some[0], some[2], some[3] = true, true, true // A, C, D
	d = &DefTypeDeclaration{AsType: IntegerType{}, Letters: some}
	if got := d.Print(0); got != "DEFINT A, C-D" {
		t.Errorf("Print() = %q, want \"DEFINT A, C-D\"", got)
	}
}

func TestOpenStatementPrint(t *testing.T) {
	open := &OpenStatement{
		Filename:   &StringLiteral{Text: []byte("f")},
		FileNumber: &FileNumber{Value: &DecimalInteger{Value: 1}},
		Mode:       "BINARY",
		Access:     "READ WRITE",
		Lock:       "SHARED",
		Length:     &DecimalInteger{Value: 128},
	}
	want := `OPEN "f" FOR BINARY ACCESS READ WRITE SHARED AS #1 LEN = 128`
	if got := open.Print(0); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestLineIfPrint(t *testing.T) {
	stmt := NewLineIfStatement(
		ident("x"),
		&GotoStatement{Target: NewNumericIdentifier(10, 0), Implicit: true},
	)
	stmt.Else = NewElseStatement(&GotoStatement{Target: NewNumericIdentifier(20, 0), Implicit: true})
	if got := stmt.Print(0); got != "IF x THEN 10 ELSE 20" {
		t.Errorf("Print() = %q, want \"IF x THEN 10 ELSE 20\"", got)
	}
}

func TestVariableDeclarationPadding(t *testing.T) {
	stmt := &VariableDeclarationStatement{Kind: "DIM"}
	decl := &VariableDeclaration{AsColumn: 20}
	if err := decl.SetName(ident("x"), nil); err != nil {
		t.Fatal(err)
	}
	if err := decl.SetType(IntegerType{}); err != nil {
		t.Fatal(err)
	}
	stmt.Declarations = append(stmt.Declarations, decl)
	want := "DIM x               AS INTEGER"
	if got := stmt.Print(0); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestVariableDeclarationSetTwice(t *testing.T) {
	decl := &VariableDeclaration{}
	if err := decl.SetType(IntegerType{}); err != nil {
		t.Fatal(err)
	}
	if err := decl.SetType(LongType{}); err == nil {
		t.Error("second SetType should fail")
	}
	if err := decl.SetName(ident("x"), nil); err != nil {
		t.Fatal(err)
	}
	if err := decl.SetName(ident("y"), nil); err == nil {
		t.Error("second SetName should fail")
	}
}

func TestLinePrintColumns(t *testing.T) {
	line := NewLine(NewNumericIdentifier(10, 0), 0)
	line.Statements[0] = &AssignmentStatement{Target: ident("a"), Value: &DecimalInteger{Value: 1}}
	line.AddStatement(&AssignmentStatement{Target: ident("b"), Value: &DecimalInteger{Value: 2}}, 20)
	want := "10 a = 1:           b = 2"
	if got := line.Print(0); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestLinePrintComment(t *testing.T) {
	line := NewLine(nil, 0)
	line.Statements[0] = &AssignmentStatement{Target: ident("a"), Value: &DecimalInteger{Value: 1}}
	line.Comment = &Comment{Text: []byte(" note"), Column: 12}
	want := "a = 1       ' note"
	if got := line.Print(0); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintStatementSkipsItemAfterControl(t *testing.T) {
	stmt := NewPrintStatement("PRINT")
	stmt.AddItem(&PrintControl{Mode: "TAB", Value: &DecimalInteger{Value: 5}})
	stmt.AddItem(&PrintItem{Separator: ';'})
	stmt.AddItem(&PrintItem{Value: &StringLiteral{Text: []byte("X")}, Separator: ';'})
	want := `PRINT TAB(5); "X";`
	if got := stmt.Print(0); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestBuiltinStatementTrimsElidedArgs(t *testing.T) {
	stmt := &BuiltinStatement{Name: "CLS", Args: []Expression{nil}}
	if got := stmt.Print(0); got != "CLS" {
		t.Errorf("Print() = %q, want \"CLS\"", got)
	}
	stmt = &BuiltinStatement{Name: "COLOR", Args: []Expression{nil, &DecimalInteger{Value: 7}}}
	if got := stmt.Print(0); got != "COLOR , 7" {
		t.Errorf("Print() = %q, want \"COLOR , 7\"", got)
	}
}

func TestResumeStatementForms(t *testing.T) {
	if got := (&ResumeStatement{}).Print(0); got != "RESUME" {
		t.Errorf("bare = %q", got)
	}
	if got := (&ResumeStatement{Next: true}).Print(0); got != "RESUME NEXT" {
		t.Errorf("next = %q", got)
	}
	if got := (&ResumeStatement{Target: NewNumericIdentifier(100, 0)}).Print(0); got != "RESUME 100" {
		t.Errorf("target = %q", got)
	}
}

func TestMissingHelpers(t *testing.T) {
	args := []Expression{ident("a"), Missing, ident("b")}
	cleared := ClearMissing(args)
	if len(cleared) != 2 {
		t.Fatalf("ClearMissing len = %d, want 2", len(cleared))
	}
	replaced := ReplaceMissing(args)
	if len(replaced) != 3 || replaced[1] != nil {
		t.Fatalf("ReplaceMissing should turn Missing into nil")
	}
}
