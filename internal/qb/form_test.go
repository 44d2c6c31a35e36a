package qb

import (
	"strings"
	"testing"
)

func TestFormAttributePrint(t *testing.T) {
	tests := []struct {
		attr FormAttribute
		want string
	}{
		{FormAttribute{Name: "Caption", Kind: "STRING", Text: []byte(`say "hi"`)}, `Caption      = "say ""hi"""`},
		{FormAttribute{Name: "Top", Kind: "CHAR", Value: -3}, "Top          = Char(-3)"},
		{FormAttribute{Name: "BackColor", Kind: "QBCOLOR", Value: 7}, "BackColor    = QBColor(7)"},
		{FormAttribute{Name: "Enabled", Kind: "BOOLEAN", Value: -1}, "Enabled      = -1"},
		{FormAttribute{Name: "Shortcut", Kind: "SHORTCUT", Shortcut: "^{F2}"}, "Shortcut     = ^{F2}"},
	}
	for _, tt := range tests {
		if got := tt.attr.Print(); got != tt.want {
			t.Errorf("Print() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormObjectPrint(t *testing.T) {
	form := newFormObject("Form1", "Form")
	form.setAttr("Visible", "BOOLEAN", -1)
	form.setAttr("~", "OFFSET", 0x20) // internal, never printed
	form.setAttr("&Height", "INTEGER", 10)
	button := newFormObject("OK", "CommandButton")
	button.setAttr("Default", "BOOLEAN", -1)
	form.Members = append(form.Members, button)

	var out strings.Builder
	form.Print(&out, "")
	want := "BEGIN Form Form1\n" +
		"\tVisible      = -1\n" +
		"\tBEGIN CommandButton OK\n" +
		"\t\tDefault      = -1\n" +
		"\tEND\n" +
		"END\n"
	if got := out.String(); got != want {
		t.Errorf("Print() =\n%q\nwant\n%q", got, want)
	}
}

func TestParseMenuShortcut(t *testing.T) {
	tests := []struct {
		caption string
		want    string
	}{
		{"Open\tCtrl+O", "^O"},
		{"Save\tShift+Ctrl+S", "+^S"},
		{"Help\tF1", "{F1}"},
		{"Quit\tDel", "Del"},
	}
	for _, tt := range tests {
		control := newFormObject("mnuTest", "Menu")
		control.Attributes["Caption"] = &FormAttribute{
			Name: "Caption", Kind: "STRING", Text: []byte(tt.caption), Present: true,
		}
		parseMenuShortcut(control)
		got, ok := control.Attributes["Shortcut"]
		if !ok {
			t.Fatalf("caption %q: no shortcut attribute", tt.caption)
		}
		if got.Shortcut != tt.want {
			t.Errorf("caption %q: shortcut = %q, want %q", tt.caption, got.Shortcut, tt.want)
		}
	}

	// a caption without a tab gains no shortcut
	control := newFormObject("mnuPlain", "Menu")
	control.Attributes["Caption"] = &FormAttribute{
		Name: "Caption", Kind: "STRING", Text: []byte("Plain"), Present: true,
	}
	parseMenuShortcut(control)
	if _, ok := control.Attributes["Shortcut"]; ok {
		t.Error("unexpected shortcut for a plain caption")
	}
}
