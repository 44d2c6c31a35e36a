package qb

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/qbtools/detok/internal/binio"
	"golang.org/x/text/encoding/charmap"
)

// FormAttribute is one property of a form control. Present distinguishes
// decoded attributes from ones suppressed by normalization.
type FormAttribute struct {
	Name     string
	Kind     string
	Value    int
	Text     []byte
	Shortcut string
	Present  bool
}

func (a *FormAttribute) Print() string {
	text := fmt.Sprintf("%-12s = ", a.Name)
	switch a.Kind {
	case "STRING":
		text += "\"" + strings.ReplaceAll(formText(a.Text), "\"", "\"\"") + "\""
	case "CHAR":
		text += fmt.Sprintf("Char(%d)", a.Value)
	case "QBCOLOR":
		text += fmt.Sprintf("QBColor(%d)", a.Value)
	case "SHORTCUT":
		text += a.Shortcut
	default:
		text += fmt.Sprintf("%d", a.Value)
	}
	return text
}

func formText(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(charmap.CodePage437.DecodeByte(c))
	}
	return sb.String()
}

// FormObject is one control of the VBDOS form resource, with its sorted
// attribute set and nested child controls.
type FormObject struct {
	Name       string
	Type       string
	Attributes map[string]*FormAttribute
	Members    []*FormObject
}

func newFormObject(name, typeName string) *FormObject {
	return &FormObject{Name: name, Type: typeName, Attributes: make(map[string]*FormAttribute)}
}

func (o *FormObject) setAttr(name, kind string, value int) {
	o.Attributes[name] = &FormAttribute{Name: name, Kind: kind, Value: value, Present: true}
}

// Print writes the object tree, tab-indented per nesting level. Internal
// attributes (those not starting with a letter) never print.
func (o *FormObject) Print(w io.Writer, indent string) {
	fmt.Fprintln(w, indent+"BEGIN "+o.Type+" "+o.Name)
	keys := make([]string, 0, len(o.Attributes))
	for key := range o.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if len(key) == 0 || !isLetter(key[0]) {
			continue
		}
		attr := o.Attributes[key]
		if !attr.Present {
			continue
		}
		fmt.Fprintln(w, indent+"\t"+attr.Print())
	}
	for _, member := range o.Members {
		member.Print(w, indent+"\t")
	}
	fmt.Fprintln(w, indent+"END")
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// parseFormLayout decodes the VBDOS form resource: a name table followed by
// fixed-layout control records, with parent/child nesting recovered from
// the records' offset fields.
func parseFormLayout(f *File, r *binio.Reader) {
	r.Seek(0x16)
	formFlags := r.U8()
	r.SeekCurrent(5)
	namesOffset := int64(r.U16())
	recordsLength := int64(r.U16())
	recordsOffset := r.Tell()

	r.Seek(0x16 + namesOffset)
	var names []string
	for {
		linkOffset := r.U16()
		r.U8() // control type, repeated in the record
		length := int(r.U8())
		names = append(names, formText(r.Bytes(length)))
		if linkOffset == 0 {
			break
		}
	}

	controls := make(map[int64]*FormObject)
	var order []*FormObject

	r.Seek(recordsOffset)
	for r.Tell()+2 < recordsOffset+recordsLength {
		ctlOffset := r.Tell()

		index := int(r.U8())
		ctlType := int(r.U8())
		ct, known := controlTypes[ctlType]
		if !known || index >= len(names) {
			// probably the end of the structures
			break
		}
		if ctlOffset+int64(ct.length) > recordsOffset+recordsLength {
			break
		}

		typeName := ct.name
		if typeName == "Form" && formFlags&0x04 != 0 {
			typeName = "MDIForm"
		}
		control := newFormObject(names[index], typeName)

		r.Seek(ctlOffset + 2)
		for _, field := range ct.fields {
			if field.skip > 0 {
				r.SeekCurrent(int64(field.skip))
				continue
			}
			var value int
			if field.size == 1 {
				value = int(r.U8())
			} else {
				value = int(r.U16())
			}
			switch {
			case field.kind == "BOOLEAN" && field.bits != nil:
				for bit, bitName := range field.bits {
					if bitName == "" {
						continue
					}
					v := 0
					if (value>>bit)&1 != 0 {
						v = -1
					}
					control.setAttr(bitName, "BOOLEAN", v)
				}
			case field.kind == "STRING":
				pos := r.Tell()
				r.Seek(0x16 + int64(value))
				text := r.Str()
				r.Seek(pos)
				control.Attributes[field.name] = &FormAttribute{
					Name: field.name, Kind: "STRING", Text: text, Present: true,
				}
			default:
				if field.kind != "UNSIGNED" {
					if field.size == 1 && value&0x80 != 0 {
						value -= 0x100
					} else if field.size == 2 && value&0x8000 != 0 {
						value -= 0x10000
					}
				}
				control.setAttr(field.name, field.kind, value)
			}
		}
		r.Seek(ctlOffset + int64(ct.length))

		normalizeWindowState(control)

		if amp, hasAmp := control.Attributes["&Index"]; hasAmp {
			if idx, hasIdx := control.Attributes["Index"]; hasIdx && amp.Value == 0 {
				// not a control array
				idx.Present = false
			}
		}
		if typeName == "MDIForm" {
			control.Attributes["WindowState"].Present = false
		}
		if typeName == "Menu" {
			parseMenuShortcut(control)
		}

		if len(controls) == 0 {
			f.MainForm = control
		}
		controls[ctlOffset] = control
		order = append(order, control)
	}

	for _, control := range order {
		parentAttr, ok := control.Attributes["~"]
		if !ok || parentAttr.Value == 0 {
			continue
		}
		parent, ok := controls[0x16+int64(parentAttr.Value)]
		if !ok {
			decodeErrorf("form control parent offset 0x%X not found", parentAttr.Value)
		}
		parent.Members = append(parent.Members, control)
	}
}

// normalizeWindowState overrides the form geometry for the minimized and
// maximized window states.
func normalizeWindowState(control *FormObject) {
	state, ok := control.Attributes["WindowState"]
	if !ok {
		return
	}
	switch state.Value {
	case 0:
		control.setAttr("Left", "CHAR", control.Attributes["*Left"].Value)
		control.setAttr("Top", "CHAR", control.Attributes["*Top"].Value)
		control.setAttr("Height", "CHAR", control.Attributes["*Height"].Value)
		control.setAttr("Width", "CHAR", control.Attributes["*Width"].Value)
	case 1:
		control.setAttr("Left", "CHAR", 3)   // observed default
		control.setAttr("Top", "CHAR", 22)   // observed default
		control.setAttr("Height", "CHAR", control.Attributes["&Height"].Value+2)
		control.setAttr("Width", "CHAR", control.Attributes["&Width"].Value+2)
	case 2:
		control.setAttr("Left", "CHAR", 0)
		control.setAttr("Top", "CHAR", 0)
		control.setAttr("Height", "CHAR", control.Attributes["&Height"].Value+2)
		control.setAttr("Width", "CHAR", control.Attributes["&Width"].Value+2)
	}
}

// parseMenuShortcut splits a tab-separated menu caption into the caption
// and its shortcut, spelled in the menu-shortcut notation: Shift+ is '+',
// Ctrl+ is '^' and function keys become {F...}.
func parseMenuShortcut(control *FormObject) {
	caption, ok := control.Attributes["Caption"]
	if !ok {
		return
	}
	tab := -1
	for i, b := range caption.Text {
		if b == '\t' {
			tab = i
			break
		}
	}
	if tab < 0 {
		return
	}
	shortcutText := formText(caption.Text[tab+1:])
	caption.Text = caption.Text[:tab]
	value := ""
	if rest, found := strings.CutPrefix(shortcutText, "Shift+"); found {
		value += "+"
		shortcutText = rest
	}
	if rest, found := strings.CutPrefix(shortcutText, "Ctrl+"); found {
		value += "^"
		shortcutText = rest
	}
	if strings.HasPrefix(shortcutText, "F") {
		value += "{" + shortcutText + "}"
	} else {
		value += shortcutText
	}
	control.Attributes["Shortcut"] = &FormAttribute{
		Name: "Shortcut", Kind: "SHORTCUT", Shortcut: value, Present: true,
	}
}
