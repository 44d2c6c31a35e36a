package qb

// formField is one entry of a control-record layout: either a byte count
// to skip, or a sized attribute of the given kind. A BOOLEAN field with a
// bit list decodes into one named attribute per named bit position, -1 when
// the bit is set and 0 when it is clear; an empty bit name marks an unused
// bit.
type formField struct {
	skip int
	size int
	kind string
	name string
	bits []string
}

type controlType struct {
	name   string
	length int
	fields []formField
}

func skip(n int) formField              { return formField{skip: n} }
func f8(kind, name string) formField    { return formField{size: 1, kind: kind, name: name} }
func f16(kind, name string) formField   { return formField{size: 2, kind: kind, name: name} }
func boolBits(bits ...string) formField { return formField{size: 2, kind: "BOOLEAN", bits: bits} }

// commonHead is the record prefix shared by most controls: the parent
// offset, the tag string and the control-array index.
func commonHead() []formField {
	return []formField{
		skip(2),
		f16("OFFSET", "~"),
		f16("STRING", "Tag"),
		f16("INTEGER", "Index"),
	}
}

// commonGeometry is the Top/Left/Height/Width block shared by positioned
// controls.
func commonGeometry() []formField {
	return []formField{
		skip(2),
		f8("CHAR", "Top"),
		f8("CHAR", "Left"),
		f8("CHAR", "Height"),
		f8("CHAR", "Width"),
		f8("INTEGER", "MousePointer"),
		f8("INTEGER", "TabIndex"),
	}
}

func fields(groups ...[]formField) []formField {
	var out []formField
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func one(fs ...formField) []formField { return fs }

// controlTypes enumerates the known VBDOS control record layouts by their
// on-disk type byte.
var controlTypes = map[int]controlType{
	0: {"Form", 0x1F, fields(one(
		skip(1),
		boolBits("", "MaxButton", "", "AutoRedraw", "", "ControlBox", "", "", "Enabled", "", "MinButton", "", "", "", "", "Visible"),
		skip(2),
		f16("OFFSET", "~"),
		f16("STRING", "Tag"),
		skip(4),
		f8("CHAR", "*Top"),
		f8("CHAR", "*Left"),
		f8("CHAR", "*Height"),
		f8("CHAR", "*Width"),
		f8("INTEGER", "MousePointer"),
		f8("INTEGER", "WindowState"),
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		skip(1),
		f16("STRING", "Caption"),
		f8("INTEGER", "BorderStyle"),
		skip(2),
		f8("INTEGER", "&Height"),
		f8("INTEGER", "&Width"),
	))},
	1: {"CheckBox", 0x1C, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		f16("STRING", "Caption"),
		f8("INTEGER", "Value"),
		skip(1),
	))},
	2: {"ComboBox", 0x27, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "Sorted", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(12),
		f16("STRING", "Text"),
		f8("INTEGER", "Style"),
	))},
	3: {"CommandButton", 0x1C, fields(one(
		skip(1),
		boolBits("", "", "Default", "", "", "", "", "", "Enabled", "&Index", "", "", "Cancel", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		skip(1),
		f8("INTEGER", "DragMode"),
		f16("STRING", "Caption"),
		skip(2),
	))},
	4: {"DirListBox", 0x20, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(8),
	))},
	5: {"DriveListBox", 0x20, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(8),
	))},
	6: {"FileListBox", 0x24, fields(one(
		skip(1),
		boolBits("ReadOnly", "Hidden", "System", "", "", "Archive", "", "", "Enabled", "&Index", "Normal", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(10),
		f16("STRING", "Pattern"),
	))},
	7: {"Frame", 0x1A, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		f16("STRING", "Caption"),
	))},
	8: {"HScrollBar", 0x20, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "Attached", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f16("INTEGER", "Value"),
		f8("INTEGER", "DragMode"),
		f16("INTEGER", "LargeChange"),
		f16("INTEGER", "SmallChange"),
		f16("INTEGER", "Max"),
		f16("INTEGER", "Min"),
	))},
	9: {"Label", 0x1C, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "AutoSize", "", "", "Enabled", "&Index", "", "", "", "", "", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		f16("STRING", "Caption"),
		f8("INTEGER", "BorderStyle"),
		f8("INTEGER", "Alignment"),
	))},
	10: {"ListBox", 0x20, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "Sorted", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(8),
	))},
	11: {"Menu", 0x1A, fields(one(
		skip(1),
		boolBits("Separator", "", "", "", "", "", "Checked", "", "Enabled", "&Index", "", "", "", "", "", "Visible"),
	), commonHead(), one(
		skip(11),
		f16("STRING", "Caption"),
	))},
	12: {"OptionButton", 0x1C, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		f16("STRING", "Caption"),
		f8("BOOLEAN", "Value"),
		skip(1),
	))},
	13: {"PictureBox", 0x1F, fields(one(
		skip(1),
		boolBits("", "", "", "AutoRedraw", "", "", "", "", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(2),
		f8("INTEGER", "BorderStyle"),
		skip(4),
	))},
	14: {"TextBox", 0x22, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "MultiLine", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f8("QBCOLOR", "BackColor"),
		f8("QBCOLOR", "ForeColor"),
		f8("INTEGER", "DragMode"),
		skip(2),
		f8("INTEGER", "BorderStyle"),
		f8("INTEGER", "ScrollBars"),
		f16("STRING", "Text"),
		skip(2),
	))},
	15: {"Timer", 0x1C, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "", "Enabled", "&Index", "", "", "", "", "", ""),
	), commonHead(), one(
		skip(2),
		f8("CHAR", "Top"),
		f8("CHAR", "Left"),
		skip(7),
		f16("UNSIGNED", "Interval"),
		skip(2),
	))},
	16: {"VScrollBar", 0x20, fields(one(
		skip(1),
		boolBits("", "", "", "", "", "", "", "Attached", "Enabled", "&Index", "", "", "", "", "TabStop", "Visible"),
	), commonHead(), commonGeometry(), one(
		f16("INTEGER", "Value"),
		f8("INTEGER", "DragMode"),
		f16("INTEGER", "LargeChange"),
		f16("INTEGER", "SmallChange"),
		f16("INTEGER", "Max"),
		f16("INTEGER", "Min"),
	))},
}
