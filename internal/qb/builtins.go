package qb

import (
	"github.com/qbtools/detok/internal/ast"
	"github.com/qbtools/detok/internal/binio"
)

// Argument-count conventions of the builtin table.
const (
	// argsFromStream: the operand count follows the opcode as a u16.
	argsFromStream = -2
	// noParens: zero-argument function form printed without parentheses.
	noParens = -1
)

// builtinSpec describes one table-driven builtin opcode.
type builtinSpec struct {
	fn       bool
	name     string
	argCount int
	// assignment marks the lvalue form: a value is popped in addition to
	// the arguments and the call becomes an assignment target.
	assignment bool
	// skippedWords are u16 words read and discarded after dispatch.
	skippedWords int
	// doubleArgs: absent arguments were encoded as Missing and are
	// filtered out before emission.
	doubleArgs bool
	// missingArgs are fixed positions inserted as elided arguments.
	missingArgs []int
}

func fn(name string, argCount int) builtinSpec {
	return builtinSpec{fn: true, name: name, argCount: argCount}
}

func st(name string, argCount int) builtinSpec {
	return builtinSpec{name: name, argCount: argCount}
}

var builtins = map[uint16]builtinSpec{
	0x0043: st("CHAIN", 1),
	0x004E: st("END", 0),
	0x0075: {name: "STOP", skippedWords: 1}, // second word is 0x0098
	0x0077: st("WAIT", 2),
	0x0078: st("WAIT", 3),
	0x0079: {name: "WEND", skippedWords: 1},
	0x007A: {name: "WHILE", argCount: 1, skippedWords: 1},
	0x009A: st("BEEP", 0),
	0x009B: st("BLOAD", 1),
	0x009C: st("BLOAD", 2),
	0x009D: st("BSAVE", 3),
	0x009E: st("CHDIR", 1),
	0x00A1: {name: "CLEAR", argCount: argsFromStream, doubleArgs: true},
	0x00A2: st("CLOSE", argsFromStream),
	0x00A3: {name: "CLS", argCount: 1, doubleArgs: true},
	0x00A4: {name: "COLOR", argCount: argsFromStream, doubleArgs: true},
	0x00A7: {name: "DATE$", argCount: noParens, assignment: true},
	0x00A8: st("DEF SEG", 0),
	0x00A9: {name: "DEF SEG", argCount: noParens, assignment: true},
	0x00AA: st("DRAW", 1),
	0x00AB: st("ENVIRON", 1),
	0x00AD: st("ERROR", 1),
	0x00AE: st("FILES", 0),
	0x00AF: st("FILES", 1),
	0x00B0: st("GET", 1),
	0x00B1: st("GET", 2),
	0x00B2: {name: "GET", argCount: 2, missingArgs: []int{1}, skippedWords: 1},
	0x00B3: {name: "GET", argCount: 3, skippedWords: 1},
	0x00B7: st("IOCTL", 2),
	0x00B9: st("KEY", 2),
	0x00BA: st("KILL", 1),
	0x00C1: {name: "LOCATE", argCount: argsFromStream, doubleArgs: true},
	0x00C5: {name: "MID$", argCount: 2, assignment: true},
	0x00C6: {name: "MID$", argCount: 3, assignment: true},
	0x00C7: st("MKDIR", 1),
	0x00CB: st("OPEN", 3),
	0x00CC: st("OPEN", 4),
	0x00CD: st("OPTION BASE 0", 0),
	0x00CE: st("OPTION BASE 1", 0),
	0x00CF: st("OUT", 2),
	0x00D2: st("PALETTE", 0),
	0x00D3: st("PALETTE", 2),
	0x00D4: st("PALETTE USING", 1),
	0x00D5: st("PCOPY", 2),
	0x00D6: st("PLAY", 1),
	0x00D7: st("POKE", 2),
	0x00DC: st("PUT", 1),
	0x00DD: st("PUT", 2),
	0x00DE: {name: "PUT", argCount: 2, missingArgs: []int{1}, skippedWords: 1},
	0x00DF: {name: "PUT", argCount: 3, skippedWords: 1},
	0x00E0: st("RANDOMIZE", 0),
	0x00E1: st("RANDOMIZE", 1),
	0x00E4: st("RESET", 0),
	0x00E5: st("RMDIR", 1),
	0x00E7: {name: "SCREEN", argCount: argsFromStream, doubleArgs: true},
	0x00E8: st("SEEK", 2),
	0x00E9: st("SHELL", 0),
	0x00EA: st("SHELL", 1),
	0x00EB: st("SLEEP", 0),
	0x00EC: st("SOUND", 2),
	0x00ED: {name: "SWAP", argCount: 2, skippedWords: 1},
	0x00EE: st("SYSTEM", 0),
	0x00EF: {name: "TIME$", argCount: noParens, assignment: true},
	0x00F0: st("TROFF", 0),
	0x00F1: st("TRON", 0),
	0x00F4: st("VIEW", 0),
	0x00F9: st("WIDTH LPRINT", 1),
	0x00FA: st("WIDTH", 2), // first argument is a file name
	0x00FC: st("WINDOW", 0),
	0x0105: fn("ABS", 1),
	0x0106: fn("ASC", 1),
	0x0107: fn("ATN", 1),
	0x0109: fn("CHR$", 1),
	0x010A: fn("COMMAND$", noParens),
	0x010B: fn("COS", 1),
	0x010C: fn("CSRLIN", noParens),
	0x010D: fn("CVD", 1),
	0x010E: fn("CVDMBF", 1),
	0x010F: fn("CVI", 1),
	0x0110: fn("CVL", 1),
	0x0111: fn("CVS", 1),
	0x0112: fn("CVSMBF", 1),
	0x0113: fn("DATE$", noParens),
	0x0114: fn("ENVIRON$", 1),
	0x0115: fn("EOF", 1),
	0x0116: fn("ERDEV", noParens),
	0x0117: fn("ERDEV$", noParens),
	0x0118: fn("ERL", noParens),
	0x0119: fn("ERR", noParens),
	0x011A: fn("EXP", 1),
	0x011B: fn("FILEATTR", 2),
	0x011C: fn("FIX", 1),
	0x011D: fn("FRE", 1),
	0x011E: fn("FREEFILE", noParens),
	0x011F: fn("HEX$", 1),
	0x0120: fn("INKEY$", noParens),
	0x0121: fn("INP", 1),
	0x0122: fn("INPUT$", 1),
	0x0123: fn("INPUT$", 2),
	0x0124: fn("INSTR", 2),
	0x0125: fn("INSTR", 3),
	0x0126: fn("INT", 1),
	0x0127: fn("IOCTL$", 1),
	0x0128: fn("LBOUND", 1),
	0x0129: fn("LBOUND", 2),
	0x012A: fn("LCASE$", 1),
	0x012B: fn("LTRIM$", 1),
	0x012C: fn("LEFT$", 2),
	0x012D: {fn: true, name: "LEN", argCount: 1, skippedWords: 1},
	0x012E: fn("LOC", 1),
	0x012F: fn("LOF", 1),
	0x0130: fn("LOG", 1),
	0x0131: fn("LPOS", 1),
	0x0132: fn("MID$", 2),
	0x0133: fn("MID$", 3),
	0x0134: fn("MKD$", 1),
	0x0135: fn("MKDMBF$", 1),
	0x0136: fn("MKI$", 1),
	0x0137: fn("MKL$", 1),
	0x0138: fn("MKS$", 1),
	0x0139: fn("MKSMBF$", 1),
	0x013A: fn("OCT$", 1),
	0x013B: fn("PEEK", 1),
	0x013C: fn("PEN", 1),
	0x013D: fn("PLAY", 1),
	0x013E: fn("PMAP", 2),
	0x013F: fn("POINT", 1),
	0x0140: fn("POINT", 2),
	0x0141: fn("POS", 1),
	0x0142: fn("RIGHT$", 2),
	0x0143: fn("RND", noParens),
	0x0144: fn("RND", 1),
	0x0145: fn("RTRIM$", 1),
	0x0146: fn("SADD", 1),
	0x0147: fn("SCREEN", 2),
	0x0148: fn("SCREEN", 3),
	0x0149: fn("SEEK", 1),
	0x014A: fn("SETMEM", 1),
	0x014B: fn("SGN", 1),
	0x014C: fn("SHELL", 1),
	0x014D: fn("SIN", 1),
	0x014E: fn("SPACE$", 1),
	0x014F: fn("SQR", 1),
	0x0150: fn("STICK", 1),
	0x0151: fn("STR$", 1),
	0x0152: fn("STRIG", 1),
	0x0153: fn("STRING$", 2),
	0x0154: fn("TAN", 1),
	0x0155: fn("TIME$", noParens),
	0x0156: fn("TIMER", noParens),
	0x0157: fn("UBOUND", 1),
	0x0158: fn("UBOUND", 2),
	0x0159: fn("UCASE$", 1),
	0x015A: fn("VAL", 1),
	0x015B: fn("VARPTR", 1),
	0x015C: {fn: true, name: "VARPTR$", argCount: 1, skippedWords: 1},
	0x015D: fn("VARSEG", 1),
	// QB45+
	0x017B: st("SLEEP", 1),
	// QB70+
	0x017F: st("CHDRIVE", 1),
	0x0180: {name: "ERR", argCount: noParens, assignment: true},
	0x0181: fn("CURDIR$", noParens),
	0x0182: fn("CURDIR$", 1),
	0x0183: fn("DIR$", noParens),
	0x0184: fn("DIR$", 1),
	0x0186: fn("BOF", 1),
	0x0187: fn("CVC", 1),
	0x0188: fn("GETINDEX$", 1),
	0x0189: fn("MKC$", 1),
	0x018A: fn("SAVEPOINT", noParens),
	0x018B: fn("SSEG", 1),
	0x018C: fn("SSEGADD", 1),
	0x018D: fn("STACK", noParens),
	0x018E: st("BEGINTRANS", 0),
	0x018F: st("CHECKPOINT", 0),
	0x0190: st("COMMITTRANS", 0),
	0x0191: st("CREATEINDEX", argsFromStream),
	0x0192: st("DELETE", 1),
	0x0193: st("DELETEINDEX", 2),
	0x0194: st("DELETETABLE", 2),
	0x0195: st("END", 1),
	0x0197: st("INSERT", 2),
	0x019B: st("RETRIEVE", 2),
	0x019C: st("ROLLBACK", 0),
	0x019D: st("ROLLBACK", 1),
	0x019E: st("ROLLBACK ALL", 0),
	0x01A0: st("SETINDEX", 1),
	0x01A1: st("SETINDEX", 2),
	0x01A2: st("STACK", 0),
	0x01A3: st("STACK", 1),
	0x01A4: {name: "STOP", argCount: 1, skippedWords: 1}, // second word is 0x0098
	0x01A5: st("SYSTEM", 1),
	0x01A6: st("UPDATE", 2),
	0x01A7: fn("TEXTCOMP", 2),
	// VBDOS
	0x01AB: st("LOAD", 1),
	0x01AC: st("UNLOAD", 1),
	0x01AD: fn("DOEVENTS", 0),
	0x01AE: fn("QBCOLOR", 1),
	0x01AF: fn("RGB", 3),
	0x01B0: fn("ERROR$", noParens),
	0x01B1: fn("ERROR$", 1),
	0x01B2: fn("FORMAT$", 1),
	0x01B3: fn("FORMAT$", 2),
	0x01B4: fn("DATESERIAL", 3),
	0x01B5: fn("DATEVALUE", 1),
	0x01B6: fn("DAY", 1),
	0x01B7: fn("MONTH", 1),
	0x01B8: fn("WEEKDAY", 1),
	0x01B9: fn("YEAR", 1),
	0x01BA: fn("NOW", noParens),
	0x01BB: fn("TIMESERIAL", 3),
	0x01BC: fn("TIMEVALUE", 1),
	0x01BD: fn("HOUR", 1),
	0x01BE: fn("MINUTE", 1),
	0x01BF: fn("SECOND", 1),
	0x01C0: st("OPTION EXPLICIT", 0),
	0x01C3: fn("INPUTBOX$", 3),
	0x01C4: fn("INPUTBOX$", 5),
	0x01C5: st("MSGBOX", 3),
	0x01C6: fn("MSGBOX", 3),
}

// execBuiltin dispatches a table-driven builtin: a function pushes a call
// expression; the assignment form pops an extra value and emits the lvalue
// assignment; everything else emits a plain builtin statement.
func execBuiltin(c *Context, r *binio.Reader, spec builtinSpec) {
	pop := spec.argCount
	if pop == argsFromStream {
		pop = int(r.U16())
	} else if pop < 0 {
		pop = 0
	}
	if spec.assignment {
		pop++
	}
	args := c.PopN(pop)
	if spec.doubleArgs {
		args = ast.ClearMissing(args)
	}
	for _, position := range spec.missingArgs {
		args = append(args, nil)
		copy(args[position+1:], args[position:])
		args[position] = nil
	}
	implicit := spec.argCount == noParens

	switch {
	case spec.fn:
		c.Push(&ast.BuiltinFunctionCall{Name: spec.name, Args: args, ImplicitArgs: implicit})
	case spec.assignment:
		if len(args) > 1 {
			last := args[len(args)-1]
			copy(args[1:], args[:len(args)-1])
			args[0] = last
		}
		var value ast.Expression
		if len(args) > 0 {
			value = args[len(args)-1]
			args = args[:len(args)-1]
		}
		c.PutAssignmentStatement(&ast.AssignmentStatement{
			Target: &ast.BuiltinFunctionCall{Name: spec.name, Args: args, ImplicitArgs: implicit},
			Value:  value,
		})
	default:
		c.PutStatement(&ast.BuiltinStatement{Name: spec.name, Args: args})
	}
	for i := 0; i < spec.skippedWords; i++ {
		r.U16()
	}
}
