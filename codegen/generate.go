package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// fieldRun is either a single non-bit field or a maximal run of consecutive
// bit fields, mirroring spec.md 4.2 ("Bit packing"): "Consecutive bit
// fields in a method are packed LSB-first into bytes; a new run of bits
// starts a fresh byte." The original generator leaves this as a `todo!()`
// (original_source/amqp_codegen/src/parser.rs's method_parser); the real
// grouping logic below is this broker's own, built against spec.md's
// worked examples instead of reproducing that stub.
type fieldRun struct {
	bits   []Field // len > 1 for a packed run, len == 1 for a lone bit field
	single *Field  // set when this run is a single non-bit field
}

func groupFields(fields []Field, domains map[string]Domain) []fieldRun {
	var runs []fieldRun
	i := 0
	for i < len(fields) {
		if fields[i].ResolvedKind(domains) == "bit" {
			j := i
			for j < len(fields) && fields[j].ResolvedKind(domains) == "bit" {
				j++
			}
			runs = append(runs, fieldRun{bits: fields[i:j]})
			i = j
			continue
		}
		f := fields[i]
		runs = append(runs, fieldRun{single: &f})
		i++
	}
	return runs
}

// goType maps a wire kind to the Go type the checked-in message package
// uses for it.
func goType(kind string) string {
	switch kind {
	case "octet":
		return "uint8"
	case "short":
		return "uint16"
	case "long":
		return "uint32"
	case "longlong", "timestamp":
		return "uint64"
	case "bit":
		return "bool"
	case "shortstr":
		return "string"
	case "longstr":
		return "[]byte"
	case "table":
		return "Table"
	default:
		return "string"
	}
}

// Generate renders one Go source file per class, in the checked-in
// message package's "Code generated... DO NOT EDIT" style (spec.md 4.6).
// The caller (cmd/amqpgen) writes each returned file to
// message/class_<name>.go.
func Generate(amqp *Amqp) map[string]string {
	domains := make(map[string]Domain, len(amqp.Domains))
	for _, d := range amqp.Domains {
		domains[d.Name] = d
	}

	out := make(map[string]string, len(amqp.Classes))
	for _, class := range amqp.Classes {
		out["class_"+strings.ReplaceAll(class.Name, "-", "_")+".go"] = generateClass(class, domains)
	}
	return out
}

func generateClass(class Class, domains map[string]Domain) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by amqpgen from codegen/data/amqp0-9-1.xml. DO NOT EDIT.\n\npackage message\n\n")

	writeMethodIDConsts(&b, class)

	var implemented []Method
	for _, m := range class.Methods {
		if m.IsImplemented() && len(m.Fields) >= 0 {
			writeMethodStruct(&b, class, m, domains)
		}
		if m.IsImplemented() {
			implemented = append(implemented, m)
		}
	}

	writeClassParser(&b, class, domains)

	for _, m := range implemented {
		if hasParseableFields(m) {
			writeMethodParser(&b, class, m, domains)
		}
	}
	for _, m := range implemented {
		writeMethodWriter(&b, class, m, domains)
	}

	return b.String()
}

// hasParseableFields reports whether a method needs its own parse function;
// a zero-field method (e.g. Channel.Open-Ok) is constructed inline by the
// class dispatcher instead, matching the checked-in style.
func hasParseableFields(m Method) bool {
	return len(m.Fields) > 0
}

func writeMethodIDConsts(b *strings.Builder, class Class) {
	names := make([]string, 0, len(class.Methods))
	width := 0
	for _, m := range class.Methods {
		name := "Method" + constName("", class.Name, m.Name)
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	b.WriteString("const (\n")
	for i, m := range class.Methods {
		fmt.Fprintf(b, "\t%-*s uint16 = %d\n", width, names[i], m.Index)
	}
	b.WriteString(")\n\n")
}

func writeMethodStruct(b *strings.Builder, class Class, m Method, domains map[string]Domain) {
	structName := classPrefix(class.Name, m.Name)
	if len(m.Fields) == 0 {
		fmt.Fprintf(b, "type %s struct{}\n\n", structName)
	} else {
		fmt.Fprintf(b, "type %s struct {\n", structName)
		for _, f := range m.Fields {
			fmt.Fprintf(b, "\t%s %s\n", fieldName(f.Name), goType(f.ResolvedKind(domains)))
		}
		b.WriteString("}\n\n")
	}

	methodIDConst := "Method" + constName("", class.Name, m.Name)
	fmt.Fprintf(b, "func (*%s) ClassID() uint16    { return Class%s }\n", structName, pascalCase(class.Name))
	fmt.Fprintf(b, "func (*%s) MethodID() uint16   { return %s }\n", structName, methodIDConst)
	fmt.Fprintf(b, "func (*%s) methodName() string { return %q }\n\n", structName, methodDisplayName(class.Name, m.Name))
}

func writeClassParser(b *strings.Builder, class Class, domains map[string]Domain) {
	fnName := "parse" + pascalCase(class.Name) + "Method"
	fmt.Fprintf(b, "func %s(methodID uint16, r *Reader) (Method, error) {\n\tswitch methodID {\n", fnName)

	var notImpl []Method
	for _, m := range class.Methods {
		if !m.IsImplemented() {
			notImpl = append(notImpl, m)
			continue
		}
		structName := classPrefix(class.Name, m.Name)
		methodIDConst := "Method" + constName("", class.Name, m.Name)
		if hasParseableFields(m) {
			fmt.Fprintf(b, "\tcase %s:\n\t\treturn parse%s(r)\n", methodIDConst, structName)
		} else {
			fmt.Fprintf(b, "\tcase %s:\n\t\treturn &%s{}, nil\n", methodIDConst, structName)
		}
	}
	if len(notImpl) > 0 {
		consts := make([]string, len(notImpl))
		for i, m := range notImpl {
			consts[i] = "Method" + constName("", class.Name, m.Name)
		}
		fmt.Fprintf(b, "\tcase %s:\n\t\treturn nil, &NotImplementedError{ClassID: Class%s, MethodID: methodID, Name: %q}\n",
			strings.Join(consts, ", "), pascalCase(class.Name), pascalCase(class.Name)+" (not implemented)")
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn nil, &UnknownMethodError{ClassID: Class%s, MethodID: methodID}\n\t}\n}\n\n", pascalCase(class.Name))
}

func writeMethodParser(b *strings.Builder, class Class, m Method, domains map[string]Domain) {
	structName := classPrefix(class.Name, m.Name)
	fmt.Fprintf(b, "func parse%s(r *Reader) (Method, error) {\n", structName)

	runs := groupFields(m.Fields, domains)
	assigns := make([]string, 0, len(m.Fields))
	for _, run := range runs {
		if run.single != nil {
			f := *run.single
			local := lowerFirst(fieldName(f.Name))
			writeScalarRead(b, local, f, domains)
			assigns = append(assigns, fmt.Sprintf("%s: %s", fieldName(f.Name), local))
			continue
		}
		local := "bits"
		fmt.Fprintf(b, "\t%s, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, WrapSyntax(err, %q)\n\t}\n",
			local, len(run.bits), run.bits[0].Name+" flags")
		for i, f := range run.bits {
			assigns = append(assigns, fmt.Sprintf("%s: bits[%d]", fieldName(f.Name), i))
		}
	}

	fmt.Fprintf(b, "\treturn &%s{%s}, nil\n}\n\n", structName, strings.Join(assigns, ", "))
}

func writeScalarRead(b *strings.Builder, local string, f Field, domains map[string]Domain) {
	kind := f.ResolvedKind(domains)
	var readCall string
	switch kind {
	case "octet":
		readCall = "r.ReadOctet()"
	case "short":
		readCall = "r.ReadShort()"
	case "long":
		readCall = "r.ReadLong()"
	case "longlong":
		readCall = "r.ReadLongLong()"
	case "timestamp":
		readCall = "r.ReadTimestamp()"
	case "shortstr":
		readCall = "r.ReadShortstr()"
	case "longstr":
		readCall = "r.ReadLongstr()"
	case "table":
		readCall = "r.ReadTable()"
	default:
		readCall = "r.ReadShortstr()"
	}
	fmt.Fprintf(b, "\t%s, err := %s\n\tif err != nil {\n\t\treturn nil, WrapSyntax(err, %q)\n\t}\n", local, readCall, f.Name)
}

func writeMethodWriter(b *strings.Builder, class Class, m Method, domains map[string]Domain) {
	structName := classPrefix(class.Name, m.Name)
	fmt.Fprintf(b, "func write%s(w *Writer, m *%s) {\n", structName, structName)

	runs := groupFields(m.Fields, domains)
	for _, run := range runs {
		if run.single != nil {
			f := *run.single
			writeScalarWrite(b, f, domains)
			continue
		}
		names := make([]string, len(run.bits))
		for i, f := range run.bits {
			names[i] = "m." + fieldName(f.Name)
		}
		fmt.Fprintf(b, "\tw.WriteBits([]bool{%s})\n", strings.Join(names, ", "))
	}
	b.WriteString("}\n\n")
}

func writeScalarWrite(b *strings.Builder, f Field, domains map[string]Domain) {
	kind := f.ResolvedKind(domains)
	field := "m." + fieldName(f.Name)
	switch kind {
	case "octet":
		fmt.Fprintf(b, "\tw.WriteOctet(%s)\n", field)
	case "short":
		fmt.Fprintf(b, "\tw.WriteShort(%s)\n", field)
	case "long":
		fmt.Fprintf(b, "\tw.WriteLong(%s)\n", field)
	case "longlong":
		fmt.Fprintf(b, "\tw.WriteLongLong(%s)\n", field)
	case "timestamp":
		fmt.Fprintf(b, "\tw.WriteTimestamp(%s)\n", field)
	case "shortstr":
		fmt.Fprintf(b, "\tw.WriteShortstr(%s)\n", field)
	case "longstr":
		fmt.Fprintf(b, "\tw.WriteLongstr(%s)\n", field)
	case "table":
		fmt.Fprintf(b, "\tw.WriteTable(%s)\n", field)
	default:
		fmt.Fprintf(b, "\tw.WriteShortstr(%s)\n", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// SortedClassNames returns the descriptor's class names in alphabetical
// order.
func SortedClassNames(amqp *Amqp) []string {
	names := make([]string, 0, len(amqp.Classes))
	for _, c := range amqp.Classes {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
