package codegen

import "strings"

// pascalCase turns a kebab-case XML attribute ("close-ok", "reply-code")
// into the Go exported identifier the checked-in message package uses
// ("CloseOk", "ReplyCode"). The original generator reaches for the `heck`
// crate's ToUpperCamelCase (amqp_codegen/src/parser.rs); nothing in the
// retrieval pack carries a Go case-conversion library, so this is a small
// hand-rolled equivalent (see DESIGN.md).
func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// fieldName turns a field name into its struct field identifier, escaping
// the field named "type" to Type_ (spec.md 4.6, "the identifier type is
// escaped").
func fieldName(xmlName string) string {
	name := pascalCase(xmlName)
	if name == "Type" {
		return "Type_"
	}
	return name
}

// classPrefix joins a class name and method name into the exported struct
// name the checked-in code uses: connection/close-ok -> ConnectionCloseOk.
func classPrefix(className, methodName string) string {
	return pascalCase(className) + pascalCase(methodName)
}

// methodDisplayName renders the dotted wire name used in methodName()
// ("Connection.Close-Ok"), matching the checked-in message package.
func methodDisplayName(className, methodName string) string {
	return pascalCase(className) + "." + titleKebab(methodName)
}

func titleKebab(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

func constName(kind, className, methodName string) string {
	return kind + pascalCase(className) + pascalCase(methodName)
}
