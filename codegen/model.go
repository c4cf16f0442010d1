// Package codegen is the offline, build-time generator spec.md 4.6
// describes: it walks the AMQP protocol XML descriptor and emits the
// message package's parser/serializer/random-value sources. It mirrors the
// original implementation's amqp_codegen crate (original_source/amqp_codegen,
// a strong_xml-driven struct walk that prints Rust source to stdout) but
// reads the descriptor with the standard library's encoding/xml rather than
// a third-party XML-binding crate: nothing in the retrieval pack carries a
// Go XML-binding library beyond encoding/xml itself, and an offline,
// run-once code generator is exactly the kind of tooling concern where the
// teacher and the rest of the pack are themselves silent (see DESIGN.md).
//
// The generator is not wired into the module's build. It writes
// message/class_*.go from codegen/data/amqp0-9-1.xml; the checked-in files
// there follow its per-class layout but are not identical to its output
// (they differ in field sets, comments and parse arms), so running
// `go run ./codegen/cmd/amqpgen` replaces them with different code.
package codegen

import "encoding/xml"

// Amqp is the root of the protocol descriptor, matching
// original_source/amqp_codegen/src/main.rs's Amqp struct one field at a time.
type Amqp struct {
	XMLName xml.Name `xml:"amqp"`
	Major   int      `xml:"major,attr"`
	Minor   int      `xml:"minor,attr"`
	Domains []Domain `xml:"domain"`
	Classes []Class  `xml:"class"`
}

type Domain struct {
	Name    string   `xml:"name,attr"`
	Kind    string   `xml:"type,attr"`
	Asserts []Assert `xml:"assert"`
}

type Assert struct {
	Check string `xml:"check,attr"`
	Value string `xml:"value,attr"`
}

type Class struct {
	Name    string   `xml:"name,attr"`
	Handler string   `xml:"handler,attr"`
	Index   uint16   `xml:"index,attr"`
	Methods []Method `xml:"method"`
}

type Method struct {
	Name        string  `xml:"name,attr"`
	Index       uint16  `xml:"index,attr"`
	Synchronous bool    `xml:"synchronous,attr"`
	Content     bool    `xml:"content,attr"`
	Implemented *bool   `xml:"implemented,attr"`
	Fields      []Field `xml:"field"`
}

// IsImplemented defaults true: the descriptor only sets implemented="false"
// on the methods spec.md 9 ("Source gaps") documents as recognized but
// rejected.
func (m Method) IsImplemented() bool {
	return m.Implemented == nil || *m.Implemented
}

type Field struct {
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
	Domain  string   `xml:"domain,attr"`
	Asserts []Assert `xml:"assert"`
}

// ResolvedKind returns the field's wire kind after resolving a domain
// reference to its underlying primitive type, the way
// amqp_codegen/src/parser.rs's domain_parser resolves <field domain="..">
// to a <domain type="..">.
func (f Field) ResolvedKind(domains map[string]Domain) string {
	if f.Type != "" {
		return f.Type
	}
	if d, ok := domains[f.Domain]; ok {
		return d.Kind
	}
	return "shortstr"
}
