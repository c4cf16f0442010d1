package codegen

import "testing"

func TestPascalCase(t *testing.T) {
	cases := map[string]string{
		"close-ok":      "CloseOk",
		"consumer-tag":  "ConsumerTag",
		"queue":         "Queue",
		"no-wait":       "NoWait",
	}
	for in, want := range cases {
		if got := pascalCase(in); got != want {
			t.Errorf("pascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldNameEscapesType(t *testing.T) {
	if got := fieldName("type"); got != "Type_" {
		t.Errorf("fieldName(type) = %q, want Type_", got)
	}
}

func TestGroupFieldsPacksConsecutiveBits(t *testing.T) {
	fields := []Field{
		{Name: "reserved-1", Type: "short"},
		{Name: "exchange", Type: "shortstr"},
		{Name: "type", Type: "shortstr"},
		{Name: "passive", Type: "bit"},
		{Name: "durable", Type: "bit"},
		{Name: "auto-delete", Type: "bit"},
		{Name: "internal", Type: "bit"},
		{Name: "no-wait", Type: "bit"},
		{Name: "arguments", Type: "table"},
	}
	runs := groupFields(fields, nil)
	if len(runs) != 5 {
		t.Fatalf("got %d runs, want 5 (reserved-1, exchange, type, 5 packed bits, arguments)", len(runs))
	}
	bitsRun := runs[3]
	if bitsRun.single != nil || len(bitsRun.bits) != 5 {
		t.Fatalf("expected a 5-bit packed run, got %+v", bitsRun)
	}
}

func TestGenerateProducesOneFilePerClass(t *testing.T) {
	amqp := &Amqp{
		Classes: []Class{
			{Name: "channel", Index: 20, Methods: []Method{
				{Name: "open", Index: 10},
				{Name: "open-ok", Index: 11},
			}},
		},
	}
	files := Generate(amqp)
	src, ok := files["class_channel.go"]
	if !ok {
		t.Fatalf("expected class_channel.go in generated output, got keys %v", keys(files))
	}
	if !contains(src, "type ChannelOpen struct{}") {
		t.Errorf("generated source missing ChannelOpen struct:\n%s", src)
	}
	if !contains(src, "func (*ChannelOpen) ClassID() uint16") {
		t.Errorf("generated source missing ClassID method:\n%s", src)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
