// Command amqpgen is the offline code generator spec.md 4.6 describes: it
// reads the protocol XML descriptor and emits the message package's
// per-class sources into message/class_*.go. It is not part of the broker's
// build, and the checked-in message/class_*.go files are not identical to
// what it writes (see codegen/model.go). Grounded on
// original_source/amqp_codegen/src/main.rs, which reads amqp-0-9-1.xml and
// prints generated Rust to stdout for the caller to redirect into a file —
// this Go equivalent instead writes one file per class directly, since
// Go's toolchain has no single "codegen crate run from build.rs" convention
// the way the original's workspace does.
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mozilla-services/amqpd/codegen"
)

func main() {
	descriptor := flag.String("descriptor", "codegen/data/amqp0-9-1.xml", "path to the protocol XML descriptor")
	outDir := flag.String("out", "message", "directory to write generated class_*.go files into")
	flag.Parse()

	amqp, err := loadDescriptor(*descriptor)
	if err != nil {
		log.Fatalf("amqpgen: %v", err)
	}

	files := codegen.Generate(amqp)
	for name, content := range files {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("amqpgen: writing %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func loadDescriptor(path string) (*codegen.Amqp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	var amqp codegen.Amqp
	if err := xml.Unmarshal(data, &amqp); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	return &amqp, nil
}
