// Command generate-schema writes the JSON schema of the memvfs configuration
// file. Used by `go generate` and editors; "-" writes to stdout.
//
//	generate-schema [path|-]
package main

import (
	"log"
	"os"

	"github.com/marmos91/memvfs/pkg/config"
)

const defaultSchemaPath = "memvfs.schema.json"

func main() {
	log.SetFlags(0)
	log.SetPrefix("generate-schema: ")

	target := defaultSchemaPath
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		log.Fatal(err)
	}

	if target == "-" {
		if _, err := os.Stdout.Write(schema); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := os.WriteFile(target, schema, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("schema written to %s", target)
}
